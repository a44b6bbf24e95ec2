package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Rows    int // Non-blank CSV rows processed.
	Written int // Output documents produced (or counted, in dry-run).
	Failed  int // Rows or files that could not be produced.
}
