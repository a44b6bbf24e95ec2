// Package fill implements marker resolution and the two substitution
// strategies: bracket markers ([[Marker]]) and fixed label lines.
package fill

import "strings"

// WarnFunc receives non-fatal diagnostics (unresolved markers, ambiguous
// columns, missing labels). Signature matches logging.Logger methods.
type WarnFunc func(format string, args ...interface{})

// Normalize derives the canonical marker key: trim surrounding whitespace,
// strip any leading '#' prefix, case-fold. Total and idempotent — any input,
// including the empty string, yields a stable key.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "# \t")
	return strings.ToLower(strings.TrimSpace(s))
}

// MarkerMap maps a normalized marker key to the CSV column it resolves to.
// Built once per template/header pair and never mutated by row data.
type MarkerMap map[string]string

// ResolveMarkers builds the MarkerMap from the header columns. When two
// columns normalize to the same key the later one wins and warn is called —
// a configuration problem, not a fatal error.
func ResolveMarkers(columns []string, warn WarnFunc) MarkerMap {
	m := make(MarkerMap, len(columns))
	for _, col := range columns {
		key := Normalize(col)
		if key == "" {
			continue
		}
		if prev, ok := m[key]; ok && prev != col {
			warn("columns %q and %q both normalize to %q; using %q", prev, col, key, col)
		}
		m[key] = col
	}
	return m
}

// Column resolves a raw marker string to its column name.
func (m MarkerMap) Column(raw string) (string, bool) {
	col, ok := m[Normalize(raw)]
	return col, ok
}
