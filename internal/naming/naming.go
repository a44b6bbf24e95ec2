// Package naming derives output filenames from row data and resolves
// in-run collisions with numeric suffixes.
package naming

import (
	"fmt"
	"strings"

	"github.com/ccontreras/formgen/internal/csvdata"
)

// Derive returns the raw candidate base name for a row. Fallback chain:
// designated name-column value → first non-empty cell in column order →
// zero-padded sequential name keyed by row position.
func Derive(row csvdata.Row, nameColumn string) string {
	if nameColumn != "" {
		if v := strings.TrimSpace(row.Get(nameColumn)); v != "" {
			return v
		}
	}
	if v := row.FirstNonEmpty(); v != "" {
		return v
	}
	return Fallback(row.Index)
}

// Fallback returns the sequential base name for a 1-indexed row position.
func Fallback(index int) string {
	return fmt.Sprintf("row_%03d", index)
}

// invalid holds the characters never allowed in an output filename, on any
// of the platforms the tool runs on.
const invalid = `/\:*?"<>|`

// Sanitize maps a candidate to a safe filename base: spaces become
// underscores, path-invalid and control characters are dropped, and
// trailing dots (meaningful on Windows) are trimmed. May return "" when the
// candidate has no usable characters; callers then use [Fallback].
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r < 0x20 || strings.ContainsRune(invalid, r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// Registry tracks base names claimed during one run and resolves duplicates
// by appending "_N" suffixes. It is owned by the run loop and updated in
// strict row order, so no locking is needed.
type Registry struct {
	used     map[string]bool
	counters map[string]int // base name → next suffix to try
}

// NewRegistry creates a ready-to-use registry.
func NewRegistry() *Registry {
	return &Registry{
		used:     make(map[string]bool),
		counters: make(map[string]int),
	}
}

// Reserve claims base, returning it unchanged on first use. Later calls with
// the same base get "base_1", "base_2", … . A suffixed candidate that was
// itself already reserved as a base keeps incrementing until a free name is
// found, so no two reservations in one run ever collide.
func (r *Registry) Reserve(base string) string {
	if !r.used[base] {
		r.used[base] = true
		return base
	}
	n := r.counters[base]
	if n == 0 {
		n = 1
	}
	for {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if !r.used[candidate] {
			r.counters[base] = n + 1
			r.used[candidate] = true
			return candidate
		}
		n++
	}
}
