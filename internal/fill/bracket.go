package fill

import (
	"regexp"
	"strings"

	"github.com/ccontreras/formgen/internal/csvdata"
	"github.com/ccontreras/formgen/internal/docx"
)

// reMarker matches one [[...]] span including the delimiters. The inner text
// may not contain brackets, so nested or unbalanced spans never match.
var reMarker = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)

// ExtractMarkers returns the raw inner text of every bracket span found in
// the document, in document order, without duplicates. Used by check mode.
func ExtractMarkers(doc *docx.Document) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range doc.Paragraphs() {
		for _, m := range reMarker.FindAllStringSubmatch(p.Text(), -1) {
			raw := m[1]
			if !seen[raw] {
				seen[raw] = true
				out = append(out, raw)
			}
		}
	}
	return out
}

// Brackets rewrites every resolved [[Marker]] span in the document with the
// row's value for the matched column. Unresolved markers are left verbatim
// and reported through warn. Returns the number of substitutions made.
//
// Each paragraph goes through the two-phase transform: reconstruct the full
// logical text (markers may straddle formatting runs), substitute on the
// string, then write the result back.
func Brackets(doc *docx.Document, markers MarkerMap, row csvdata.Row, warn WarnFunc) int {
	count := 0
	for _, p := range doc.Paragraphs() {
		text := p.Text()
		if !strings.Contains(text, "[[") {
			continue
		}
		replaced := reMarker.ReplaceAllStringFunc(text, func(span string) string {
			raw := span[2 : len(span)-2]
			col, ok := markers.Column(raw)
			if !ok {
				warn("marker [[%s]] has no matching CSV column; left as-is", strings.TrimSpace(raw))
				return span
			}
			count++
			return row.Get(col)
		})
		if replaced != text {
			p.SetText(replaced)
		}
	}
	return count
}
