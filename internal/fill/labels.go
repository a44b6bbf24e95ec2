package fill

import (
	"strings"

	"github.com/ccontreras/formgen/internal/docx"
)

// LabelValue pairs a fixed label line with the replacement value for one row.
// Labels are matched verbatim against the start of a paragraph's trimmed
// text, never normalized.
type LabelValue struct {
	Label string
	Value string
}

// Labels rewrites each paragraph whose text starts with a registered label
// to "label value". Each label fires at most once, in document order; labels
// never matched are reported through warn and the run continues.
func Labels(doc *docx.Document, pairs []LabelValue, warn WarnFunc) {
	done := make(map[string]bool, len(pairs))
	for _, p := range doc.Paragraphs() {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		for _, lv := range pairs {
			if done[lv.Label] || !strings.HasPrefix(text, lv.Label) {
				continue
			}
			p.SetText(strings.TrimRight(lv.Label+" "+lv.Value, " "))
			done[lv.Label] = true
			break
		}
	}
	for _, lv := range pairs {
		if !done[lv.Label] {
			warn("label not found in template: %q", lv.Label)
		}
	}
}

// MarkState emulates a group of mutually exclusive checkboxes. Every
// paragraph starting with one of the target labels is rewritten with a
// checkbox glyph: "[X]" for the label whose key equals chosen, "[ ]" for the
// rest. An empty or unrecognized chosen key leaves every box unchecked,
// matching the reference behavior.
func MarkState(doc *docx.Document, targets map[string]string, chosen string) {
	for _, p := range doc.Paragraphs() {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		key, label, ok := matchTarget(text, targets)
		if !ok {
			continue
		}
		mark := "[ ]"
		if key == chosen {
			mark = "[X]"
		}
		p.SetText(mark + " " + label)
	}
}

// matchTarget finds the target label prefixing text. The longest label wins,
// with key order as the tie-break, so overlapping labels (possible with an
// overridden registry) always resolve the same way.
func matchTarget(text string, targets map[string]string) (key, label string, ok bool) {
	for k, l := range targets {
		if !strings.HasPrefix(text, l) {
			continue
		}
		if !ok || len(l) > len(label) || (len(l) == len(label) && k < key) {
			key, label, ok = k, l, true
		}
	}
	return key, label, ok
}
