package docx

import "github.com/beevik/etree"

// Paragraph is one w:p element together with the part that owns it.
//
// Word splits paragraph text into formatting runs at arbitrary points, so a
// placeholder can straddle several w:t nodes. Text reassembles the full
// logical string; SetText writes a replacement back as a single run's worth
// of text. Substitution is therefore a two-phase extract → rewrite transform,
// never an in-place per-run edit.
type Paragraph struct {
	part *part
	el   *etree.Element
}

// Text returns the paragraph's logical text: the concatenation of every
// w:t node in document order, across run boundaries.
func (p *Paragraph) Text() string {
	var sb []byte
	for _, t := range p.el.FindElements(".//w:t") {
		sb = append(sb, t.Text()...)
	}
	return string(sb)
}

// SetText replaces the paragraph text with s. The full string goes into the
// first w:t node (with xml:space="preserve" so leading/trailing spaces
// survive); the remaining w:t nodes are blanked. Runs themselves are left in
// place, keeping non-text content such as drawings and breaks intact.
// Formatting of the first run wins, which is acceptable: text correctness is
// the contract, run-level formatting fidelity is not.
func (p *Paragraph) SetText(s string) {
	texts := p.el.FindElements(".//w:t")
	if len(texts) == 0 {
		r := p.el.CreateElement("w:r")
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(s)
		p.part.dirty = true
		return
	}

	first := texts[0]
	if first.SelectAttr("xml:space") == nil {
		first.CreateAttr("xml:space", "preserve")
	}
	first.SetText(s)
	for _, t := range texts[1:] {
		t.SetText("")
	}
	p.part.dirty = true
}
