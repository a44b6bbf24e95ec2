// Package docx provides a minimal in-memory model of a DOCX package for
// paragraph-level text substitution. Only the XML parts that carry body text
// are parsed; every other part is carried through byte-for-byte, and parsed
// parts are re-serialized only when actually mutated.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// Parts that contain paragraph text. Headers and footers are numbered
// (header1.xml, header2.xml, …) so those are matched by pattern.
var reTextPart = regexp.MustCompile(`^word/(document|footnotes|endnotes|header[0-9]*|footer[0-9]*)\.xml$`)

// part is one zip entry. xml is non-nil for parsed text parts; dirty marks
// parts whose XML was mutated and must be re-serialized on save.
type part struct {
	name  string
	raw   []byte
	xml   *etree.Document
	dirty bool
}

// Document is a DOCX package opened for text substitution.
type Document struct {
	parts []*part
}

// Open reads and parses the DOCX file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	doc, err := OpenBytes(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return doc, nil
}

// OpenBytes parses a DOCX package from memory. Each call builds an
// independent document, so one template byte slice can be re-parsed fresh
// for every row.
func OpenBytes(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a DOCX package: %w", err)
	}

	doc := &Document{}
	hasBody := false
	for _, zf := range zr.File {
		if strings.HasSuffix(zf.Name, "/") {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", zf.Name, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", zf.Name, err)
		}

		p := &part{name: zf.Name, raw: raw}
		if reTextPart.MatchString(zf.Name) {
			x := etree.NewDocument()
			x.WriteSettings = etree.WriteSettings{
				CanonicalAttrVal: true,
				CanonicalText:    true,
				CanonicalEndTags: true,
			}
			if err := x.ReadFromBytes(raw); err != nil {
				return nil, fmt.Errorf("parse part %s: %w", zf.Name, err)
			}
			p.xml = x
			if zf.Name == "word/document.xml" {
				hasBody = true
			}
		}
		doc.parts = append(doc.parts, p)
	}

	if !hasBody {
		return nil, fmt.Errorf("not a DOCX package: word/document.xml missing")
	}
	return doc, nil
}

// Paragraphs returns every w:p element across all parsed parts, in document
// order, including paragraphs nested inside table cells.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, p := range d.parts {
		if p.xml == nil {
			continue
		}
		for _, el := range p.xml.FindElements("//w:p") {
			out = append(out, &Paragraph{part: p, el: el})
		}
	}
	return out
}

// Save writes the document to path, creating or truncating the file.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Write serializes the package. Unmodified parts are copied verbatim so the
// output differs from the template only where text was substituted.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, p := range d.parts {
		entry, err := zw.Create(p.name)
		if err != nil {
			return err
		}
		if p.dirty && p.xml != nil {
			if _, err := p.xml.WriteTo(entry); err != nil {
				return err
			}
			continue
		}
		if _, err := entry.Write(p.raw); err != nil {
			return err
		}
	}
	return zw.Close()
}
