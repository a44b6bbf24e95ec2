// Package csvdata reads headered CSV files as a lazy sequence of rows,
// decoding the configured character encoding and skipping fully blank lines.
package csvdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ccontreras/formgen/internal/config"
)

// Row is one non-blank CSV data row. Columns preserves header order;
// Values maps column name to the cell value (possibly empty). Index is the
// 1-based position among yielded rows, used for fallback output names.
type Row struct {
	Index   int
	Columns []string
	Values  map[string]string
}

// Get returns the cell value for col, or "" when the column is absent.
func (r Row) Get(col string) string {
	return r.Values[col]
}

// FirstNonEmpty returns the first cell in column order whose value is not
// blank, or "" when every cell is empty. Rows yielded by [Reader.Next] always
// have at least one non-blank cell.
func (r Row) FirstNonEmpty() string {
	for _, col := range r.Columns {
		if v := strings.TrimSpace(r.Values[col]); v != "" {
			return v
		}
	}
	return ""
}

// Reader yields Rows from a headered CSV file. The sequence is lazy, finite
// and non-restartable; Next returns io.EOF when exhausted.
type Reader struct {
	f     *os.File
	cr    *csv.Reader
	cols  []string
	count int
}

// Open opens path and reads the header line under the given encoding.
// The UTF-8 decoder strips a leading byte-order mark when present.
func Open(path string, enc config.Encoding) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	dec, err := decoder(enc)
	if err != nil {
		f.Close()
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(f, dec))
	cr.FieldsPerRecord = -1 // header mismatch handled by padding below
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		f.Close()
		if err == io.EOF {
			return nil, fmt.Errorf("csv %s is empty (no header line)", path)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}

	return &Reader{f: f, cr: cr, cols: cols}, nil
}

// decoder maps the encoding enum to an x/text transformer. The UTF-8 path
// validates before the BOM decoder runs: the decoder substitutes U+FFFD for
// invalid bytes, so a validator placed after it would never fire, and
// malformed input must fail the read rather than leak replacement characters
// into documents and filenames.
func decoder(enc config.Encoding) (transform.Transformer, error) {
	switch enc {
	case config.EncodingUTF8:
		return transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder()), nil
	case config.EncodingLatin1:
		return charmap.ISO8859_1.NewDecoder(), nil
	case config.EncodingWindows1252:
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}

// Columns returns the header column names in file order.
func (r *Reader) Columns() []string {
	return r.cols
}

// Next returns the next non-blank row, padding short records to the header
// length and ignoring cells beyond it. Returns io.EOF when the file is
// exhausted and a wrapped parse error on malformed input.
func (r *Reader) Next() (Row, error) {
	for {
		rec, err := r.cr.Read()
		if err == io.EOF {
			return Row{}, io.EOF
		}
		if err != nil {
			return Row{}, fmt.Errorf("read csv row: %w", err)
		}

		if blank(rec) {
			continue
		}

		r.count++
		row := Row{
			Index:   r.count,
			Columns: r.cols,
			Values:  make(map[string]string, len(r.cols)),
		}
		for i, col := range r.cols {
			if i < len(rec) {
				row.Values[col] = rec[i]
			} else {
				row.Values[col] = ""
			}
		}
		return row, nil
	}
}

// blank reports whether every cell is empty or whitespace-only.
func blank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}
