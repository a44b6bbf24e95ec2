package csvdata

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccontreras/formgen/internal/config"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readAll(t *testing.T, r *Reader) []Row {
	t.Helper()
	var rows []Row
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		rows = append(rows, row)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.csv"), config.EncodingUTF8); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOpen_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.csv", nil)
	if _, err := Open(path, config.EncodingUTF8); err == nil {
		t.Fatal("expected error for file without header")
	}
}

func TestNext_HeaderOrderAndValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.csv",
		[]byte("Nombres,Apellidos,rut\nAna,Lopez,11111111-1\n"))

	r, err := Open(path, config.EncodingUTF8)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	want := []string{"Nombres", "Apellidos", "rut"}
	cols := r.Columns()
	if len(cols) != len(want) {
		t.Fatalf("got %d columns, want %d", len(cols), len(want))
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, cols[i], want[i])
		}
	}

	rows := readAll(t, r)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Index != 1 {
		t.Errorf("Index = %d, want 1", row.Index)
	}
	if row.Get("Apellidos") != "Lopez" {
		t.Errorf("Apellidos = %q, want Lopez", row.Get("Apellidos"))
	}
	if row.Get("inexistente") != "" {
		t.Error("unknown column should return empty string")
	}
}

func TestNext_SkipsBlankRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.csv",
		[]byte("a,b\n1,2\n,\n  ,  \n3,\n"))

	r, err := Open(path, config.EncodingUTF8)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	rows := readAll(t, r)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (blank rows skipped)", len(rows))
	}
	// Index counts only the yielded rows.
	if rows[1].Index != 2 {
		t.Errorf("second row Index = %d, want 2", rows[1].Index)
	}
	// A partially empty row is kept, empty cells included.
	if rows[1].Get("a") != "3" || rows[1].Get("b") != "" {
		t.Errorf("second row values = %v", rows[1].Values)
	}
}

func TestNext_PadsShortRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.csv",
		[]byte("a,b,c\nx\ny,z,w,extra\n"))

	r, err := Open(path, config.EncodingUTF8)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	rows := readAll(t, r)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Get("b") != "" || rows[0].Get("c") != "" {
		t.Errorf("short row not padded: %v", rows[0].Values)
	}
	if rows[1].Get("c") != "w" {
		t.Errorf("long row mishandled: %v", rows[1].Values)
	}
}

func TestOpen_StripsUTF8BOM(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bom.csv",
		[]byte("\xef\xbb\xbfNombres,rut\nAna,1\n"))

	r, err := Open(path, config.EncodingUTF8)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if got := r.Columns()[0]; got != "Nombres" {
		t.Errorf("first column = %q, want %q (BOM must be stripped)", got, "Nombres")
	}
}

func TestOpen_Latin1(t *testing.T) {
	// "Muñoz" in ISO 8859-1: ñ is byte 0xF1.
	path := writeFile(t, t.TempDir(), "latin.csv",
		[]byte("apellido\nMu\xf1oz\n"))

	r, err := Open(path, config.EncodingLatin1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	rows := readAll(t, r)
	if got := rows[0].Get("apellido"); got != "Muñoz" {
		t.Errorf("apellido = %q, want Muñoz", got)
	}
}

func TestNext_InvalidUTF8Fails(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.csv",
		[]byte("a\n\xff\xfe\n"))

	r, err := Open(path, config.EncodingUTF8)
	if err != nil {
		// The validator may surface the decode error already while Open
		// reads the header: the transform reader buffers past it.
		return
	}
	defer r.Close()

	for {
		row, err := r.Next()
		if err == io.EOF {
			t.Fatal("invalid UTF-8 reached EOF without an error")
		}
		if err != nil {
			return
		}
		// No replacement characters may leak into row data.
		for _, v := range row.Values {
			if strings.ContainsRune(v, '�') {
				t.Fatalf("malformed bytes yielded as row data: %v", row.Values)
			}
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   string
	}{
		{"first cell", map[string]string{"a": "x", "b": "y"}, "x"},
		{"skips empty", map[string]string{"a": "", "b": "y"}, "y"},
		{"skips whitespace", map[string]string{"a": "  ", "b": "y"}, "y"},
		{"all empty", map[string]string{"a": "", "b": ""}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{Columns: []string{"a", "b"}, Values: tt.values}
			if got := row.FirstNonEmpty(); got != tt.want {
				t.Errorf("FirstNonEmpty() = %q, want %q", got, tt.want)
			}
		})
	}
}
