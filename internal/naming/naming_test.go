package naming

import (
	"testing"

	"github.com/ccontreras/formgen/internal/csvdata"
)

func row(index int, cols []string, values map[string]string) csvdata.Row {
	return csvdata.Row{Index: index, Columns: cols, Values: values}
}

func TestDerive_FallbackChain(t *testing.T) {
	cols := []string{"Nombres", "Apellidos"}
	tests := []struct {
		name       string
		row        csvdata.Row
		nameColumn string
		want       string
	}{
		{
			name:       "name column value",
			row:        row(1, cols, map[string]string{"Nombres": "Ana", "Apellidos": "Lopez"}),
			nameColumn: "Nombres",
			want:       "Ana",
		},
		{
			name:       "name column empty falls back to first non-empty cell",
			row:        row(2, cols, map[string]string{"Nombres": " ", "Apellidos": "Lopez"}),
			nameColumn: "Nombres",
			want:       "Lopez",
		},
		{
			name:       "no name column uses first non-empty cell",
			row:        row(3, cols, map[string]string{"Nombres": "", "Apellidos": "Perez"}),
			nameColumn: "",
			want:       "Perez",
		},
		{
			name:       "all cells empty uses sequential fallback",
			row:        row(7, cols, map[string]string{"Nombres": "", "Apellidos": ""}),
			nameColumn: "Nombres",
			want:       "row_007",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(tt.row, tt.nameColumn); got != tt.want {
				t.Errorf("Derive() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Ana", "Ana"},
		{"spaces to underscores", "Juan Perez", "Juan_Perez"},
		{"path separators dropped", `a/b\c`, "abc"},
		{"reserved chars dropped", `x:*?"<>|y`, "xy"},
		{"control chars dropped", "a\x01b", "ab"},
		{"surrounding space trimmed", "  Ana  ", "Ana"},
		{"trailing dot trimmed", "Ana.", "Ana"},
		{"accents preserved", "Muñoz Ñandú", "Muñoz_Ñandú"},
		{"nothing usable", ` /\: `, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRegistry_SuffixesDuplicates(t *testing.T) {
	r := NewRegistry()

	got := []string{
		r.Reserve("Juan_Perez"),
		r.Reserve("Juan_Perez"),
		r.Reserve("Juan_Perez"),
		r.Reserve("Ana"),
	}
	want := []string{"Juan_Perez", "Juan_Perez_1", "Juan_Perez_2", "Ana"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("reservation %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistry_SuffixedBaseAlreadyTaken(t *testing.T) {
	r := NewRegistry()

	// "Juan_Perez_1" arrives first as a real base name; the duplicate of
	// "Juan_Perez" must skip over it.
	if got := r.Reserve("Juan_Perez_1"); got != "Juan_Perez_1" {
		t.Fatalf("first reservation = %q", got)
	}
	if got := r.Reserve("Juan_Perez"); got != "Juan_Perez" {
		t.Fatalf("second reservation = %q", got)
	}
	if got := r.Reserve("Juan_Perez"); got != "Juan_Perez_2" {
		t.Errorf("duplicate = %q, want Juan_Perez_2", got)
	}
}

func TestRegistry_Deterministic(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	seq := []string{"x", "x", "y", "x", "y"}
	for _, base := range seq {
		if ra, rb := a.Reserve(base), b.Reserve(base); ra != rb {
			t.Fatalf("same call sequence diverged: %q vs %q", ra, rb)
		}
	}
}
