// Package forms holds the label registry for the ANID scholarship forms:
// which label line in each template is filled from which CSV column, and the
// mutually exclusive estado checkbox lines of Formulario N°2.
package forms

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ccontreras/formgen/internal/csvdata"
	"github.com/ccontreras/formgen/internal/fill"
)

// Virtual column names accepted in Binding.Column in addition to real CSV
// columns. They cover the fields the forms compose from several cells.
const (
	ColFullName  = "nombre_completo"  // nombre + " " + apellido
	ColRunOrPass = "run_o_pasaporte"  // run, falling back to pasaporte
	ColAutoridad = "autoridad"        // autoridad_nombre + ", " + autoridad_cargo
)

// EstadoColumn is the CSV column holding the postulation state for the
// Formulario N°2 checkboxes.
const EstadoColumn = "estado_postulacion"

// Binding ties one label line in a template to the CSV column filling it.
type Binding struct {
	Label  string `yaml:"label"`
	Column string `yaml:"column"`
}

// Registry is the full label configuration for both forms. Estados maps the
// canonical state key to its checkbox label line.
type Registry struct {
	Form1   []Binding         `yaml:"form1"`
	Form2   []Binding         `yaml:"form2"`
	Estados map[string]string `yaml:"estados"`
}

// Default returns the built-in registry for the 2026 templates.
func Default() Registry {
	return Registry{
		Form1: []Binding{
			{"Nombre del/de la Estudiante:", ColFullName},
			{"RUN o número de pasaporte:", ColRunOrPass},
			{"Universidad de Pregrado*:", "universidad_pregrado"},
			{"Programa de Estudios de pregrado*:", "programa_pregrado"},
			{"Número de semestres de duración del programa académico de pregrado:", "semestres_pregrado"},
			{"Región donde cursó los estudios de pregrado:", "region_pregrado"},
			{"PROMEDIO DE NOTAS.", "promedio_pregrado"},
			{"NOTA FINAL DE LICENCIATURA O TITULO PROFESIONAL O EQUIVALENTE.", "nota_final"},
			{"Posición de egreso del/de la estudiante al momento de finalizar su pregrado*:", "posicion_egreso"},
			{"Total de estudiantes de su generación de egreso o titulación*.", "total_generacion"},
			{"Ranking de egreso de pregrado, respecto de la generación de egreso o titulación", "ranking_porcentaje"},
		},
		Form2: []Binding{
			{"Nombre del postulante", ColFullName},
			{"Rut o número de pasaporte del postulante", ColRunOrPass},
			{"Programa de destino (nombre del programa, según registro CNA-Chile)*", "programa_destino"},
			{"Mención (si aplica, según registro CNA-Chile) *", "mencion_destino"},
			{"Universidad (en caso de ser un programa en consorcio, señalar todas las universidades que lo integran) *", "universidad_destino"},
			{"Región de los estudios de postgrado", "region_postgrado"},
			{"Fecha de inicio de estudios (mes o semestre, año) *", "fecha_inicio_postgrado"},
			{"**Nombre, cargo y firma de Autoridad Competente", ColAutoridad},
		},
		Estados: map[string]string{
			"postulacion_formal": "En proceso de postulación formal",
			"aceptado":           "Aceptado/a",
			"alumno_regular":     "En calidad de Alumno/a Regular",
		},
	}
}

// Load returns the default registry with any sections present in the YAML
// file at path replacing their built-in counterparts. An empty path returns
// the defaults unchanged.
func Load(path string) (Registry, error) {
	reg := Default()
	if path == "" {
		return reg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return reg, fmt.Errorf("open labels file: %w", err)
	}
	var override Registry
	if err := yaml.Unmarshal(data, &override); err != nil {
		return reg, fmt.Errorf("parse labels file %s: %w", path, err)
	}
	if len(override.Form1) > 0 {
		reg.Form1 = override.Form1
	}
	if len(override.Form2) > 0 {
		reg.Form2 = override.Form2
	}
	if len(override.Estados) > 0 {
		reg.Estados = override.Estados
	}
	return reg, nil
}

// FullName joins nombre and apellido, tolerating either being empty.
func FullName(row csvdata.Row) string {
	nombre := strings.TrimSpace(row.Get("nombre"))
	apellido := strings.TrimSpace(row.Get("apellido"))
	return strings.TrimSpace(nombre + " " + apellido)
}

// ValueFor computes the replacement value for one binding column, resolving
// the virtual columns; anything else reads the cell directly.
func ValueFor(row csvdata.Row, column string) string {
	switch column {
	case ColFullName:
		return FullName(row)
	case ColRunOrPass:
		if v := strings.TrimSpace(row.Get("run")); v != "" {
			return v
		}
		return strings.TrimSpace(row.Get("pasaporte"))
	case ColAutoridad:
		nombre := strings.TrimSpace(row.Get("autoridad_nombre"))
		cargo := strings.TrimSpace(row.Get("autoridad_cargo"))
		return strings.Trim(nombre+", "+cargo, ", ")
	default:
		return row.Get(column)
	}
}

// Values materializes the label/value pairs for one row.
func Values(bindings []Binding, row csvdata.Row) []fill.LabelValue {
	out := make([]fill.LabelValue, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, fill.LabelValue{Label: b.Label, Value: ValueFor(row, b.Column)})
	}
	return out
}

// ChooseEstado maps a raw estado cell to the canonical state key, or ""
// when nothing matches. Exact keys win; free-form values fall back to
// substring matching so "postulación formal" or "aceptada" still register.
func ChooseEstado(estado string) string {
	s := strings.ToLower(strings.TrimSpace(estado))
	switch s {
	case "postulacion_formal", "aceptado", "alumno_regular":
		return s
	}
	switch {
	case strings.Contains(s, "postula"):
		return "postulacion_formal"
	case strings.Contains(s, "regular"):
		return "alumno_regular"
	case strings.Contains(s, "acept"):
		return "aceptado"
	}
	return ""
}
