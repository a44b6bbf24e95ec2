// Package check implements --check mode: verify that templates and CSV
// agree before any document is generated. Informational only — it reports
// every finding and does not stop at the first problem.
package check

import (
	"strings"

	"github.com/ccontreras/formgen/internal/config"
	"github.com/ccontreras/formgen/internal/csvdata"
	"github.com/ccontreras/formgen/internal/docx"
	"github.com/ccontreras/formgen/internal/fill"
	"github.com/ccontreras/formgen/internal/forms"
)

// Logger is the minimal logging interface needed by the check runs.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunFillCheck prints the marker-resolution table for a bracket-marker
// template against the CSV header. Returns false only when an input cannot
// be opened; unresolved markers are findings, not failures.
func RunFillCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Template Check ===")

	doc, err := docx.Open(cfg.TemplatePath)
	if err != nil {
		log.Error("%v", err)
		return false
	}
	rd, err := csvdata.Open(cfg.CSVPath, cfg.Encoding)
	if err != nil {
		log.Error("%v", err)
		return false
	}
	defer rd.Close()

	columns := rd.Columns()
	log.Info("CSV columns: %s", strings.Join(columns, ", "))

	if cfg.NameColumn != "" {
		found := false
		for _, c := range columns {
			if c == cfg.NameColumn {
				found = true
				break
			}
		}
		if found {
			log.Success("Name column: %s", cfg.NameColumn)
		} else {
			log.Warn("Name column %q not in header; first non-empty cell will be used", cfg.NameColumn)
		}
	}

	markers := fill.ExtractMarkers(doc)
	if len(markers) == 0 {
		log.Warn("Template contains no [[...]] markers")
		return true
	}

	mm := fill.ResolveMarkers(columns, log.Warn)
	unresolved := 0
	for _, raw := range markers {
		if col, ok := mm.Column(raw); ok {
			log.Success("[[%s]] -> column %q", strings.TrimSpace(raw), col)
		} else {
			log.Warn("[[%s]] has no matching column; will stay verbatim", strings.TrimSpace(raw))
			unresolved++
		}
	}
	if unresolved == 0 {
		log.Success("All %d markers resolve", len(markers))
	} else {
		log.Info("%d of %d markers unresolved", unresolved, len(markers))
	}
	return true
}

// RunFormsCheck verifies that every registered label line (and every estado
// checkbox line) is present in its template. Returns false only when a
// template cannot be opened.
func RunFormsCheck(cfg *config.Config, reg forms.Registry, log Logger) bool {
	log.Info("=== Forms Check ===")

	ok := checkLabels(log, "Formulario N°1", cfg.Form1Path, labelList(reg.Form1, nil))
	ok = checkLabels(log, "Formulario N°2", cfg.Form2Path, labelList(reg.Form2, reg.Estados)) && ok
	return ok
}

// labelList flattens bindings plus estado target lines into one label slice.
func labelList(bindings []forms.Binding, estados map[string]string) []string {
	var labels []string
	for _, b := range bindings {
		labels = append(labels, b.Label)
	}
	for _, l := range estados {
		labels = append(labels, l)
	}
	return labels
}

func checkLabels(log Logger, name, path string, labels []string) bool {
	doc, err := docx.Open(path)
	if err != nil {
		log.Error("%s: %v", name, err)
		return false
	}

	var texts []string
	for _, p := range doc.Paragraphs() {
		if t := strings.TrimSpace(p.Text()); t != "" {
			texts = append(texts, t)
		}
	}

	missing := 0
	for _, label := range labels {
		found := false
		for _, t := range texts {
			if strings.HasPrefix(t, label) {
				found = true
				break
			}
		}
		if found {
			log.Success("%s: %q", name, label)
		} else {
			log.Warn("%s: label missing: %q", name, label)
			missing++
		}
	}
	if missing == 0 {
		log.Success("%s: all %d labels present", name, len(labels))
	} else {
		log.Info("%s: %d of %d labels missing", name, missing, len(labels))
	}
	return true
}
