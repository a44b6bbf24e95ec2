package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ccontreras/formgen/internal/config"
	"github.com/ccontreras/formgen/internal/csvdata"
	"github.com/ccontreras/formgen/internal/docx"
	"github.com/ccontreras/formgen/internal/fill"
	"github.com/ccontreras/formgen/internal/forms"
	"github.com/ccontreras/formgen/internal/logging"
	"github.com/ccontreras/formgen/internal/naming"
)

// Columns that must exist in the formgen CSV; matches the original script,
// which refuses to run without them.
var requiredFormColumns = []string{"nombre", "apellido"}

// RunForms is the formgen batch entry point: two output documents per row
// (Formulario N°1 and N°2), label-line substitution plus the estado
// checkboxes on Form 2.
func RunForms(cfg *config.Config, log *logging.Logger) RunStats {
	var stats RunStats

	reg, err := forms.Load(cfg.LabelsPath)
	if err != nil {
		log.Error("%v", err)
		stats.Failed++
		return stats
	}

	f1, err := readTemplate(cfg.Form1Path)
	if err != nil {
		log.Error("Formulario N°1: %v", err)
		stats.Failed++
		return stats
	}
	f2, err := readTemplate(cfg.Form2Path)
	if err != nil {
		log.Error("Formulario N°2: %v", err)
		stats.Failed++
		return stats
	}

	rd, err := csvdata.Open(cfg.CSVPath, cfg.Encoding)
	if err != nil {
		log.Error("Cannot read CSV: %v", err)
		stats.Failed++
		return stats
	}
	defer rd.Close()

	for _, col := range requiredFormColumns {
		if !hasColumn(rd.Columns(), col) {
			log.Error("CSV is missing required column %q", col)
			stats.Failed++
			return stats
		}
	}

	warn := dedupWarn(log)

	log.Info("F1: %s", cfg.Form1Path)
	log.Info("F2: %s", cfg.Form2Path)
	log.Info("Columns: %s", strings.Join(rd.Columns(), ", "))
	fmt.Println()

	registry := naming.NewRegistry()

	for {
		row, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Error("CSV read failed: %v", err)
			stats.Failed++
			break
		}
		stats.Rows++

		doc1, err := docx.OpenBytes(f1)
		if err != nil {
			log.Error("Row %d: cannot reopen Formulario N°1: %v", row.Index, err)
			stats.Failed++
			continue
		}
		doc2, err := docx.OpenBytes(f2)
		if err != nil {
			log.Error("Row %d: cannot reopen Formulario N°2: %v", row.Index, err)
			stats.Failed++
			continue
		}

		fill.Labels(doc1, forms.Values(reg.Form1, row), warn)

		estado := row.Get(forms.EstadoColumn)
		chosen := forms.ChooseEstado(estado)
		if chosen == "" && strings.TrimSpace(estado) != "" {
			warn("unrecognized %s value %q; no checkbox will be marked", forms.EstadoColumn, estado)
		}
		fill.MarkState(doc2, reg.Estados, chosen)
		fill.Labels(doc2, forms.Values(reg.Form2, row), warn)

		base := studentBase(row)
		base = registry.Reserve(base)

		if cfg.DryRun {
			log.Success("[DRY] Row %d: would write %s_F1.docx and %s_F2.docx", row.Index, base, base)
			stats.Written += 2
			continue
		}

		wrote := 0
		for _, out := range []struct {
			doc  *docx.Document
			name string
		}{
			{doc1, base + "_F1.docx"},
			{doc2, base + "_F2.docx"},
		} {
			if err := out.doc.Save(filepath.Join(cfg.OutDir, out.name)); err != nil {
				log.Error("Row %d: %v", row.Index, err)
				stats.Failed++
				continue
			}
			wrote++
			stats.Written++
		}
		if wrote == 2 {
			log.Success("Row %d: %s_F1.docx, %s_F2.docx", row.Index, base, base)
		}
	}

	logSummary(log, &stats)
	return stats
}

// readTemplate loads and validates one template file up front.
func readTemplate(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := docx.OpenBytes(data); err != nil {
		return nil, err
	}
	return data, nil
}

// studentBase derives the per-student base name: "Apellido_Nombre" as the
// original script names its output, sanitized, with the sequential fallback
// when both cells are blank.
func studentBase(row csvdata.Row) string {
	apellido := strings.TrimSpace(row.Get("apellido"))
	nombre := strings.TrimSpace(row.Get("nombre"))
	base := naming.Sanitize(strings.Trim(apellido+"_"+nombre, "_"))
	if base == "" {
		return fmt.Sprintf("estudiante_%d", row.Index)
	}
	return base
}
