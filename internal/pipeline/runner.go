// Package pipeline orchestrates the per-row fill loop: read CSV rows,
// substitute into a fresh copy of the template, derive a collision-free
// name, and write the output document.
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
	"github.com/ccontreras/formgen/internal/logging"
	"github.com/ccontreras/formgen/internal/naming"
)

// Run is the docfill batch entry point: one output document per CSV row,
// bracket-marker substitution. Input problems (template, CSV, encoding) are
// fatal; everything per-row is a warning and the batch continues.
func Run(cfg *config.Config, log *logging.Logger) RunStats {
	var stats RunStats

	tmpl, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		log.Error("Cannot read template: %v", err)
		stats.Failed++
		return stats
	}
	// Parse once up front so a malformed template fails the run before any
	// CSV work; per-row re-parses of the same bytes cannot fail after this.
	if _, err := docx.OpenBytes(tmpl); err != nil {
		log.Error("Template %s: %v", cfg.TemplatePath, err)
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

	warn := dedupWarn(log)
	markers := fill.ResolveMarkers(rd.Columns(), warn)

	nameColumn := cfg.NameColumn
	if nameColumn != "" && !hasColumn(rd.Columns(), nameColumn) {
		warn("name column %q not found in CSV header; falling back to first non-empty cell", nameColumn)
		nameColumn = ""
	}

	log.Info("Template: %s", cfg.TemplatePath)
	log.Info("Columns:  %s", strings.Join(rd.Columns(), ", "))
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

		doc, err := docx.OpenBytes(tmpl)
		if err != nil {
			log.Error("Row %d: cannot reopen template: %v", row.Index, err)
			stats.Failed++
			continue
		}

		subs := fill.Brackets(doc, markers, row, warn)

		base := naming.Sanitize(naming.Derive(row, nameColumn))
		if base == "" {
			base = naming.Fallback(row.Index)
		}
		name := registry.Reserve(base) + ".docx"

		if cfg.DryRun {
			log.Success("[DRY] Row %d: would write %s (%d substitutions)", row.Index, name, subs)
			stats.Written++
			continue
		}

		outPath := filepath.Join(cfg.OutDir, name)
		if err := doc.Save(outPath); err != nil {
			log.Error("Row %d: %v", row.Index, err)
			stats.Failed++
			continue
		}
		log.Success("Row %d: %s (%d substitutions)", row.Index, name, subs)
		stats.Written++
	}

	logSummary(log, &stats)
	return stats
}

// dedupWarn wraps log.Warn so each distinct message is emitted once per run.
// A marker missing from the CSV would otherwise repeat for every row.
func dedupWarn(log *logging.Logger) fill.WarnFunc {
	seen := make(map[string]bool)
	return func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		if seen[msg] {
			return
		}
		seen[msg] = true
		log.Warn("%s", msg)
	}
}

func hasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

func logSummary(log *logging.Logger, stats *RunStats) {
	fmt.Println()
	log.Info("==============================")
	log.Info("Done: %d rows, %d documents written, %d failed", stats.Rows, stats.Written, stats.Failed)
}
