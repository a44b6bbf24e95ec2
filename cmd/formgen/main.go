// Command formgen generates the ANID Formulario N°1 and N°2 documents for
// each student row of a CSV, using label-line substitution over the official
// templates. --check verifies the templates still carry every expected label.
package main

import (
	"fmt"
	"os"

	"github.com/ccontreras/formgen/internal/check"
	"github.com/ccontreras/formgen/internal/config"
	"github.com/ccontreras/formgen/internal/display"
	"github.com/ccontreras/formgen/internal/forms"
	"github.com/ccontreras/formgen/internal/logging"
	"github.com/ccontreras/formgen/internal/pipeline"
)

// version is injected at build time via -ldflags; plain "go build" keeps
// the default.
var version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.DefaultConfig()
	if err := config.LoadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "formgen: %v\n", err)
		return 1
	}
	if err := config.ParseFormsFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "formgen: %v\n", err)
		return 1
	}
	if err := cfg.ValidateForms(); err != nil {
		fmt.Fprintf(os.Stderr, "formgen: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "formgen: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		reg, err := forms.Load(cfg.LabelsPath)
		if err != nil {
			log.Error("%v", err)
			return 1
		}
		if !check.RunFormsCheck(&cfg, reg, log) {
			return 1
		}
		return 0
	}

	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			log.Error("Cannot create output directory: %s", cfg.OutDir)
			return 1
		}
	}

	log.Info("=== formgen v%s ===", version)
	log.Info("CSV: %s (%s)", cfg.CSVPath, cfg.Encoding)
	log.Info("Out: %s", cfg.OutDir)
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be written")
	}
	fmt.Println()

	stats := pipeline.RunForms(&cfg, log)
	if stats.Failed > 0 {
		return 1
	}
	return 0
}
