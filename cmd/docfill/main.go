// Command docfill fills a bracket-marker DOCX template from CSV rows,
// writing one output document per row. It parses flags, validates config,
// and either runs template diagnostics (--check) or the fill pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/ccontreras/formgen/internal/check"
	"github.com/ccontreras/formgen/internal/config"
	"github.com/ccontreras/formgen/internal/display"
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
	// Bootstrap phase — the logger doesn't exist yet, so errors go directly
	// to stderr. Once NewLogger succeeds, all output goes through it.
	cfg := config.DefaultConfig()
	if err := config.LoadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "docfill: %v\n", err)
		return 1
	}
	if err := config.ParseFillFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "docfill: %v\n", err)
		return 1
	}
	if err := cfg.ValidateFill(); err != nil {
		fmt.Fprintf(os.Stderr, "docfill: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docfill: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunFillCheck(&cfg, log) {
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

	log.Info("=== docfill v%s ===", version)
	log.Info("CSV: %s (%s)", cfg.CSVPath, cfg.Encoding)
	log.Info("Out: %s", cfg.OutDir)
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be written")
	}
	fmt.Println()

	stats := pipeline.Run(&cfg, log)
	if stats.Failed > 0 {
		return 1
	}
	return 0
}
