package config

// This file implements CLI flag parsing and help text for both commands.
// Shared flags (output, encoding, display) are defined once; each command
// adds its own inputs and usage table.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// exitFlags holds flags that short-circuit normal execution after Parse.
type exitFlags struct {
	showVersion bool
	showHelp    bool
	forceColor  bool
	noColor     bool
}

// ParseFillFlags parses os.Args for the docfill command into cfg.
// On --help or --version it prints and exits. On error it returns non-nil
// (e.g. unknown flag, missing positional args).
func ParseFillFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("docfill", flag.ContinueOnError)
	fs.Usage = func() { printFillUsage(version) }

	var ex exitFlags
	fs.StringVar(&cfg.NameColumn, "name-column", cfg.NameColumn, "CSV column used for output filenames")
	fs.StringVar(&cfg.NameColumn, "n", cfg.NameColumn, "Same as --name-column")
	defineCommonFlags(fs, cfg, &ex)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}
	applyExitFlags(cfg, &ex, "docfill", version, func() { printFillUsage(version) })

	args := fs.Args()
	if len(args) != 2 {
		return fmt.Errorf("need exactly template.docx and data.csv")
	}
	cfg.TemplatePath = args[0]
	cfg.CSVPath = args[1]
	return nil
}

// ParseFormsFlags parses os.Args for the formgen command into cfg.
func ParseFormsFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("formgen", flag.ContinueOnError)
	fs.Usage = func() { printFormsUsage(version) }

	var ex exitFlags
	fs.StringVar(&cfg.Form1Path, "f1", cfg.Form1Path, "Formulario N°1 template (DOCX)")
	fs.StringVar(&cfg.Form2Path, "f2", cfg.Form2Path, "Formulario N°2 template (DOCX)")
	fs.StringVar(&cfg.LabelsPath, "labels", "", "YAML label-registry override")
	defineCommonFlags(fs, cfg, &ex)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}
	applyExitFlags(cfg, &ex, "formgen", version, func() { printFormsUsage(version) })

	args := fs.Args()
	switch {
	case len(args) == 1:
		cfg.CSVPath = args[0]
	case len(args) == 0 && cfg.CheckOnly:
		// Check mode inspects templates only; CSV is optional.
	default:
		return fmt.Errorf("need exactly the data.csv argument")
	}
	return nil
}

// defineCommonFlags registers output, encoding, behavior and display flags
// shared by both commands.
func defineCommonFlags(fs *flag.FlagSet, cfg *Config, ex *exitFlags) {
	fs.StringVar(&cfg.OutDir, "outdir", cfg.OutDir, "Output directory (created if absent)")
	fs.StringVar(&cfg.OutDir, "o", cfg.OutDir, "Same as --outdir")
	fs.Var(&encodingValue{&cfg.Encoding}, "encoding", "CSV encoding: utf-8 | latin-1 | windows-1252")
	fs.Var(&encodingValue{&cfg.Encoding}, "e", "Same as --encoding")

	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Process rows but write no files")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Diagnose template/CSV agreement and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")

	fs.BoolVar(&ex.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&ex.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")

	fs.BoolVar(&ex.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&ex.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&ex.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&ex.showHelp, "h", false, "Same as --help")
}

// applyExitFlags resolves color overrides and handles --help/--version,
// which print and exit.
func applyExitFlags(cfg *Config, ex *exitFlags, name, version string, usage func()) {
	if ex.noColor {
		cfg.ColorMode = ColorNever
	} else if ex.forceColor {
		cfg.ColorMode = ColorAlways
	}
	if ex.showHelp {
		usage()
		os.Exit(0)
	}
	if ex.showVersion {
		fmt.Fprintln(os.Stdout, name+" v"+version)
		os.Exit(0)
	}
}

// usageLine is one row of a column-aligned usage table.
type usageLine struct {
	flags string
	desc  string
}

func printFillUsage(version string) {
	printUsageTable([]usageLine{
		{"", "docfill v" + version + " — fill a bracket-marker DOCX template from CSV rows"},
		{"", ""},
		{"  docfill [OPTIONS] <template.docx> <data.csv>", ""},
		{"", ""},
		{"Output", ""},
		{"  -o, --outdir <dir>", "Output directory (default: salida)"},
		{"  -n, --name-column <col>", "CSV column used for output filenames"},
		{"  -e, --encoding <enc>", "CSV encoding: utf-8 | latin-1 | windows-1252"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Process rows but write no files"},
		{"  -c, --check", "Show marker/column resolution and exit"},
		{"", ""},
		{"Display", ""},
		{"  --color / --no-color", "Force or disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append logs to file"},
		{"", ""},
		{"Utility", ""},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	})
}

func printFormsUsage(version string) {
	printUsageTable([]usageLine{
		{"", "formgen v" + version + " — generate ANID Formulario N°1 & N°2 per student from CSV"},
		{"", ""},
		{"  formgen [OPTIONS] <data.csv>", ""},
		{"", ""},
		{"Templates", ""},
		{"  --f1 <path>", "Formulario N°1 template (default: Formulario_N1_2026.docx)"},
		{"  --f2 <path>", "Formulario N°2 template (default: Formulario_N_2_2026.docx)"},
		{"  --labels <path>", "YAML label-registry override"},
		{"", ""},
		{"Output", ""},
		{"  -o, --outdir <dir>", "Output directory (default: salida)"},
		{"  -e, --encoding <enc>", "CSV encoding: utf-8 | latin-1 | windows-1252"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Process rows but write no files"},
		{"  -c, --check", "Verify templates contain all labels and exit"},
		{"", ""},
		{"Display", ""},
		{"  --color / --no-color", "Force or disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append logs to file"},
		{"", ""},
		{"Utility", ""},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	})
}

// printUsageTable writes the help text to stderr. Column-aligned for readability.
func printUsageTable(lines []usageLine) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so the Encoding enum works with flag.Var.

type encodingValue struct{ p *Encoding }

func (e *encodingValue) String() string {
	if e.p == nil {
		return ""
	}
	return string(*e.p)
}

func (e *encodingValue) Set(s string) error {
	enc, err := ParseEncoding(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*e.p = enc
	return nil
}
