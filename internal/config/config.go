// Package config holds runtime configuration: defaults, .env and CLI flag
// parsing, and validation, shared by the docfill and formgen commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// --- Enum types for validated string fields ---

// Encoding selects the character encoding used to decode the input CSV.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"        // UTF-8, tolerates a leading BOM (default).
	EncodingLatin1      Encoding = "latin-1"      // ISO 8859-1.
	EncodingWindows1252 Encoding = "windows-1252" // Windows code page 1252.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid with .env values by [LoadEnv], and then mutated by the
// flag parsers before being passed (by pointer) to packages that need it.
type Config struct {
	// Inputs (set from positional args and template flags).
	CSVPath      string
	TemplatePath string // docfill: the bracket-marker template.
	Form1Path    string // formgen: Formulario N°1 template.
	Form2Path    string // formgen: Formulario N°2 template.
	LabelsPath   string // formgen: optional YAML label-registry override.

	// Output.
	OutDir     string   // Default: "salida".
	NameColumn string   // Column used for output names; empty = first non-empty cell.
	Encoding   Encoding // CSV encoding. Default: "utf-8".

	// Behavior flags.
	DryRun    bool // Process and name rows but write nothing.
	CheckOnly bool // Run template/CSV diagnostics and exit.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with the defaults of the original script:
// output to ./salida, BOM-tolerant UTF-8, ANID template filenames.
func DefaultConfig() Config {
	return Config{
		Form1Path: "Formulario_N1_2026.docx",
		Form2Path: "Formulario_N_2_2026.docx",
		OutDir:    "salida",
		Encoding:  EncodingUTF8,
		ColorMode: ColorAuto,
	}
}

// Env variable names honored by [LoadEnv]. Flags always win over env values.
const (
	envOutDir     = "FORMGEN_OUTDIR"
	envEncoding   = "FORMGEN_ENCODING"
	envNameColumn = "FORMGEN_NAME_COLUMN"
	envLogFile    = "FORMGEN_LOG"
)

// LoadEnv overlays cfg with values from the environment, after loading an
// optional .env file from the working directory. A missing .env file is not
// an error. Returns an error only when an env value is present but invalid.
func LoadEnv(cfg *Config) error {
	_ = godotenv.Load()

	if v := os.Getenv(envOutDir); v != "" {
		cfg.OutDir = NormalizeDirArg(v)
	}
	if v := os.Getenv(envEncoding); v != "" {
		enc, err := ParseEncoding(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envEncoding, err)
		}
		cfg.Encoding = enc
	}
	if v := os.Getenv(envNameColumn); v != "" {
		cfg.NameColumn = v
	}
	if v := os.Getenv(envLogFile); v != "" {
		cfg.LogFile = v
	}
	return nil
}

// ParseEncoding canonicalizes user encoding input. Accepted aliases:
// "utf-8"/"utf8", "latin-1"/"latin1"/"iso-8859-1", "windows-1252"/"cp1252".
func ParseEncoding(raw string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	case "windows-1252", "cp1252":
		return EncodingWindows1252, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q (use utf-8, latin-1 or windows-1252)", raw)
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks the enum fields shared by both commands.
func (c *Config) Validate() error {
	switch c.Encoding {
	case EncodingUTF8, EncodingLatin1, EncodingWindows1252:
		// valid
	default:
		return errors.New("invalid encoding (use 'utf-8', 'latin-1' or 'windows-1252')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.OutDir == "" {
		return errors.New("output directory must not be empty")
	}
	return nil
}

// ValidateFill additionally requires the docfill inputs.
func (c *Config) ValidateFill() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.TemplatePath == "" || c.CSVPath == "" {
		return errors.New("need exactly template.docx and data.csv")
	}
	return nil
}

// ValidateForms additionally requires the formgen inputs. The CSV may be
// omitted in CheckOnly mode, where only the templates are inspected.
func (c *Config) ValidateForms() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Form1Path == "" || c.Form2Path == "" {
		return errors.New("both --f1 and --f2 template paths are required")
	}
	if !c.CheckOnly && c.CSVPath == "" {
		return errors.New("need the data.csv argument")
	}
	return nil
}
