package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"

	"github.com/nao1215/loanqa/internal/model"
	"github.com/nao1215/loanqa/internal/profile"
)

// Default configuration values.
// Every default path is relative so the same configuration works on any machine.
const (
	// DefaultDataPath is where the generator writes and the reporter reads the dataset.
	// The extension selects the storage format (.csv or .db).
	DefaultDataPath = "loan_applications.csv"

	// DefaultNumRecords is the number of synthetic loan applications to draw.
	DefaultNumRecords = 5000

	// DefaultSeed makes two runs with default settings produce identical datasets.
	DefaultSeed int64 = 42

	// DefaultReportTitle is the title of the report and the profile.
	DefaultReportTitle = "Loan Application Data Quality Report"

	// DefaultProfilePath is the standalone profiling artifact.
	// The extension selects the format (.html, .xlsx or .md).
	DefaultProfilePath = "data_quality_report.html"

	// DefaultHistogramBins matches the bin count of the distribution plots.
	DefaultHistogramBins = 20

	// AppName is the application name used for XDG directory paths.
	AppName = "loanqa"
)

// Config holds all configuration options for loanqa.
// This struct is populated from defaults, the configuration file, the
// environment and CLI flags, then passed into both stages explicitly.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// DataPath is the dataset file. The generator writes it and the reporter reads it.
	DataPath string

	// NumRecords is the number of records the generator draws.
	NumRecords int

	// Seed initializes the generator's random source.
	// The same seed and record count always give the same dataset.
	Seed int64

	// ReportTitle is the heading of the report and of the profile.
	ReportTitle string

	// ProfilePath is the profiling artifact written by the reporter.
	// An empty path disables profiling.
	ProfilePath string

	// MissingColumns are the columns checked by the missing-values step.
	// When empty, the demographic columns are checked.
	MissingColumns []string

	// HistogramColumns are the numeric columns whose distributions are
	// charted after the report sections. Empty means no histograms.
	HistogramColumns []string

	// HistogramBins is the number of equal-width bins per histogram.
	HistogramBins int

	// ChartsDir, when set, receives one SVG file per chart.
	ChartsDir string

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable format.
	// When true, outputs GitHub Flavored Markdown with tables, alerts, and mermaid charts.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// LogJSON writes log records as JSON objects instead of key=value text.
	LogJSON bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .loanqa in the current directory,
	// then in the user's home directory, then config.yaml in the XDG
	// config directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (record count, seed, title).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		DataPath:       DefaultDataPath,
		NumRecords:     DefaultNumRecords,
		Seed:           DefaultSeed,
		ReportTitle:    DefaultReportTitle,
		ProfilePath:    DefaultProfilePath,
		MissingColumns: model.DemographicColumns(),
		HistogramBins:  DefaultHistogramBins,
	}
}

// XDGConfigDir returns the XDG config directory for loanqa.
// On Linux: ~/.config/loanqa
// On macOS: ~/Library/Application Support/loanqa
// On Windows: %APPDATA%\loanqa
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// We return the first error found because fixing one error often makes
// others irrelevant.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataPath) == "" {
		return ErrNoDataPath
	}

	if c.NumRecords <= 0 {
		return ErrInvalidRecordCount
	}

	if strings.TrimSpace(c.ReportTitle) == "" {
		return ErrEmptyTitle
	}

	if c.HistogramBins <= 0 {
		return ErrInvalidHistogramBins
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.ProfilePath != "" {
		ext := strings.ToLower(filepath.Ext(c.ProfilePath))
		if !slices.Contains(profile.SupportedExtensions(), ext) {
			return ErrUnsupportedProfileFormat
		}
	}

	return nil
}
