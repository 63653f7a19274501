package config

// File represents the structure of the .loanqa configuration file.
//
// Design decision: Every field is a pointer or a slice so that a key absent
// from the file leaves the lower layer untouched, while an explicit zero
// (for example seed: 0) still overrides it.
type File struct {
	// DataPath is the dataset file (.csv or .db).
	DataPath *string `yaml:"data_path,omitempty" validate:"omitempty,min=1"`

	// NumRecords is the number of records to generate.
	NumRecords *int `yaml:"num_records,omitempty" validate:"omitempty,min=1,max=10000000"`

	// Seed initializes the generator.
	Seed *int64 `yaml:"seed,omitempty"`

	// ReportTitle is the report and profile heading.
	ReportTitle *string `yaml:"report_title,omitempty" validate:"omitempty,min=1,max=200"`

	// ProfilePath is the profiling artifact (.html, .xlsx or .md).
	// An explicit empty string disables profiling.
	ProfilePath *string `yaml:"profile_path,omitempty"`

	// MissingColumns are the columns counted by the missing-values check.
	MissingColumns []string `yaml:"missing_columns,omitempty" validate:"omitempty,dive,required"`

	// Histograms configures the optional distribution charts.
	Histograms *HistogramFile `yaml:"histograms,omitempty"`

	// ChartsDir receives one SVG file per chart.
	ChartsDir *string `yaml:"charts_dir,omitempty"`

	// Verbose enables debug logging.
	Verbose *bool `yaml:"verbose,omitempty"`

	// LogJSON switches log records to JSON.
	LogJSON *bool `yaml:"log_json,omitempty"`
}

// HistogramFile holds the histogram section of the configuration file.
type HistogramFile struct {
	// Columns are the numeric columns to chart.
	Columns []string `yaml:"columns,omitempty" validate:"omitempty,dive,required"`

	// Bins is the number of bins per histogram.
	Bins *int `yaml:"bins,omitempty" validate:"omitempty,min=1,max=1000"`
}

// ApplyTo overrides the fields of cfg that are set in the file.
func (f *File) ApplyTo(cfg *Config) {
	if f.DataPath != nil {
		cfg.DataPath = *f.DataPath
	}
	if f.NumRecords != nil {
		cfg.NumRecords = *f.NumRecords
	}
	if f.Seed != nil {
		cfg.Seed = *f.Seed
	}
	if f.ReportTitle != nil {
		cfg.ReportTitle = *f.ReportTitle
	}
	if f.ProfilePath != nil {
		cfg.ProfilePath = *f.ProfilePath
	}
	if len(f.MissingColumns) > 0 {
		cfg.MissingColumns = f.MissingColumns
	}
	if f.Histograms != nil {
		if len(f.Histograms.Columns) > 0 {
			cfg.HistogramColumns = f.Histograms.Columns
		}
		if f.Histograms.Bins != nil {
			cfg.HistogramBins = *f.Histograms.Bins
		}
	}
	if f.ChartsDir != nil {
		cfg.ChartsDir = *f.ChartsDir
	}
	if f.Verbose != nil {
		cfg.Verbose = *f.Verbose
	}
	if f.LogJSON != nil {
		cfg.LogJSON = *f.LogJSON
	}
}
