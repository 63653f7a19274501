package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoDataPath is returned when no dataset path is configured.
	// Both stages need it: the generator writes there and the reporter reads it.
	ErrNoDataPath = errors.New("no data path specified: set data_path or use --data")

	// ErrInvalidRecordCount is returned when the number of records to generate
	// is not positive.
	ErrInvalidRecordCount = errors.New("invalid record count: must be positive")

	// ErrEmptyTitle is returned when the report title is blank.
	ErrEmptyTitle = errors.New("report title must not be empty")

	// ErrInvalidHistogramBins is returned when the histogram bin count is not positive.
	ErrInvalidHistogramBins = errors.New("invalid histogram bins: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrUnsupportedProfileFormat is returned when the profile path extension
	// does not name a known profile format.
	ErrUnsupportedProfileFormat = errors.New("unsupported profile format: use .html, .xlsx or .md")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfigFile is returned when the configuration file holds
	// values outside their allowed range.
	ErrInvalidConfigFile = errors.New("invalid configuration file")
)
