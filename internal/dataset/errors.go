package dataset

import "errors"

var (
	// ErrUnsupportedFormat is returned when a path has an extension no codec handles.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")

	// ErrEmptyFile is returned when a CSV file has no header row.
	ErrEmptyFile = errors.New("dataset file is empty")
)
