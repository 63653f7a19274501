package profile

import "errors"

var (
	// ErrUnsupportedFormat is returned when no backend handles an output path.
	ErrUnsupportedFormat = errors.New("unsupported profile format")

	// ErrEmptyTable is returned when a profile is requested for a table without columns.
	ErrEmptyTable = errors.New("table has no columns")
)
