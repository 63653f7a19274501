package quality

import "errors"

var (
	// ErrNotNumeric is returned when a numeric operation is applied to a text column.
	ErrNotNumeric = errors.New("column is not numeric")

	// ErrEmptyColumn is returned when a column has no present values to work with.
	ErrEmptyColumn = errors.New("column has no values")

	// ErrInvalidBins is returned when a histogram is requested with fewer than one bin.
	ErrInvalidBins = errors.New("bin count must be positive")
)
