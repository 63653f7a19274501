package generator

import "errors"

// ErrInvalidRecordCount is returned when the requested record count is not positive.
var ErrInvalidRecordCount = errors.New("record count must be positive")
