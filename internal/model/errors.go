package model

import "errors"

var (
	// ErrColumnNotFound is returned when a table has no column with the requested name.
	ErrColumnNotFound = errors.New("column not found")

	// ErrRowWidth is returned when a row does not have one cell per column.
	ErrRowWidth = errors.New("row width does not match column count")

	// ErrRowOutOfRange is returned when a row index is negative or past the last row.
	ErrRowOutOfRange = errors.New("row index out of range")

	// ErrDuplicateColumn is returned when a table is created with a repeated column name.
	ErrDuplicateColumn = errors.New("duplicate column name")
)
