package model

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
)

// ColumnSpec declares the kind and the value domain of one column.
// At most one of Enum, Allowed or the Min/Max range applies to a column.
type ColumnSpec struct {
	// Name is the column header.
	Name string `json:"name"`

	// Kind is the declared kind of every present value.
	Kind Kind `json:"kind"`

	// Enum lists the permitted values of a categorical column.
	Enum []string `json:"enum,omitempty"`

	// Allowed lists the permitted values of a discrete numeric column.
	Allowed []int64 `json:"allowed,omitempty"`

	// Min and Max bound a numeric column (inclusive) when HasRange is true.
	Min      int64 `json:"min,omitempty"`
	Max      int64 `json:"max,omitempty"`
	HasRange bool  `json:"has_range,omitempty"`

	// Pattern constrains the text of an identifier column.
	Pattern *regexp.Regexp `json:"-"`

	// Unique requires every present value to be distinct.
	Unique bool `json:"unique,omitempty"`
}

// InEnum reports whether v is one of the column's enumerated values.
func (s ColumnSpec) InEnum(v string) bool {
	return slices.Contains(s.Enum, v)
}

// Check validates a single present value against the spec.
// It returns an empty string when the value is acceptable, or the reason it is not.
func (s ColumnSpec) Check(v string) string {
	switch {
	case s.Pattern != nil && !s.Pattern.MatchString(v):
		return fmt.Sprintf("does not match %s", s.Pattern.String())
	case len(s.Enum) > 0 && !s.InEnum(v):
		return fmt.Sprintf("not one of %v", s.Enum)
	}

	if !s.Kind.IsNumeric() || (len(s.Allowed) == 0 && !s.HasRange) {
		return ""
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return "not an integer"
	}
	if len(s.Allowed) > 0 && !slices.Contains(s.Allowed, n) {
		return fmt.Sprintf("not one of %v", s.Allowed)
	}
	if s.HasRange && (n < s.Min || n > s.Max) {
		return fmt.Sprintf("outside [%d, %d]", s.Min, s.Max)
	}
	return ""
}

// Schema is an ordered list of column specifications.
type Schema struct {
	specs []ColumnSpec
	index map[string]int
}

// NewSchema builds a schema from specs in column order.
func NewSchema(specs ...ColumnSpec) *Schema {
	s := &Schema{
		specs: specs,
		index: make(map[string]int, len(specs)),
	}
	for i, spec := range specs {
		s.index[spec.Name] = i
	}
	return s
}

// Lookup returns the spec for the named column.
func (s *Schema) Lookup(name string) (ColumnSpec, bool) {
	if s == nil {
		return ColumnSpec{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return ColumnSpec{}, false
	}
	return s.specs[i], true
}

// Specs returns the column specs in column order.
func (s *Schema) Specs() []ColumnSpec {
	return slices.Clone(s.specs)
}

// Columns returns the column names in column order.
func (s *Schema) Columns() []string {
	names := make([]string, len(s.specs))
	for i, spec := range s.specs {
		names[i] = spec.Name
	}
	return names
}
