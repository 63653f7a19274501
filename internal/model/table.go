package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the runtime kind of a single cell or the inferred kind of a column.
//
// Design decision: We keep the loaded values as text and classify them on demand
// instead of converting each column to a typed slice. The quality checks need to see
// exactly what the file contained (e.g., a stray "abc" in a numeric column), and a
// typed conversion would either fail or silently drop that evidence.
type Kind int

const (
	// KindMissing marks a cell with no value.
	KindMissing Kind = iota

	// KindInt marks a cell that parses as a base-10 integer.
	KindInt

	// KindFloat marks a cell that parses as a floating point number but not as an integer.
	KindFloat

	// KindString marks any other present cell.
	KindString
)

// String returns the short kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether the kind is int or float.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := parseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// parseKind converts a kind name back to a Kind.
func parseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "missing":
		return KindMissing, nil
	case "int", "integer":
		return KindInt, nil
	case "float", "number":
		return KindFloat, nil
	case "str", "string", "text":
		return KindString, nil
	default:
		return KindMissing, fmt.Errorf("unknown kind %q", s)
	}
}

// Cell is one value of a table. A cell with Valid=false is a missing entry.
type Cell struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// NewCell returns a present cell holding v.
func NewCell(v string) Cell {
	return Cell{Value: v, Valid: true}
}

// NullCell returns a missing cell.
func NullCell() Cell {
	return Cell{}
}

// Kind classifies the cell.
func (c Cell) Kind() Kind {
	if !c.Valid {
		return KindMissing
	}
	if _, err := strconv.ParseInt(c.Value, 10, 64); err == nil {
		return KindInt
	}
	if _, ok := parseFinite(c.Value); ok {
		return KindFloat
	}
	return KindString
}

// Float returns the numeric value of the cell.
// The second result is false for missing or non-numeric cells.
func (c Cell) Float() (float64, bool) {
	if !c.Valid {
		return 0, false
	}
	return parseFinite(c.Value)
}

// parseFinite parses v as a float64. Infinities and NaN spelled out in the
// data ("inf", "-Infinity", "NAN") are not numbers for the checks and are
// reported as text.
func parseFinite(v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// String returns the cell value, or "NaN" for a missing cell.
func (c Cell) String() string {
	if !c.Valid {
		return "NaN"
	}
	return c.Value
}

// Column is a named sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if !cell.Valid {
			n++
		}
	}
	return n
}

// Kinds returns the distinct kinds of the present cells, in Kind order.
// Missing cells never contribute a kind.
func (c *Column) Kinds() []Kind {
	var seen [KindString + 1]bool
	for _, cell := range c.Cells {
		seen[cell.Kind()] = true
	}
	kinds := make([]Kind, 0, 3)
	for k := KindInt; k <= KindString; k++ {
		if seen[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// InferredKind returns the kind a loader would give the whole column:
// int when every present cell is an integer, float when every present cell
// is numeric, str otherwise. A column without present cells is KindMissing.
func (c *Column) InferredKind() Kind {
	kinds := c.Kinds()
	switch {
	case len(kinds) == 0:
		return KindMissing
	case len(kinds) == 1:
		return kinds[0]
	case len(kinds) == 2 && kinds[0] == KindInt && kinds[1] == KindFloat:
		return KindFloat
	default:
		return KindString
	}
}

// Table is a column-oriented dataset.
// The zero value is not usable; create tables with NewTable.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NewTable creates an empty table with the given column names.
func NewTable(names ...string) (*Table, error) {
	t := &Table{
		columns: make([]*Column, len(names)),
		index:   make(map[string]int, len(names)),
	}
	for i, name := range names {
		if _, ok := t.index[name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, name)
		}
		t.index[name] = i
		t.columns[i] = &Column{Name: name}
	}
	return t, nil
}

// AppendRow appends one row. The row must hold one cell per column.
func (t *Table) AppendRow(cells []Cell) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrRowWidth, len(cells), len(t.columns))
	}
	for i, c := range t.columns {
		c.Cells = append(c.Cells, cells[i])
	}
	t.rows++
	return nil
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return t.rows
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return t.columns[i], nil
}

// ColumnAt returns the column at position i.
func (t *Table) ColumnAt(i int) *Column {
	return t.columns[i]
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Cell {
	row := make([]Cell, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Cells[i]
	}
	return row
}

// SetCell replaces a single cell.
func (t *Table) SetCell(row int, column string, cell Cell) error {
	c, err := t.Column(column)
	if err != nil {
		return err
	}
	if row < 0 || row >= t.rows {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	c.Cells[row] = cell
	return nil
}
