package quality

import (
	"fmt"

	"github.com/nao1215/loanqa/internal/model"
)

// Violation is one value outside its declared domain.
type Violation struct {
	// Row is the zero-based row index, or -1 for a column-level violation.
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

// String formats the violation for console output.
func (v Violation) String() string {
	if v.Row < 0 {
		return fmt.Sprintf("column %s: %s", v.Column, v.Reason)
	}
	return fmt.Sprintf("row %d, column %s, value %q: %s", v.Row, v.Column, v.Value, v.Reason)
}

// DomainViolations checks every present value against the schema: enumerations,
// numeric ranges, discrete sets, the identifier pattern and uniqueness.
// Declared columns missing from the table are reported once each with Row -1.
// Missing cells are not violations; MissingValues reports them.
func DomainViolations(t *model.Table, schema *model.Schema) []Violation {
	violations := []Violation{}

	for _, spec := range schema.Specs() {
		if !t.HasColumn(spec.Name) {
			violations = append(violations, Violation{Row: -1, Column: spec.Name, Reason: "column missing"})
			continue
		}
		col, _ := t.Column(spec.Name)

		var seen map[string]int
		if spec.Unique {
			seen = make(map[string]int, len(col.Cells))
		}

		for r, cell := range col.Cells {
			if !cell.Valid {
				continue
			}
			if reason := spec.Check(cell.Value); reason != "" {
				violations = append(violations, Violation{Row: r, Column: spec.Name, Value: cell.Value, Reason: reason})
			}
			if seen == nil {
				continue
			}
			if first, dup := seen[cell.Value]; dup {
				violations = append(violations, Violation{
					Row: r, Column: spec.Name, Value: cell.Value,
					Reason: fmt.Sprintf("duplicate of row %d", first),
				})
				continue
			}
			seen[cell.Value] = r
		}
	}
	return violations
}
