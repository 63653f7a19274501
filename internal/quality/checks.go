package quality

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/nao1215/loanqa/internal/model"
)

// DuplicateRecords counts exact full-row duplicates.
// Every row whose content equals an earlier row is a duplicate; the first
// occurrence of each group is not. Missing cells equal each other and differ
// from every present value, including the empty string.
func DuplicateRecords(t *model.Table) *model.DuplicateResult {
	first := make(map[string]int, t.NumRows())
	result := &model.DuplicateResult{
		Columns: t.Columns(),
		Rows:    []model.DuplicateRow{},
	}

	for r := range t.NumRows() {
		row := t.Row(r)
		key := rowKey(row)
		if idx, ok := first[key]; ok {
			result.Rows = append(result.Rows, model.DuplicateRow{
				Index:      r,
				FirstIndex: idx,
				Cells:      row,
			})
			continue
		}
		first[key] = r
	}

	result.Count = len(result.Rows)
	result.Message = fmt.Sprintf("%d duplicates found.", result.Count)
	return result
}

// rowKey encodes a row so that distinct rows never share a key.
func rowKey(row []model.Cell) string {
	var b strings.Builder
	for _, c := range row {
		if !c.Valid {
			b.WriteString("-|")
			continue
		}
		b.WriteString("+")
		b.WriteString(strconv.Itoa(len(c.Value)))
		b.WriteString(":")
		b.WriteString(c.Value)
		b.WriteString("|")
	}
	return b.String()
}

// TypeConsistency reports columns whose present values do not share one kind.
//
// Kinds are collected from present cells only. In a column declared float, or an
// undeclared column that already holds floats, integers count as floats. A column
// with more than one kind, or with a single kind different from its declared kind,
// yields one diagnostic. Consistent columns yield nothing.
func TypeConsistency(t *model.Table, schema *model.Schema) []string {
	issues := []string{}
	for i := range t.NumColumns() {
		col := t.ColumnAt(i)
		kinds := col.Kinds()
		spec, declared := schema.Lookup(col.Name)

		if (declared && spec.Kind == model.KindFloat) || (!declared && slices.Contains(kinds, model.KindFloat)) {
			hadInt := slices.Contains(kinds, model.KindInt)
			kinds = slices.DeleteFunc(kinds, func(k model.Kind) bool { return k == model.KindInt })
			if hadInt && !slices.Contains(kinds, model.KindFloat) {
				kinds = append([]model.Kind{model.KindFloat}, kinds...)
			}
		}

		switch {
		case len(kinds) > 1:
			issues = append(issues, fmt.Sprintf("Column '%s' has inconsistent data types: %s", col.Name, formatKinds(kinds)))
		case len(kinds) == 1 && declared && kinds[0] != spec.Kind:
			issues = append(issues, fmt.Sprintf("Column '%s' is declared %s but holds %s", col.Name, spec.Kind, formatKinds(kinds)))
		}
	}
	return issues
}

func formatKinds(kinds []model.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// MissingValues counts missing entries of the named columns and returns one
// line per column, zero counts included. Without names the demographic columns
// are checked. A column absent from the table is an error.
func MissingValues(t *model.Table, columns ...string) ([]string, error) {
	if len(columns) == 0 {
		columns = model.DemographicColumns()
	}
	lines := make([]string, 0, len(columns))
	for _, name := range columns {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("Column '%s' has %d missing values.", name, col.MissingCount()))
	}
	return lines, nil
}

// MissingDataChart returns the missing percentage of every column as a bar chart,
// sorted by percentage in descending order. Columns with equal percentages keep
// their table order.
func MissingDataChart(t *model.Table) *model.BarChart {
	chart := &model.BarChart{
		Title:  "Missing Data Percentage",
		XLabel: "Columns",
		YLabel: "Percentage",
		Bars:   make([]model.Bar, t.NumColumns()),
	}

	rows := t.NumRows()
	for i := range t.NumColumns() {
		col := t.ColumnAt(i)
		var pct float64
		if rows > 0 {
			pct = float64(col.MissingCount()) / float64(rows) * 100
		}
		chart.Bars[i] = model.Bar{Label: col.Name, Value: pct}
	}

	slices.SortStableFunc(chart.Bars, func(a, b model.Bar) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		default:
			return 0
		}
	})
	return chart
}
