package quality

import (
	"math"
	"slices"

	"github.com/nao1215/loanqa/internal/model"
	"gonum.org/v1/gonum/stat"
)

// Summary computes descriptive statistics for every column of t, in column order.
//
// Numeric columns (every present value parses as a number) get count, mean,
// sample standard deviation, min, quartiles and max. Other columns get count,
// number of distinct values, the most frequent value and its frequency.
// Missing cells are excluded from every statistic.
func Summary(t *model.Table) *model.SummaryTable {
	out := &model.SummaryTable{
		Rows:    t.NumRows(),
		Columns: make([]model.ColumnStats, t.NumColumns()),
	}
	for i := range t.NumColumns() {
		out.Columns[i] = describe(t.ColumnAt(i))
	}
	return out
}

func describe(c *model.Column) model.ColumnStats {
	kind := c.InferredKind()
	stats := model.ColumnStats{
		Name:  c.Name,
		Kind:  kind,
		Count: len(c.Cells) - c.MissingCount(),
	}
	if stats.Count == 0 {
		return stats
	}
	if kind.IsNumeric() {
		describeNumeric(c, &stats)
	} else {
		describeText(c, &stats)
	}
	return stats
}

func describeText(c *model.Column, stats *model.ColumnStats) {
	counts := make(map[string]int)
	var order []string
	for _, cell := range c.Cells {
		if !cell.Valid {
			continue
		}
		if _, ok := counts[cell.Value]; !ok {
			order = append(order, cell.Value)
		}
		counts[cell.Value]++
	}

	// Ties go to the value seen first.
	top, freq := "", 0
	for _, v := range order {
		if counts[v] > freq {
			top, freq = v, counts[v]
		}
	}

	unique := len(order)
	stats.Unique = &unique
	stats.Top = &top
	stats.Freq = &freq
}

func describeNumeric(c *model.Column, stats *model.ColumnStats) {
	values := numericValues(c)
	slices.Sort(values)

	mean := stat.Mean(values, nil)
	stats.Mean = &mean

	if len(values) > 1 {
		std := stat.StdDev(values, nil)
		stats.Std = &std
	}

	minV, maxV := values[0], values[len(values)-1]
	p25 := Quantile(values, 0.25)
	p50 := Quantile(values, 0.50)
	p75 := Quantile(values, 0.75)
	stats.Min = &minV
	stats.P25 = &p25
	stats.P50 = &p50
	stats.P75 = &p75
	stats.Max = &maxV
}

// numericValues returns the present numeric values of c in row order.
func numericValues(c *model.Column) []float64 {
	values := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if f, ok := cell.Float(); ok {
			values = append(values, f)
		}
	}
	return values
}

// Quantile returns the q-th quantile of sorted using linear interpolation
// between the closest ranks. sorted must be non-empty and ascending.
// stat.Quantile only offers the empirical and LinInterp estimators, neither
// of which matches the closest-ranks interpolation of the report.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
