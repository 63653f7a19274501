package profile

import (
	"math"

	"github.com/nao1215/loanqa/internal/model"
	"github.com/nao1215/loanqa/internal/quality"
	"gonum.org/v1/gonum/stat"
)

// buildCorrelations computes the Pearson matrix of the numeric columns of t.
// Each pair uses the rows where both values are present.
func buildCorrelations(t *model.Table) Correlations {
	names := quality.NumericColumns(t)
	cols := make([]*model.Column, len(names))
	for i, name := range names {
		// NumericColumns only returns existing names.
		cols[i], _ = t.Column(name)
	}

	values := make([][]float64, len(names))
	for i := range values {
		values[i] = make([]float64, len(names))
	}
	for i := range cols {
		values[i][i] = 1
		for j := i + 1; j < len(cols); j++ {
			r := Pearson(cols[i], cols[j])
			values[i][j] = r
			values[j][i] = r
		}
	}
	return Correlations{Columns: names, Values: values}
}

// Pearson returns the Pearson correlation coefficient of two columns over the
// rows where both cells are numeric. It returns NaN when fewer than two such
// rows exist or either side has zero variance.
func Pearson(a, b *model.Column) float64 {
	var xs, ys []float64
	for i := range min(len(a.Cells), len(b.Cells)) {
		x, okx := a.Cells[i].Float()
		y, oky := b.Cells[i].Float()
		if okx && oky {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	n := len(xs)
	if n < 2 {
		return math.NaN()
	}

	_, vx := stat.MeanVariance(xs, nil)
	_, vy := stat.MeanVariance(ys, nil)
	if vx == 0 || vy == 0 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
