package quality

import (
	"fmt"
	"slices"

	"github.com/nao1215/loanqa/internal/model"
)

// DefaultBins is the bin count used when none is requested.
const DefaultBins = 20

// Histogram bins the named numeric column into equal-width bins over [min, max].
// Each bin includes its lower edge; the last bin also includes max. When every
// value is equal the range is widened to [v-0.5, v+0.5].
func Histogram(t *model.Table, column string, bins int) (*model.Histogram, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBins, bins)
	}
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if kind := col.InferredKind(); !kind.IsNumeric() {
		if kind == model.KindMissing {
			return nil, fmt.Errorf("%w: %s", ErrEmptyColumn, column)
		}
		return nil, fmt.Errorf("%w: %s holds %s values", ErrNotNumeric, column, kind)
	}

	values := numericValues(col)
	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	h := &model.Histogram{
		Column: column,
		Bins:   make([]model.HistogramBin, bins),
	}
	for i := range h.Bins {
		h.Bins[i].Lower = lo + float64(i)*width
		h.Bins[i].Upper = lo + float64(i+1)*width
	}
	h.Bins[bins-1].Upper = hi

	for _, v := range values {
		idx := min(max(int((v-lo)/width), 0), bins-1)
		h.Bins[idx].Count++
	}
	return h, nil
}

// NumericColumns returns the names of the columns whose values are all numeric.
func NumericColumns(t *model.Table) []string {
	var names []string
	for i := range t.NumColumns() {
		if t.ColumnAt(i).InferredKind().IsNumeric() {
			names = append(names, t.ColumnAt(i).Name)
		}
	}
	return names
}
