package profile

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/nao1215/loanqa/internal/model"
	"github.com/nao1215/loanqa/internal/quality"
)

const (
	// SampleRows is the number of leading rows shown in the sample section.
	SampleRows = 10

	// TopValues is the number of most frequent values listed per variable.
	TopValues = 10

	// HighCorrelation is the absolute Pearson coefficient above which a pair
	// of columns raises an alert.
	HighCorrelation = 0.9
)

// AlertKind classifies a profile alert.
type AlertKind string

const (
	// AlertMissing flags a column with missing values.
	AlertMissing AlertKind = "missing"

	// AlertUnique flags a text column whose values are all distinct.
	AlertUnique AlertKind = "unique"

	// AlertConstant flags a column with a single distinct value.
	AlertConstant AlertKind = "constant"

	// AlertMixedTypes flags a column whose values do not share one kind.
	AlertMixedTypes AlertKind = "mixed_types"

	// AlertCorrelation flags a pair of strongly correlated numeric columns.
	AlertCorrelation AlertKind = "high_correlation"

	// AlertDuplicates flags a table with duplicate rows.
	AlertDuplicates AlertKind = "duplicates"
)

// Alert is one noteworthy finding of the profile.
type Alert struct {
	Kind    AlertKind
	Column  string
	Message string
}

// Overview holds table-level statistics.
type Overview struct {
	Rows             int
	Columns          int
	NumericColumns   int
	TextColumns      int
	MissingCells     int
	MissingPercent   float64
	DuplicateRows    int
	DuplicatePercent float64
}

// ValueCount is the frequency of one value.
type ValueCount struct {
	Value   string
	Count   int
	Percent float64
}

// Variable is the profile of one column.
type Variable struct {
	Stats          model.ColumnStats
	Missing        int
	MissingPercent float64
	Distinct       int
	Kinds          []model.Kind
	TopValues      []ValueCount

	// Histogram is nil for text columns.
	Histogram *model.Histogram
}

// Name returns the column name.
func (v Variable) Name() string {
	return v.Stats.Name
}

// Correlations is the Pearson correlation matrix of the numeric columns.
// Values[i][j] is NaN when either column has no variance.
type Correlations struct {
	Columns []string
	Values  [][]float64
}

// Profile is a descriptive profile of a whole table.
type Profile struct {
	Title        string
	GeneratedAt  time.Time
	Overview     Overview
	Alerts       []Alert
	Variables    []Variable
	MissingChart *model.BarChart
	Correlations Correlations
	Duplicates   *model.DuplicateResult

	// SampleColumns and Sample hold the first SampleRows rows.
	SampleColumns []string
	Sample        [][]string
}

// Build computes the profile of t.
func Build(t *model.Table, title string) (*Profile, error) {
	if t.NumColumns() == 0 {
		return nil, ErrEmptyTable
	}

	p := &Profile{
		Title:         title,
		GeneratedAt:   time.Now(),
		MissingChart:  quality.MissingDataChart(t),
		Duplicates:    quality.DuplicateRecords(t),
		SampleColumns: t.Columns(),
	}

	summary := quality.Summary(t)
	p.Variables = make([]Variable, t.NumColumns())
	for i := range t.NumColumns() {
		v, err := buildVariable(t, t.ColumnAt(i), summary.Columns[i])
		if err != nil {
			return nil, err
		}
		p.Variables[i] = v
	}

	p.Overview = buildOverview(t, p)
	p.Correlations = buildCorrelations(t)
	p.Alerts = buildAlerts(p)

	n := min(t.NumRows(), SampleRows)
	p.Sample = make([][]string, n)
	for r := range n {
		row := t.Row(r)
		p.Sample[r] = make([]string, len(row))
		for c, cell := range row {
			p.Sample[r][c] = cell.String()
		}
	}

	return p, nil
}

func buildVariable(t *model.Table, col *model.Column, stats model.ColumnStats) (Variable, error) {
	rows := t.NumRows()
	v := Variable{
		Stats:   stats,
		Missing: col.MissingCount(),
		Kinds:   col.Kinds(),
	}
	v.MissingPercent = percent(v.Missing, rows)

	counts := make(map[string]int)
	var order []string
	for _, cell := range col.Cells {
		if !cell.Valid {
			continue
		}
		if _, ok := counts[cell.Value]; !ok {
			order = append(order, cell.Value)
		}
		counts[cell.Value]++
	}
	v.Distinct = len(order)

	// Stable sort keeps first-seen order among equal counts.
	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})
	present := rows - v.Missing
	for _, value := range order[:min(len(order), TopValues)] {
		v.TopValues = append(v.TopValues, ValueCount{
			Value:   value,
			Count:   counts[value],
			Percent: percent(counts[value], present),
		})
	}

	if stats.IsNumeric() && stats.Count > 0 {
		h, err := quality.Histogram(t, col.Name, quality.DefaultBins)
		if err != nil {
			return Variable{}, fmt.Errorf("histogram of %s: %w", col.Name, err)
		}
		v.Histogram = h
	}
	return v, nil
}

func buildOverview(t *model.Table, p *Profile) Overview {
	o := Overview{
		Rows:          t.NumRows(),
		Columns:       t.NumColumns(),
		DuplicateRows: p.Duplicates.Count,
	}
	for _, v := range p.Variables {
		if v.Stats.IsNumeric() {
			o.NumericColumns++
		} else {
			o.TextColumns++
		}
		o.MissingCells += v.Missing
	}
	o.MissingPercent = percent(o.MissingCells, o.Rows*o.Columns)
	o.DuplicatePercent = percent(o.DuplicateRows, o.Rows)
	return o
}

func buildAlerts(p *Profile) []Alert {
	var alerts []Alert
	if p.Overview.DuplicateRows > 0 {
		alerts = append(alerts, Alert{
			Kind:    AlertDuplicates,
			Message: fmt.Sprintf("Dataset has %d (%.1f%%) duplicate rows", p.Overview.DuplicateRows, p.Overview.DuplicatePercent),
		})
	}
	for _, v := range p.Variables {
		name := v.Name()
		if v.Missing > 0 {
			alerts = append(alerts, Alert{
				Kind:    AlertMissing,
				Column:  name,
				Message: fmt.Sprintf("%s has %d (%.1f%%) missing values", name, v.Missing, v.MissingPercent),
			})
		}
		if len(v.Kinds) > 1 && v.Stats.Kind == model.KindString {
			alerts = append(alerts, Alert{
				Kind:    AlertMixedTypes,
				Column:  name,
				Message: fmt.Sprintf("%s mixes value types", name),
			})
		}
		switch {
		case v.Distinct == 1:
			alerts = append(alerts, Alert{
				Kind:    AlertConstant,
				Column:  name,
				Message: fmt.Sprintf("%s has constant value %q", name, v.TopValues[0].Value),
			})
		case v.Distinct > 1 && v.Distinct == v.Stats.Count && !v.Stats.IsNumeric():
			alerts = append(alerts, Alert{
				Kind:    AlertUnique,
				Column:  name,
				Message: fmt.Sprintf("%s has unique values", name),
			})
		}
	}

	c := p.Correlations
	for i := range c.Columns {
		for j := i + 1; j < len(c.Columns); j++ {
			r := c.Values[i][j]
			if !math.IsNaN(r) && math.Abs(r) >= HighCorrelation {
				alerts = append(alerts, Alert{
					Kind:    AlertCorrelation,
					Column:  c.Columns[i],
					Message: fmt.Sprintf("%s is highly correlated with %s (r = %.2f)", c.Columns[i], c.Columns[j], r),
				})
			}
		}
	}
	return alerts
}

// percent returns part as a percentage of whole, or 0 when whole is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
