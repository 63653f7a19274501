package profile

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the profile workbook, in workbook order.
const (
	SheetOverview     = "Overview"
	SheetVariables    = "Variables"
	SheetMissing      = "Missing"
	SheetCorrelations = "Correlations"
	SheetSample       = "Sample"
)

// XLSXBackend renders a profile as an Excel workbook with one sheet per
// profile part.
type XLSXBackend struct{}

// NewXLSXBackend creates an XLSXBackend.
func NewXLSXBackend() *XLSXBackend {
	return &XLSXBackend{}
}

// Extension implements Backend.
func (b *XLSXBackend) Extension() string {
	return ".xlsx"
}

// Render implements Backend.
func (b *XLSXBackend) Render(w io.Writer, p *Profile) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetOverview); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetVariables, SheetMissing, SheetCorrelations, SheetSample} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	sw := sheetWriter{f: f, bold: bold}
	sw.overview(p)
	sw.variables(p)
	sw.missing(p)
	sw.correlations(p)
	sw.sample(p)
	if sw.err != nil {
		return sw.err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// sheetWriter fills workbook sheets row by row and keeps the first error.
type sheetWriter struct {
	f    *excelize.File
	bold int
	err  error
}

// row writes values into the given 1-based row of sheet.
func (s *sheetWriter) row(sheet string, row int, values ...any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetSheetRow(sheet, cell, &values); err != nil {
		s.err = fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
}

// header writes a bold header row.
func (s *sheetWriter) header(sheet string, row int, values ...any) {
	s.row(sheet, row, values...)
	if s.err != nil {
		return
	}
	if err := s.f.SetRowStyle(sheet, row, row, s.bold); err != nil {
		s.err = fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
}

func (s *sheetWriter) overview(p *Profile) {
	o := p.Overview
	s.header(SheetOverview, 1, "Property", "Value")
	s.row(SheetOverview, 2, "Title", p.Title)
	s.row(SheetOverview, 3, "Generated", p.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	s.row(SheetOverview, 4, "Number of variables", o.Columns)
	s.row(SheetOverview, 5, "Number of observations", o.Rows)
	s.row(SheetOverview, 6, "Numeric variables", o.NumericColumns)
	s.row(SheetOverview, 7, "Text variables", o.TextColumns)
	s.row(SheetOverview, 8, "Missing cells", o.MissingCells)
	s.row(SheetOverview, 9, "Missing cells (%)", round2(o.MissingPercent))
	s.row(SheetOverview, 10, "Duplicate rows", o.DuplicateRows)
	s.row(SheetOverview, 11, "Duplicate rows (%)", round2(o.DuplicatePercent))

	s.header(SheetOverview, 13, "Alert", "Column", "Message")
	for i, a := range p.Alerts {
		s.row(SheetOverview, 14+i, string(a.Kind), a.Column, a.Message)
	}
}

func (s *sheetWriter) variables(p *Profile) {
	s.header(SheetVariables, 1,
		"Variable", "Kind", "Count", "Distinct", "Missing", "Missing (%)",
		"Mean", "Std", "Min", "25%", "50%", "75%", "Max", "Top", "Freq")
	for i, v := range p.Variables {
		st := v.Stats
		values := []any{
			v.Name(), st.Kind.String(), st.Count, v.Distinct, v.Missing, round2(v.MissingPercent),
			optional(st.Mean), optional(st.Std), optional(st.Min),
			optional(st.P25), optional(st.P50), optional(st.P75), optional(st.Max),
			"", "",
		}
		if st.Top != nil {
			values[13] = *st.Top
		}
		if st.Freq != nil {
			values[14] = *st.Freq
		}
		s.row(SheetVariables, i+2, values...)
	}
}

func (s *sheetWriter) missing(p *Profile) {
	s.header(SheetMissing, 1, "Column", "Missing", "Missing (%)")
	missing := make(map[string]int, len(p.Variables))
	for _, v := range p.Variables {
		missing[v.Name()] = v.Missing
	}
	for i, b := range p.MissingChart.Bars {
		s.row(SheetMissing, i+2, b.Label, missing[b.Label], round2(b.Value))
	}
}

func (s *sheetWriter) correlations(p *Profile) {
	c := p.Correlations
	head := make([]any, 0, len(c.Columns)+1)
	head = append(head, "")
	for _, name := range c.Columns {
		head = append(head, name)
	}
	s.header(SheetCorrelations, 1, head...)
	for i, row := range c.Values {
		values := make([]any, 0, len(row)+1)
		values = append(values, c.Columns[i])
		for _, r := range row {
			if math.IsNaN(r) {
				values = append(values, "")
				continue
			}
			values = append(values, math.Round(r*10000)/10000)
		}
		s.row(SheetCorrelations, i+2, values...)
	}
}

func (s *sheetWriter) sample(p *Profile) {
	head := make([]any, len(p.SampleColumns))
	for i, name := range p.SampleColumns {
		head[i] = name
	}
	s.header(SheetSample, 1, head...)
	for i, r := range p.Sample {
		values := make([]any, len(r))
		for j, v := range r {
			values[j] = v
		}
		s.row(SheetSample, i+2, values...)
	}
}

// optional returns the statistic or an empty cell when it does not apply.
func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return round2(*v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
