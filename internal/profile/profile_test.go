package profile

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/net/html"

	"github.com/nao1215/loanqa/internal/model"
)

// newFixtureTable builds a small table with a text column, two correlated
// numeric columns, a missing value and one duplicate row.
func newFixtureTable(t *testing.T) *model.Table {
	t.Helper()

	table, err := model.NewTable("Gender", "Income", "Loan", "Flag")
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	rows := [][]model.Cell{
		{model.NewCell("Male"), model.NewCell("1000"), model.NewCell("10"), model.NewCell("1")},
		{model.NewCell("Female"), model.NewCell("2000"), model.NewCell("20"), model.NewCell("1")},
		{model.NullCell(), model.NewCell("3000"), model.NewCell("30"), model.NewCell("1")},
		{model.NewCell("Male"), model.NewCell("4000"), model.NewCell("40"), model.NewCell("1")},
		{model.NewCell("Male"), model.NewCell("1000"), model.NewCell("10"), model.NewCell("1")},
	}
	for _, r := range rows {
		if err := table.AppendRow(r); err != nil {
			t.Fatalf("AppendRow() error: %v", err)
		}
	}
	return table
}

func hasAlert(p *Profile, kind AlertKind, column string) bool {
	return slices.ContainsFunc(p.Alerts, func(a Alert) bool {
		return a.Kind == kind && a.Column == column
	})
}

// TestBuild tests profile computation.
func TestBuild(t *testing.T) {
	t.Parallel()

	p, err := Build(newFixtureTable(t), "Fixture")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	t.Run("overview", func(t *testing.T) {
		t.Parallel()

		o := p.Overview
		if o.Rows != 5 || o.Columns != 4 {
			t.Errorf("unexpected shape: %+v", o)
		}
		if o.NumericColumns != 3 || o.TextColumns != 1 {
			t.Errorf("unexpected column kinds: %+v", o)
		}
		if o.MissingCells != 1 {
			t.Errorf("expected 1 missing cell, got %d", o.MissingCells)
		}
		if o.MissingPercent != 5 {
			t.Errorf("expected 5%% missing, got %v", o.MissingPercent)
		}
		if o.DuplicateRows != 1 || o.DuplicatePercent != 20 {
			t.Errorf("unexpected duplicates: %+v", o)
		}
	})

	t.Run("variables", func(t *testing.T) {
		t.Parallel()

		gender := p.Variables[0]
		if gender.Name() != "Gender" || gender.Distinct != 2 || gender.Missing != 1 {
			t.Errorf("unexpected Gender profile: %+v", gender)
		}
		if gender.TopValues[0].Value != "Male" || gender.TopValues[0].Count != 3 {
			t.Errorf("unexpected top value: %+v", gender.TopValues[0])
		}
		if gender.TopValues[0].Percent != 75 {
			t.Errorf("expected 75%% of present values, got %v", gender.TopValues[0].Percent)
		}
		if gender.Histogram != nil {
			t.Error("text column must not have a histogram")
		}

		income := p.Variables[1]
		if income.Histogram == nil || income.Histogram.Total() != 5 {
			t.Errorf("expected histogram over 5 values, got %+v", income.Histogram)
		}
	})

	t.Run("correlations", func(t *testing.T) {
		t.Parallel()

		c := p.Correlations
		if !slices.Equal(c.Columns, []string{"Income", "Loan", "Flag"}) {
			t.Fatalf("unexpected numeric columns: %v", c.Columns)
		}
		if math.Abs(c.Values[0][1]-1) > 1e-9 {
			t.Errorf("expected perfect correlation, got %v", c.Values[0][1])
		}
		if !math.IsNaN(c.Values[0][2]) {
			t.Errorf("expected NaN for constant column, got %v", c.Values[0][2])
		}
		if c.Values[2][2] != 1 {
			t.Errorf("expected unit diagonal, got %v", c.Values[2][2])
		}
	})

	t.Run("alerts", func(t *testing.T) {
		t.Parallel()

		if !hasAlert(p, AlertMissing, "Gender") {
			t.Error("expected missing alert for Gender")
		}
		if !hasAlert(p, AlertConstant, "Flag") {
			t.Error("expected constant alert for Flag")
		}
		if !hasAlert(p, AlertCorrelation, "Income") {
			t.Error("expected correlation alert for Income")
		}
		if !hasAlert(p, AlertDuplicates, "") {
			t.Error("expected duplicates alert")
		}
	})

	t.Run("sample", func(t *testing.T) {
		t.Parallel()

		if len(p.Sample) != 5 {
			t.Fatalf("expected 5 sample rows, got %d", len(p.Sample))
		}
		if p.Sample[2][0] != "NaN" {
			t.Errorf("missing cell should print as NaN, got %q", p.Sample[2][0])
		}
	})
}

// TestBuildEmptyTable tests that a table without columns is rejected.
func TestBuildEmptyTable(t *testing.T) {
	t.Parallel()

	table, err := model.NewTable()
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	if _, err := Build(table, "empty"); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

// TestBuildNonFiniteText tests a numeric-looking column holding "inf" and "NAN".
func TestBuildNonFiniteText(t *testing.T) {
	t.Parallel()

	table, err := model.NewTable("Loan_ID", "FICO_Score", "Income")
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	rows := [][]string{
		{"LP001", "400", "1000"},
		{"LP002", "inf", "2000"},
		{"LP003", "NAN", "3000"},
		{"LP004", "-Infinity", "4000"},
	}
	for _, r := range rows {
		cells := []model.Cell{model.NewCell(r[0]), model.NewCell(r[1]), model.NewCell(r[2])}
		if err := table.AppendRow(cells); err != nil {
			t.Fatalf("AppendRow() error: %v", err)
		}
	}

	p, err := Build(table, "non-finite")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if slices.Contains(p.Correlations.Columns, "FICO_Score") {
		t.Errorf("FICO_Score should not be correlated: %v", p.Correlations.Columns)
	}
	var buf bytes.Buffer
	if err := NewHTMLBackend().Render(&buf, p); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
}

// TestBuildSampleLimit tests that only the leading rows are sampled.
func TestBuildSampleLimit(t *testing.T) {
	t.Parallel()

	table, err := model.NewTable("n")
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	for i := range 25 {
		if err := table.AppendRow([]model.Cell{model.NewCell(model.LoanID(i + 1))}); err != nil {
			t.Fatalf("AppendRow() error: %v", err)
		}
	}
	p, err := Build(table, "ids")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(p.Sample) != SampleRows {
		t.Errorf("expected %d sample rows, got %d", SampleRows, len(p.Sample))
	}
	if len(p.Variables[0].TopValues) != TopValues {
		t.Errorf("expected %d top values, got %d", TopValues, len(p.Variables[0].TopValues))
	}
	if !hasAlert(p, AlertUnique, "n") {
		t.Error("expected unique alert")
	}
}

// TestPearson tests the correlation coefficient.
func TestPearson(t *testing.T) {
	t.Parallel()

	col := func(values ...string) *model.Column {
		c := &model.Column{}
		for _, v := range values {
			if v == "" {
				c.Cells = append(c.Cells, model.NullCell())
				continue
			}
			c.Cells = append(c.Cells, model.NewCell(v))
		}
		return c
	}

	tests := []struct {
		name string
		a, b *model.Column
		want float64
	}{
		{name: "perfect positive", a: col("1", "2", "3"), b: col("2", "4", "6"), want: 1},
		{name: "perfect negative", a: col("1", "2", "3"), b: col("3", "2", "1"), want: -1},
		{name: "skips missing pairs", a: col("1", "", "3", "5"), b: col("1", "9", "3", "5"), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Pearson(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Pearson() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("too few rows is NaN", func(t *testing.T) {
		t.Parallel()

		if got := Pearson(col("1"), col("2")); !math.IsNaN(got) {
			t.Errorf("expected NaN, got %v", got)
		}
	})
}

// findNodes returns every element node with the given tag.
func findNodes(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findNodes(c, tag)...)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// TestHTMLBackend tests the standalone HTML profile.
func TestHTMLBackend(t *testing.T) {
	t.Parallel()

	p, err := Build(newFixtureTable(t), "Loan <Profile>")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var buf bytes.Buffer
	if err := NewHTMLBackend().Render(&buf, p); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	doc, err := html.Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("invalid HTML: %v", err)
	}

	t.Run("has every section", func(t *testing.T) {
		t.Parallel()

		var ids []string
		for _, s := range findNodes(doc, "section") {
			ids = append(ids, attr(s, "id"))
		}
		want := []string{"overview", "variables", "missing", "correlations", "duplicates", "sample"}
		if !slices.Equal(ids, want) {
			t.Errorf("sections = %v, want %v", ids, want)
		}
	})

	t.Run("inlines one svg per numeric variable plus missing chart", func(t *testing.T) {
		t.Parallel()

		if got := len(findNodes(doc, "svg")); got != 4 {
			t.Errorf("expected 4 svg charts, got %d", got)
		}
	})

	t.Run("escapes the title", func(t *testing.T) {
		t.Parallel()

		if strings.Contains(buf.String(), "<Profile>") {
			t.Error("title was not escaped")
		}
		titles := findNodes(doc, "title")
		if len(titles) == 0 || titles[0].FirstChild == nil || titles[0].FirstChild.Data != "Loan <Profile>" {
			t.Error("expected document title")
		}
	})

	t.Run("sample table has header and rows", func(t *testing.T) {
		t.Parallel()

		for _, table := range findNodes(doc, "table") {
			if attr(table, "class") != "sample" {
				continue
			}
			if got := len(findNodes(table, "tr")); got != 6 {
				t.Errorf("expected 6 sample rows including header, got %d", got)
			}
			return
		}
		t.Error("sample table not found")
	})
}

// TestXLSXBackend tests the workbook profile.
func TestXLSXBackend(t *testing.T) {
	t.Parallel()

	p, err := Build(newFixtureTable(t), "Fixture")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var buf bytes.Buffer
	if err := NewXLSXBackend().Render(&buf, p); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("invalid workbook: %v", err)
	}
	defer f.Close()

	want := []string{SheetOverview, SheetVariables, SheetMissing, SheetCorrelations, SheetSample}
	if got := f.GetSheetList(); !slices.Equal(got, want) {
		t.Errorf("sheets = %v, want %v", got, want)
	}

	rows, err := f.GetRows(SheetVariables)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header plus 4 variables, got %d rows", len(rows))
	}
	if rows[1][0] != "Gender" || rows[2][0] != "Income" {
		t.Errorf("unexpected variable rows: %v", rows)
	}

	sample, err := f.GetRows(SheetSample)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(sample) != 6 || sample[1][0] != "Male" {
		t.Errorf("unexpected sample sheet: %v", sample)
	}

	corr, err := f.GetRows(SheetCorrelations)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if corr[1][2] != "1" {
		t.Errorf("expected Income/Loan correlation 1, got %q", corr[1][2])
	}
}

// TestMarkdownBackend tests the Markdown profile.
func TestMarkdownBackend(t *testing.T) {
	t.Parallel()

	p, err := Build(newFixtureTable(t), "Fixture")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var buf bytes.Buffer
	if err := NewMarkdownBackend().Render(&buf, p); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Fixture",
		"## Overview",
		"## Variables",
		"### Gender (str)",
		"```mermaid",
		"## Correlations",
		"1 duplicate rows.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

// TestForPath tests backend selection by extension.
func TestForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "report.html", want: ".html"},
		{path: "out/REPORT.XLSX", want: ".xlsx"},
		{path: "profile.md", want: ".md"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			b, err := ForPath(tt.path)
			if err != nil {
				t.Fatalf("ForPath() error: %v", err)
			}
			if b.Extension() != tt.want {
				t.Errorf("Extension() = %q, want %q", b.Extension(), tt.want)
			}
		})
	}

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		if _, err := ForPath("report.pdf"); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}

// TestWriteFile tests writing a profile to disk.
func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "profile.html")
	if err := WriteFile(path, newFixtureTable(t), "Fixture"); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Error("expected an HTML document")
	}

	if err := WriteFile(filepath.Join(t.TempDir(), "x.txt"), newFixtureTable(t), "x"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
