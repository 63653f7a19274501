package profile

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/loanqa/internal/chart"
)

// MarkdownBackend renders a profile as Markdown with mermaid charts.
type MarkdownBackend struct{}

// NewMarkdownBackend creates a MarkdownBackend.
func NewMarkdownBackend() *MarkdownBackend {
	return &MarkdownBackend{}
}

// Extension implements Backend.
func (b *MarkdownBackend) Extension() string {
	return ".md"
}

// Render implements Backend.
func (b *MarkdownBackend) Render(w io.Writer, p *Profile) error {
	md := markdown.NewMarkdown(w)
	o := p.Overview

	md.H1(p.Title)
	md.PlainText("")
	md.PlainTextf("Generated %s", p.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	md.H2("Overview")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Number of variables", strconv.Itoa(o.Columns)},
			{"Number of observations", strconv.Itoa(o.Rows)},
			{"Numeric variables", strconv.Itoa(o.NumericColumns)},
			{"Text variables", strconv.Itoa(o.TextColumns)},
			{"Missing cells", fmt.Sprintf("%d (%.1f%%)", o.MissingCells, o.MissingPercent)},
			{"Duplicate rows", fmt.Sprintf("%d (%.1f%%)", o.DuplicateRows, o.DuplicatePercent)},
		},
	})
	md.PlainText("")

	md.H3("Alerts")
	md.PlainText("")
	if len(p.Alerts) == 0 {
		md.PlainText("No alerts.")
	} else {
		items := make([]string, len(p.Alerts))
		for i, a := range p.Alerts {
			items[i] = fmt.Sprintf("`%s` %s", a.Kind, a.Message)
		}
		md.BulletList(items...)
	}
	md.PlainText("")

	md.H2("Variables")
	md.PlainText("")
	for _, v := range p.Variables {
		md.H3(fmt.Sprintf("%s (%s)", v.Name(), v.Stats.Kind))
		md.PlainText("")
		rows := [][]string{
			{"Count", strconv.Itoa(v.Stats.Count)},
			{"Distinct", strconv.Itoa(v.Distinct)},
			{"Missing", fmt.Sprintf("%d (%.1f%%)", v.Missing, v.MissingPercent)},
		}
		if v.Stats.IsNumeric() {
			rows = append(rows,
				[]string{"Mean", mdStat(v.Stats.Mean)},
				[]string{"Std", mdStat(v.Stats.Std)},
				[]string{"Min", mdStat(v.Stats.Min)},
				[]string{"Max", mdStat(v.Stats.Max)},
			)
		}
		md.Table(markdown.TableSet{Header: []string{"Statistic", "Value"}, Rows: rows})
		md.PlainText("")

		if len(v.TopValues) > 0 {
			top := make([][]string, len(v.TopValues))
			for i, tv := range v.TopValues {
				top[i] = []string{tv.Value, strconv.Itoa(tv.Count), fmt.Sprintf("%.1f%%", tv.Percent)}
			}
			md.Table(markdown.TableSet{Header: []string{"Value", "Count", "Frequency"}, Rows: top})
			md.PlainText("")
		}
		if v.Histogram != nil {
			md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.Mermaid(v.Histogram.BarChart()))
			md.PlainText("")
		}
	}

	md.H2("Missing values")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.Mermaid(p.MissingChart))
	md.PlainText("")

	md.H2("Correlations")
	md.PlainText("")
	if len(p.Correlations.Columns) == 0 {
		md.PlainText("No numeric variables.")
	} else {
		md.Table(correlationTable(p.Correlations))
	}
	md.PlainText("")

	md.H2("Duplicate rows")
	md.PlainText("")
	md.PlainTextf("%d duplicate rows.", p.Duplicates.Count)
	md.PlainText("")

	md.H2("Sample")
	md.PlainText("")
	md.Table(markdown.TableSet{Header: p.SampleColumns, Rows: p.Sample})

	return md.Build()
}

func correlationTable(c Correlations) markdown.TableSet {
	header := append([]string{""}, c.Columns...)
	rows := make([][]string, len(c.Values))
	for i, values := range c.Values {
		row := make([]string, 0, len(values)+1)
		row = append(row, c.Columns[i])
		for _, r := range values {
			if math.IsNaN(r) {
				row = append(row, "NaN")
				continue
			}
			row = append(row, strconv.FormatFloat(r, 'f', 2, 64))
		}
		rows[i] = row
	}
	return markdown.TableSet{Header: header, Rows: rows}
}

func mdStat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
