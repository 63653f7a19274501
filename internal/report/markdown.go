package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/loanqa/internal/chart"
	"github.com/nao1215/loanqa/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
// Each report section becomes a level-two heading; charts are emitted as
// mermaid code blocks so they render on GitHub.
func (w *MarkdownWriter) Write(report *model.QualityReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)

	for _, section := range report.Sections() {
		md.H2(section.Name)
		md.PlainText("")
		w.writeSection(md, report, section.Name)
	}

	w.writeHistograms(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title, run information and overall verdict.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.QualityReport) {
	meta := report.Metadata
	md.H1(meta.Title)
	md.PlainText("")

	rows := [][]string{}
	if meta.RunID != "" {
		rows = append(rows, []string{"Run ID", "`" + meta.RunID + "`"})
	}
	if !meta.GeneratedAt.IsZero() {
		rows = append(rows, []string{"Generated", meta.GeneratedAt.Format("2006-01-02 15:04:05 MST")})
	}
	if meta.Source != "" {
		rows = append(rows, []string{"Source", "`" + meta.Source + "`"})
	}
	rows = append(rows,
		[]string{"Rows", w.printer.Sprintf("%d", meta.Rows)},
		[]string{"Columns", strconv.Itoa(meta.Columns)},
	)
	if meta.Fingerprint != "" {
		rows = append(rows, []string{"Fingerprint", "`sha3-256:" + truncateString(meta.Fingerprint, 16) + "`"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.IsClean() {
		md.Tip("No duplicates, type inconsistencies or missing values were found.")
	} else {
		md.Warningf("Data quality issues found: %s.", issueSummary(report))
	}
	md.PlainText("")
}

// writeSection writes the content of one section.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, report *model.QualityReport, name string) {
	switch name {
	case model.SectionDatasetSummary:
		if report.Summary == nil {
			md.PlainText("_Not computed._")
			break
		}
		md.Table(markdown.TableSet{
			Header: summaryHeader,
			Rows:   w.summaryRows(report.Summary),
		})
		md.PlainText("")
		w.writeCellPieChart(md, report.Summary)

	case model.SectionDuplicates:
		w.writeDuplicates(md, report.Duplicates)

	case model.SectionMissingChart:
		if report.MissingChart == nil {
			md.PlainText("_Not computed._")
			break
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.Mermaid(report.MissingChart))

	case model.SectionTypeConsistency:
		if len(report.TypeIssues) == 0 {
			md.PlainText("No type inconsistencies found.")
			break
		}
		md.BulletList(report.TypeIssues...)

	case model.SectionMissingValues:
		if len(report.MissingValues) == 0 {
			md.PlainText("No columns checked.")
			break
		}
		md.BulletList(report.MissingValues...)
	}
	md.PlainText("")
}

// writeCellPieChart writes a mermaid pie chart of present versus missing cells.
func (w *MarkdownWriter) writeCellPieChart(md *markdown.Markdown, s *model.SummaryTable) {
	total := s.Rows * len(s.Columns)
	if total == 0 {
		return
	}
	present := 0
	for _, c := range s.Columns {
		present += c.Count
	}

	pie := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Present vs Missing Cells"),
		piechart.WithShowData(true),
	)
	pie.LabelAndIntValue("Present", uint64(present))
	if missing := total - present; missing > 0 {
		pie.LabelAndIntValue("Missing", uint64(missing))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, pie.String())
}

// writeDuplicates writes the duplicate message and a table of the offending rows.
func (w *MarkdownWriter) writeDuplicates(md *markdown.Markdown, d *model.DuplicateResult) {
	if d == nil {
		md.PlainText("_Not computed._")
		return
	}
	md.PlainText(d.Message)
	if d.Count == 0 {
		return
	}
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: append([]string{"Row"}, d.Columns...),
		Rows:   duplicateRows(d, maxDuplicateRows),
	})
	if d.Count > maxDuplicateRows {
		md.PlainText("")
		md.Note(fmt.Sprintf("%d more duplicate rows are omitted.", d.Count-maxDuplicateRows))
	}
}

// writeHistograms writes the optional distribution charts, folded.
func (w *MarkdownWriter) writeHistograms(md *markdown.Markdown, report *model.QualityReport) {
	if len(report.Histograms) == 0 {
		return
	}
	md.H2("Distributions")
	md.PlainText("")
	for i := range report.Histograms {
		c := report.Histograms[i].BarChart()
		md.Details(c.Title, "\n```mermaid\n"+chart.Mermaid(c)+"```\n")
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [loanqa](https://github.com/nao1215/loanqa)*")
}

// issueSummary describes the problems found by the report in one phrase.
func issueSummary(report *model.QualityReport) string {
	var parts []string
	if report.Duplicates != nil && report.Duplicates.Count > 0 {
		parts = append(parts, strconv.Itoa(report.Duplicates.Count)+" duplicate row(s)")
	}
	if n := len(report.TypeIssues); n > 0 {
		parts = append(parts, strconv.Itoa(n)+" inconsistent column(s)")
	}
	if report.MissingChart != nil {
		n := 0
		for _, b := range report.MissingChart.Bars {
			if b.Value > 0 {
				n++
			}
		}
		if n > 0 {
			parts = append(parts, strconv.Itoa(n)+" column(s) with missing values")
		}
	}
	return strings.Join(parts, ", ")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
