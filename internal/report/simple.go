package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/nao1215/loanqa/internal/chart"
	"github.com/nao1215/loanqa/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// Every section is printed as its label followed by a colon and its content,
// in report order.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
type SimpleWriter struct {
	baseWriter

	// chartWidth is the length of the longest console bar.
	chartWidth int

	// verbose prints every duplicate row instead of the first few.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithChartWidth sets the length of the longest console bar.
func WithChartWidth(width int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.chartWidth = width
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		chartWidth: chart.DefaultTextWidth,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.QualityReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)

	for _, section := range report.Sections() {
		w.writeSectionTitle(&sb, section.Name)
		if err := w.writeSection(&sb, report, section.Name); err != nil {
			return 0, err
		}
		sb.WriteString("\n")
	}

	w.writeHistograms(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report title and run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.QualityReport) {
	meta := report.Metadata
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s:\n", meta.Title))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	if meta.RunID != "" {
		sb.WriteString(fmt.Sprintf("Run ID:       %s\n", meta.RunID))
	}
	if !meta.GeneratedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Generated:    %s\n", meta.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	}
	if meta.Source != "" {
		sb.WriteString(fmt.Sprintf("Source:       %s\n", meta.Source))
	}
	sb.WriteString(w.printer.Sprintf("Rows:         %d\n", meta.Rows))
	sb.WriteString(w.printer.Sprintf("Columns:      %d\n", meta.Columns))
	if meta.Fingerprint != "" {
		sb.WriteString(fmt.Sprintf("Fingerprint:  sha3-256:%s\n", meta.Fingerprint))
	}
	sb.WriteString("\n")
}

// writeSectionTitle writes a section label between rules.
func (w *SimpleWriter) writeSectionTitle(sb *strings.Builder, name string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(name)
	sb.WriteString(":\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
}

// writeSection writes the content of one section.
func (w *SimpleWriter) writeSection(sb *strings.Builder, report *model.QualityReport, name string) error {
	switch name {
	case model.SectionDatasetSummary:
		if report.Summary == nil {
			sb.WriteString("  (not computed)\n")
			return nil
		}
		return w.writeTable(sb, summaryHeader, w.summaryRows(report.Summary))

	case model.SectionDuplicates:
		return w.writeDuplicates(sb, report.Duplicates)

	case model.SectionMissingChart:
		if report.MissingChart == nil {
			sb.WriteString("  (not computed)\n")
			return nil
		}
		sb.WriteString(chart.Text(report.MissingChart, w.chartWidth))

	case model.SectionTypeConsistency:
		writeLines(sb, report.TypeIssues, "No type inconsistencies found.")

	case model.SectionMissingValues:
		writeLines(sb, report.MissingValues, "No columns checked.")
	}
	return nil
}

// writeDuplicates writes the duplicate message and the offending rows.
func (w *SimpleWriter) writeDuplicates(sb *strings.Builder, d *model.DuplicateResult) error {
	if d == nil {
		sb.WriteString("  (not computed)\n")
		return nil
	}
	sb.WriteString(d.Message)
	sb.WriteString("\n")
	if d.Count == 0 {
		return nil
	}

	limit := maxDuplicateRows
	if w.verbose {
		limit = d.Count
	}
	header := append([]string{"Row"}, d.Columns...)
	if err := w.writeTable(sb, header, duplicateRows(d, limit)); err != nil {
		return err
	}
	if d.Count > limit {
		sb.WriteString(fmt.Sprintf("... and %d more (use --verbose to list all)\n", d.Count-limit))
	}
	return nil
}

// writeTable renders rows as an ASCII table.
func (w *SimpleWriter) writeTable(sb *strings.Builder, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(sb)
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	table.Header(cells...)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// writeHistograms writes the optional distribution charts.
func (w *SimpleWriter) writeHistograms(sb *strings.Builder, report *model.QualityReport) {
	for i := range report.Histograms {
		c := report.Histograms[i].BarChart()
		w.writeSectionTitle(sb, c.Title)
		sb.WriteString(chart.Text(c, w.chartWidth))
		sb.WriteString("\n")
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// writeLines writes one indented line per entry, or empty when there are none.
func writeLines(sb *strings.Builder, lines []string, empty string) {
	if len(lines) == 0 {
		sb.WriteString("  ")
		sb.WriteString(empty)
		sb.WriteString("\n")
		return
	}
	for _, l := range lines {
		sb.WriteString("  ")
		sb.WriteString(l)
		sb.WriteString("\n")
	}
}
