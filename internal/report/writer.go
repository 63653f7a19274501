package report

import (
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/loanqa/internal/model"
)

// Writer defines the interface for report output.
// Implementations write quality reports in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.QualityReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.QualityReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output  io.Writer
	printer *message.Printer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{
		output:  output,
		printer: message.NewPrinter(language.English),
	}
}

// number formats an optional statistic with two decimals and digit grouping.
// A statistic that does not apply is printed as NaN.
func (b baseWriter) number(v *float64) string {
	if v == nil {
		return "NaN"
	}
	return b.printer.Sprintf("%.2f", *v)
}

// integer formats an optional count with digit grouping.
func (b baseWriter) integer(v *int) string {
	if v == nil {
		return "NaN"
	}
	return b.printer.Sprintf("%d", *v)
}

// text formats an optional string.
func text(v *string) string {
	if v == nil {
		return "NaN"
	}
	return *v
}

// summaryHeader is the column header of the dataset summary table.
var summaryHeader = []string{
	"Column", "Kind", "count", "unique", "top", "freq",
	"mean", "std", "min", "25%", "50%", "75%", "max",
}

// summaryRows flattens the summary into table rows.
func (b baseWriter) summaryRows(s *model.SummaryTable) [][]string {
	rows := make([][]string, len(s.Columns))
	for i, c := range s.Columns {
		rows[i] = []string{
			c.Name,
			c.Kind.String(),
			b.printer.Sprintf("%d", c.Count),
			b.integer(c.Unique),
			text(c.Top),
			b.integer(c.Freq),
			b.number(c.Mean),
			b.number(c.Std),
			b.number(c.Min),
			b.number(c.P25),
			b.number(c.P50),
			b.number(c.P75),
			b.number(c.Max),
		}
	}
	return rows
}

// duplicateRows flattens up to limit duplicate rows into table rows,
// prefixed with their row index.
func duplicateRows(d *model.DuplicateResult, limit int) [][]string {
	n := min(len(d.Rows), limit)
	rows := make([][]string, n)
	for i := range n {
		r := d.Rows[i]
		row := make([]string, 0, len(r.Cells)+1)
		row = append(row, strconv.Itoa(r.Index))
		for _, c := range r.Cells {
			row = append(row, c.String())
		}
		rows[i] = row
	}
	return rows
}

// maxDuplicateRows bounds the duplicate rows printed by text writers.
const maxDuplicateRows = 20
