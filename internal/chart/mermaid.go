package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nao1215/loanqa/internal/model"
)

// Mermaid renders c as a mermaid xychart-beta bar chart.
// The result is the diagram body without the surrounding code fence.
func Mermaid(c *model.BarChart) string {
	labels := make([]string, len(c.Bars))
	values := make([]string, len(c.Bars))
	for i, b := range c.Bars {
		labels[i] = mermaidQuote(b.Label)
		values[i] = formatValue(b.Value)
	}

	top := c.MaxValue()
	if top <= 0 {
		top = 1
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", mermaidQuote(c.Title)))
	sb.WriteString(fmt.Sprintf("    x-axis %s [%s]\n", mermaidQuote(c.XLabel), strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis %s 0 --> %s\n", mermaidQuote(c.YLabel), formatValue(top)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

// mermaidQuote wraps s in double quotes. Mermaid has no escape for a double
// quote inside a string, so embedded quotes become single quotes.
func mermaidQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `'`) + `"`
}

// formatValue prints v with at most two decimals and no trailing zeros.
func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
