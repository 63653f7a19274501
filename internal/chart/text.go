package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/nao1215/loanqa/internal/model"
)

// DefaultTextWidth is the bar width, in characters, of the longest bar.
const DefaultTextWidth = 40

// Text renders c as horizontal ASCII bars, one line per bar:
//
//	Gender         |######                                  |  15.00
//
// width is the length of the longest bar; values below one bar step still get one
// '#' when they are greater than zero so a small gap is never invisible.
func Text(c *model.BarChart, width int) string {
	if width <= 0 {
		width = DefaultTextWidth
	}

	var sb strings.Builder
	sb.WriteString(c.Title)
	sb.WriteString("\n")
	if c.XLabel != "" || c.YLabel != "" {
		sb.WriteString(fmt.Sprintf("(%s by %s)\n", c.YLabel, c.XLabel))
	}

	labelWidth := 0
	for _, b := range c.Bars {
		labelWidth = max(labelWidth, len(b.Label))
	}

	maxValue := c.MaxValue()
	for _, b := range c.Bars {
		n := 0
		if maxValue > 0 {
			n = int(math.Round(b.Value / maxValue * float64(width)))
			if n == 0 && b.Value > 0 {
				n = 1
			}
		}
		sb.WriteString(fmt.Sprintf("%-*s |%s%s| %6.2f\n",
			labelWidth, b.Label,
			strings.Repeat("#", n), strings.Repeat(" ", width-n),
			b.Value))
	}
	return sb.String()
}
