package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/nao1215/loanqa/internal/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// SVG canvas size and bar style.
const (
	svgWidth  = 7.5 * vg.Inch
	svgHeight = 4.4 * vg.Inch
	svgBarGap = 0.7
)

// svgBarColor is the fill of every bar (#4C72B0).
var svgBarColor = color.RGBA{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff}

// SVG writes c as a standalone SVG document with vertical bars, rotated
// x-axis labels and a y-axis starting at zero.
func SVG(w io.Writer, c *model.BarChart) error {
	p, err := newPlot(c)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(svgWidth, svgHeight, "svg")
	if err != nil {
		return fmt.Errorf("failed to create svg canvas: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// SVGString returns c as an inline <svg> element without the XML prolog,
// ready to be embedded in an HTML page.
func SVGString(c *model.BarChart) (string, error) {
	var buf bytes.Buffer
	if err := SVG(&buf, c); err != nil {
		return "", err
	}
	out := buf.String()
	if i := strings.Index(out, "<svg"); i > 0 {
		out = out[i:]
	}
	return out, nil
}

// newPlot lays out c as a gonum plot with one nominal x tick per bar.
func newPlot(c *model.BarChart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Y.Min = 0
	p.Y.Max = niceCeil(c.MaxValue())
	p.Add(plotter.NewGrid())

	if len(c.Bars) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(c.Bars))
	labels := make([]string, len(c.Bars))
	for i, b := range c.Bars {
		values[i] = b.Value
		labels[i] = b.Label
	}

	slot := (svgWidth - vg.Inch) / vg.Length(len(c.Bars))
	bars, err := plotter.NewBarChart(values, slot*svgBarGap)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out chart %q: %w", c.Title, err)
	}
	bars.Color = svgBarColor
	bars.LineStyle.Width = 0
	p.Add(bars)

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

// niceCeil rounds v up to 1, 2 or 5 times a power of ten so axis ticks are readable.
// Zero and negative values map to 1.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}
