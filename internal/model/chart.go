package model

import (
	"fmt"
	"math"
)

// Bar is one labeled bar of a bar chart.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// BarChart is a renderer-independent bar chart specification.
type BarChart struct {
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Bars   []Bar  `json:"bars"`
}

// MaxValue returns the largest bar value, or 0 for a chart without bars.
func (c *BarChart) MaxValue() float64 {
	var max float64
	for _, b := range c.Bars {
		if b.Value > max {
			max = b.Value
		}
	}
	return max
}

// HistogramBin is one equal-width bin of a histogram.
// Lower is inclusive; Upper is exclusive except for the last bin.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram is the distribution of one numeric column.
type Histogram struct {
	Column string         `json:"column"`
	Bins   []HistogramBin `json:"bins"`
}

// Total returns the number of values counted across all bins.
func (h *Histogram) Total() int {
	n := 0
	for _, b := range h.Bins {
		n += b.Count
	}
	return n
}

// BarChart converts the histogram to a bar chart with one bar per bin.
// Bin edges are printed with as many decimals as the bin width needs.
func (h *Histogram) BarChart() *BarChart {
	prec := 0
	if len(h.Bins) > 0 {
		prec = labelPrecision(h.Bins[0].Upper - h.Bins[0].Lower)
	}
	chart := &BarChart{
		Title:  fmt.Sprintf("Distribution of %s", h.Column),
		XLabel: h.Column,
		YLabel: "Frequency",
		Bars:   make([]Bar, len(h.Bins)),
	}
	for i, b := range h.Bins {
		chart.Bars[i] = Bar{
			Label: fmt.Sprintf("%.*f-%.*f", prec, b.Lower, prec, b.Upper),
			Value: float64(b.Count),
		}
	}
	return chart
}

// labelPrecision returns the number of decimals that keeps edges spaced width
// apart distinct, capped at 6.
func labelPrecision(width float64) int {
	if width <= 0 || width >= 1 || math.IsNaN(width) {
		return 0
	}
	return min(int(math.Ceil(-math.Log10(width)-1e-9)), 6)
}
