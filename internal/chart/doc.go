// Package chart renders model.BarChart specifications.
//
// The quality checks only describe charts; this package turns a description into
// something a person can look at:
//   - Text: horizontal bars for the terminal
//   - Mermaid: an xychart-beta block for Markdown documents
//   - SVG: a standalone vector image for files and HTML reports
//
// Text and Mermaid output are plain string building. SVG goes through
// gonum.org/v1/plot and its vgsvg canvas.
package chart
