package profile

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"

	"github.com/nao1215/loanqa/internal/chart"
	"github.com/nao1215/loanqa/internal/model"
)

//go:embed templates/profile.html.tmpl
var templateFS embed.FS

// HTMLBackend renders a profile as a single self-contained HTML page.
// Charts are inlined as SVG so the page needs no network access or scripts.
type HTMLBackend struct {
	tmpl *template.Template
}

// NewHTMLBackend creates an HTMLBackend from the embedded page template.
func NewHTMLBackend() *HTMLBackend {
	return &HTMLBackend{
		tmpl: template.Must(template.New("profile.html.tmpl").
			Funcs(templateFuncs()).
			ParseFS(templateFS, "templates/profile.html.tmpl")),
	}
}

// Extension implements Backend.
func (b *HTMLBackend) Extension() string {
	return ".html"
}

// Render implements Backend.
func (b *HTMLBackend) Render(w io.Writer, p *Profile) error {
	return b.tmpl.Execute(w, p)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"stat": func(v *float64) string {
			if v == nil {
				return "-"
			}
			return fmt.Sprintf("%.2f", *v)
		},
		"count": func(v *int) string {
			if v == nil {
				return "-"
			}
			return fmt.Sprintf("%d", *v)
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"corr": func(v float64) string {
			if math.IsNaN(v) {
				return "NaN"
			}
			return fmt.Sprintf("%.2f", v)
		},
		"corrStyle": func(v float64) template.CSS {
			if math.IsNaN(v) {
				return "background:#f0f0f0"
			}
			// Blue for positive, red for negative, stronger with |r|.
			alpha := math.Abs(v)
			if v >= 0 {
				return template.CSS(fmt.Sprintf("background:rgba(76,114,176,%.2f)", alpha))
			}
			return template.CSS(fmt.Sprintf("background:rgba(196,78,82,%.2f)", alpha))
		},
		"barSVG": func(c *model.BarChart) (template.HTML, error) {
			svg, err := chart.SVGString(c)
			return template.HTML(svg), err //nolint:gosec // the svg canvas escapes every label
		},
		"histSVG": func(h *model.Histogram) (template.HTML, error) {
			svg, err := chart.SVGString(h.BarChart())
			return template.HTML(svg), err //nolint:gosec // the svg canvas escapes every label
		},
	}
}
