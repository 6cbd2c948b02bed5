package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultChartJS is the Chart.js bundle the page loads.
const DefaultChartJS = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"

// HTMLRenderer renders pages with html/template. The "root" template is a
// full document; "dashboard" is the fragment swapped in on live updates.
type HTMLRenderer struct {
	tpl     *template.Template
	title   string
	wsPath  string
	chartJS string
}

type HTMLOption func(*HTMLRenderer)

// WithLiveUpdates makes the page subscribe to the websocket at path.
func WithLiveUpdates(path string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.wsPath = path
	}
}

func WithChartJS(src string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.chartJS = src
	}
}

// WithDocumentTitle sets the <title> used while the page is still loading.
func WithDocumentTitle(title string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.title = title
	}
}

func NewHTMLRenderer(opts ...HTMLOption) (*HTMLRenderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r := &HTMLRenderer{tpl: tpl, chartJS: DefaultChartJS}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type rootData struct {
	Page    Page
	Title   string
	WSPath  string
	ChartJS string
}

// RenderPage writes the full document.
func (r *HTMLRenderer) RenderPage(w io.Writer, p Page) error {
	return r.tpl.ExecuteTemplate(w, "root", rootData{
		Page:    p,
		Title:   r.title,
		WSPath:  r.wsPath,
		ChartJS: r.chartJS,
	})
}

// RenderFragment writes only the dashboard section.
func (r *HTMLRenderer) RenderFragment(w io.Writer, p Page) error {
	return r.tpl.ExecuteTemplate(w, "dashboard", p)
}

// Fragment renders the dashboard section to a string.
func (r *HTMLRenderer) Fragment(p Page) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderFragment(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}
