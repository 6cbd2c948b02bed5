package view

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// TextRenderer draws a page as plain text with an ASCII line chart.
type TextRenderer struct {
	Width  int  // chart columns; 0 uses one column per sample
	Height int  // chart rows
	Color  bool // ANSI colored series, for terminals only
}

func NewTextRenderer(width, height int) *TextRenderer {
	if height <= 0 {
		height = 10
	}
	return &TextRenderer{Width: width, Height: height}
}

// Render writes the page. It never fails on page content; errors come from w.
func (r *TextRenderer) Render(w io.Writer, p Page) error {
	_, err := io.WriteString(w, r.String(p))
	return err
}

func (r *TextRenderer) String(p Page) string {
	if p.Loading {
		return "Loading...\n"
	}

	var b strings.Builder
	b.WriteString(p.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len([]rune(p.Title))))
	b.WriteString("\n\n")

	for _, c := range p.Cards {
		fmt.Fprintf(&b, "%-20s %s\n", c.Title+":", c.Value)
	}
	b.WriteString("\n")

	if p.Chart != nil {
		b.WriteString(p.Chart.Title)
		b.WriteString("\n")
		b.WriteString(r.chart(*p.Chart))
		b.WriteString("\n")
	}

	for _, bn := range p.Banners {
		fmt.Fprintf(&b, "* %s\n  %s\n", bn.Message, bn.Savings)
	}
	if len(p.Banners) > 0 {
		b.WriteString("\n")
	}

	labels := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		labels[i] = "[ " + a.Label + " ]"
	}
	b.WriteString(strings.Join(labels, "  "))
	b.WriteString("\n")
	return b.String()
}

func (r *TextRenderer) chart(c Chart) string {
	if c.Points() == 0 {
		return "(no predictions)\n"
	}

	data := make([][]float64, 0, len(c.Series))
	legend := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		data = append(data, s.Values)
		legend = append(legend, fmt.Sprintf("%d:%s", i+1, s.Name))
	}

	opts := []asciigraph.Option{
		asciigraph.Height(r.Height),
		asciigraph.Caption(fmt.Sprintf("%s .. %s  %s", c.Labels[0], c.Labels[len(c.Labels)-1], strings.Join(legend, " "))),
	}
	if r.Color {
		opts = append(opts, asciigraph.SeriesColors(seriesColors(len(data))...))
	}
	// asciigraph's resampling indexes out of range on an overflowing span.
	if r.Width > 0 && c.Points() > 1 && finiteSpan(data) {
		opts = append(opts, asciigraph.Width(r.Width))
	}
	return asciigraph.PlotMany(data, opts...) + "\n"
}

func finiteSpan(data [][]float64) bool {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vs := range data {
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	span := hi - lo
	return !math.IsInf(span, 0) && !math.IsNaN(span)
}

func seriesColors(n int) []asciigraph.AnsiColor {
	palette := []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Green}
	out := make([]asciigraph.AnsiColor, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}
