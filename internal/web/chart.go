package web

import (
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/vbonduro/lookbook/internal/gallery"
)

const (
	chartWidth    = 640
	chartHeight   = 360
	chartBarWidth = 60
)

// renderChartPNG draws points as a bar chart of their counts.
func renderChartPNG(w io.Writer, title string, points []gallery.ChartPoint) error {
	maxCount := 1.0
	bars := make([]chart.Value, 0, len(points))
	for _, p := range points {
		if v := float64(p.Count); v > maxCount {
			maxCount = v
		}
		color := drawing.ColorFromHex(strings.TrimPrefix(p.Color, "#"))
		bars = append(bars, chart.Value{
			Value: float64(p.Count),
			Label: pngLabel(p.Label),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxCount},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

// pngLabel swaps the star glyph, which the bundled chart font lacks.
func pngLabel(label string) string {
	return strings.ReplaceAll(label, "★", " *")
}
