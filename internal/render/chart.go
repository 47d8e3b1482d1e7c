// Package render turns summary entries into PNG bar-chart images.
package render

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/wildlife-report-service/internal/domain"
)

// Renderer draws deterministic bar charts for summary entries. All styling
// comes from the entry and this struct; there is no process-wide style
// state, so concurrent report calls cannot observe each other's styling.
type Renderer struct {
	width  int
	height int
}

// New creates a renderer with fixed output dimensions in pixels.
func New(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// Render produces a PNG bar chart for one summary entry: category labels on
// the x axis (monthly entries use their derived display label), counts on
// the y axis, the entry's fixed chart title, y-axis label, and bar color.
// Long category labels are rotated when the entry asks for it.
func (r *Renderer) Render(entry domain.SummaryEntry) ([]byte, error) {
	if len(entry.Data) == 0 {
		return nil, fmt.Errorf("render %q: no data", entry.Title)
	}

	fill := drawing.ColorFromHex(entry.Color)
	bars := make([]chart.Value, 0, len(entry.Data))
	for i, pair := range entry.Data {
		label := pair.Category
		if i < len(entry.DisplayLabels) {
			label = entry.DisplayLabels[i]
		}
		bars = append(bars, chart.Value{
			Label: label,
			Value: float64(pair.Count),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}

	xStyle := chart.Style{}
	if entry.RotateXLabels {
		xStyle.TextRotationDegrees = 45.0
	}

	graph := chart.BarChart{
		Title:  entry.ChartTitle,
		Width:  r.width,
		Height: r.height,
		// Anchor the value axis at zero so single-category and all-equal
		// batteries still produce a valid range.
		UseBaseValue: true,
		BaseValue:    0,
		BarWidth:     barWidth(r.width, len(bars)),
		XAxis:        xStyle,
		YAxis: chart.YAxis{
			Name:           entry.YLabel,
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", entry.Title, err)
	}
	return buf.Bytes(), nil
}

// barWidth spreads the bars over roughly half the drawable width, clamped
// to keep a lone bar from filling the canvas.
func barWidth(canvasWidth, bars int) int {
	w := canvasWidth / (2 * bars)
	if w < 10 {
		return 10
	}
	if w > 80 {
		return 80
	}
	return w
}
