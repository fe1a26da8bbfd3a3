package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"histoscope/internal/config"
	"histoscope/internal/histogram"
)

// Heatmap renders a 2-axis projection as a colored cell grid. The first
// projection axis runs horizontally, the second vertically with its last
// bin at the top. Cell shading interpolates the theme's heat ramp in Luv
// space, with linear or log value-to-intensity mapping.
type Heatmap struct {
	Scale  config.ColorScale
	Styles Styles
}

const cellWidth = 2

// Render draws the projection. Requires exactly two axes.
func (h Heatmap) Render(proj *histogram.Projection) string {
	if len(proj.Axes) != 2 {
		return h.Styles.Error.Render(fmt.Sprintf("heatmap needs 2 axes, got %d", len(proj.Axes)))
	}

	xAxis, yAxis := proj.Axes[0], proj.Axes[1]

	var maxVal float64
	for _, v := range proj.Values {
		if v > maxVal {
			maxVal = v
		}
	}

	low, errLow := colorful.Hex(string(h.Styles.Theme.HeatLow))
	high, errHigh := colorful.Hex(string(h.Styles.Theme.HeatHigh))
	if errLow != nil || errHigh != nil {
		low, high = colorful.Color{R: 1, G: 1, B: 1}, colorful.Color{R: 0, G: 0, B: 1}
	}

	yLabels := make([]string, yAxis.Bins())
	yWidth := 0
	for i := 0; i < yAxis.Bins(); i++ {
		yLabels[i] = BinLabel(yAxis, i)
		yWidth = max(yWidth, lipgloss.Width(yLabels[i]))
	}

	var sb strings.Builder
	sb.WriteString(h.Styles.Title.Render(fmt.Sprintf("%s vs %s", xAxis.Name, yAxis.Name)))
	sb.WriteString("\n")

	for iy := yAxis.Bins() - 1; iy >= 0; iy-- {
		sb.WriteString(h.Styles.AxisLabel.Render(fmt.Sprintf("%*s", yWidth, yLabels[iy])))
		sb.WriteString(" ")
		for ix := 0; ix < xAxis.Bins(); ix++ {
			t := h.intensity(proj.Value(ix, iy), maxVal)
			cell := low.BlendLuv(high, t).Clamped()
			style := lipgloss.NewStyle().Background(lipgloss.Color(cell.Hex()))
			sb.WriteString(style.Render(strings.Repeat(" ", cellWidth)))
		}
		sb.WriteString("\n")
	}

	// X tick row: first edge of each bin, then the closing edge.
	sb.WriteString(strings.Repeat(" ", yWidth+1))
	for ix := 0; ix < xAxis.Bins(); ix++ {
		tick := FormatEdge(xAxis.Edges[ix])
		if lipgloss.Width(tick) > cellWidth {
			tick = tick[:cellWidth]
		}
		sb.WriteString(h.Styles.Muted.Render(fmt.Sprintf("%-*s", cellWidth, tick)))
	}
	sb.WriteString(h.Styles.Muted.Render(FormatEdge(xAxis.Edges[xAxis.Bins()])))
	sb.WriteString("\n")
	sb.WriteString(h.Styles.Muted.Render(fmt.Sprintf("%*s x: %s, max %s", yWidth, "", xAxis.Name, FormatValue(maxVal))))
	sb.WriteString("\n")

	return sb.String()
}

// intensity maps a value to [0, 1] under the configured scale. A zero max
// (all-empty projection) maps everything to 0.
func (h Heatmap) intensity(v, maxVal float64) float64 {
	if maxVal <= 0 || v <= 0 {
		return 0
	}
	if h.Scale == config.ScaleLog {
		return math.Log1p(v) / math.Log1p(maxVal)
	}
	return v / maxVal
}
