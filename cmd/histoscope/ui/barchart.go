package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"histoscope/internal/histogram"
)

// BarChart renders a 1-axis projection as horizontal bars, one per bin.
// Rendering is a pure function of the projection and options; drawing the
// same projection twice yields the same string.
type BarChart struct {
	Width  int // total width budget in cells
	Styles Styles
}

// Render draws the projection. The projection must have exactly one axis;
// anything else is a programming error upstream and renders a notice
// instead of a chart.
func (b BarChart) Render(proj *histogram.Projection) string {
	if len(proj.Axes) != 1 {
		return b.Styles.Error.Render(fmt.Sprintf("bar chart needs 1 axis, got %d", len(proj.Axes)))
	}

	ax := proj.Axes[0]
	labels := make([]string, ax.Bins())
	values := make([]string, ax.Bins())
	labelWidth, valueWidth := 0, 0
	for i := 0; i < ax.Bins(); i++ {
		labels[i] = BinLabel(ax, i)
		values[i] = FormatValue(proj.Values[i])
		labelWidth = max(labelWidth, lipgloss.Width(labels[i]))
		valueWidth = max(valueWidth, lipgloss.Width(values[i]))
	}

	barBudget := b.Width - labelWidth - valueWidth - 4
	if barBudget < 1 {
		barBudget = 1
	}

	var maxVal float64
	for _, v := range proj.Values {
		if v > maxVal {
			maxVal = v
		}
	}

	var sb strings.Builder
	sb.WriteString(b.Styles.Title.Render(ax.Name))
	sb.WriteString("\n")

	for i := 0; i < ax.Bins(); i++ {
		n := 0
		if maxVal > 0 {
			n = int(proj.Values[i] / maxVal * float64(barBudget))
			if n == 0 && proj.Values[i] > 0 {
				n = 1 // nonzero bins always show
			}
		}

		sb.WriteString(b.Styles.AxisLabel.Render(fmt.Sprintf("%*s", labelWidth, labels[i])))
		sb.WriteString(" ")
		sb.WriteString(b.Styles.Bar.Render(strings.Repeat("█", n)))
		if n > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(b.Styles.BarValue.Render(values[i]))
		sb.WriteString("\n")
	}

	return sb.String()
}
