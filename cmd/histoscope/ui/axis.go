package ui

import (
	"fmt"
	"strconv"

	"histoscope/internal/histogram"
)

// FormatEdge renders a bin edge compactly: integers without a decimal
// point, everything else with up to four significant digits.
func FormatEdge(v float64) string {
	if v == float64(int64(v)) && v > -1e15 && v < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// BinLabel renders the half-open interval covered by bin i of ax.
func BinLabel(ax histogram.Axis, i int) string {
	return fmt.Sprintf("[%s, %s)", FormatEdge(ax.Edges[i]), FormatEdge(ax.Edges[i+1]))
}

// BinCenter returns the midpoint of bin i of ax.
func BinCenter(ax histogram.Axis, i int) float64 {
	return (ax.Edges[i] + ax.Edges[i+1]) / 2
}

// FormatValue renders a bin content. Counts are usually integral; keep
// them readable either way.
func FormatValue(v float64) string {
	if v == float64(int64(v)) && v > -1e15 && v < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 5, 64)
}
