package ui

import (
	"strings"
	"testing"

	"histoscope/internal/histogram"
)

func projX() *histogram.Projection {
	return &histogram.Projection{
		Axes:   []histogram.Axis{{Name: "x", Edges: []float64{0, 1, 2}}},
		Values: []float64{6, 15},
	}
}

func TestBarChartRendersBinsAndValues(t *testing.T) {
	chart := BarChart{Width: 60, Styles: DefaultStyles()}
	view := chart.Render(projX())

	t.Logf("View:\n%s", view)

	for _, want := range []string{"x", "[0, 1)", "[1, 2)", "6", "15"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// The max bin gets the longest bar.
	lines := strings.Split(view, "\n")
	var bars []int
	for _, line := range lines {
		bars = append(bars, strings.Count(line, "█"))
	}
	maxBar := 0
	for _, n := range bars {
		if n > maxBar {
			maxBar = n
		}
	}
	if maxBar == 0 {
		t.Fatal("no bars rendered")
	}
}

func TestBarChartIdempotent(t *testing.T) {
	chart := BarChart{Width: 60, Styles: DefaultStyles()}
	proj := projX()
	if chart.Render(proj) != chart.Render(proj) {
		t.Error("re-rendering the same projection changed the output")
	}
}

func TestBarChartAllZero(t *testing.T) {
	chart := BarChart{Width: 40, Styles: DefaultStyles()}
	view := chart.Render(&histogram.Projection{
		Axes:   []histogram.Axis{{Name: "x", Edges: []float64{0, 1, 2}}},
		Values: []float64{0, 0},
	})
	if strings.Contains(view, "█") {
		t.Error("all-zero projection drew bars")
	}
	if !strings.Contains(view, "[0, 1)") {
		t.Error("all-zero projection dropped bin labels")
	}
}

func TestBarChartSingleBin(t *testing.T) {
	chart := BarChart{Width: 40, Styles: DefaultStyles()}
	view := chart.Render(&histogram.Projection{
		Axes:   []histogram.Axis{{Name: "q2", Edges: []float64{1, 10}}},
		Values: []float64{42},
	})
	if !strings.Contains(view, "42") {
		t.Error("single-bin projection missing its value")
	}
}

func TestBarChartRejectsTwoAxes(t *testing.T) {
	chart := BarChart{Width: 40, Styles: DefaultStyles()}
	view := chart.Render(&histogram.Projection{
		Axes: []histogram.Axis{
			{Name: "x", Edges: []float64{0, 1}},
			{Name: "y", Edges: []float64{0, 1}},
		},
		Values: []float64{1},
	})
	if !strings.Contains(view, "needs 1 axis") {
		t.Errorf("expected axis-count notice, got %q", view)
	}
}

func TestBarChartNarrowWidthStillRenders(t *testing.T) {
	chart := BarChart{Width: 5, Styles: DefaultStyles()}
	view := chart.Render(projX())
	if view == "" {
		t.Error("narrow chart rendered nothing")
	}
}
