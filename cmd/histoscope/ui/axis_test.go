package ui

import (
	"testing"

	"histoscope/internal/histogram"
)

func TestFormatEdge(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-4, "-4"},
		{2.5, "2.5"},
		{0.0001, "0.0001"},
		{1234567, "1234567"},
		{3.14159, "3.142"},
	}
	for _, tt := range tests {
		if got := FormatEdge(tt.in); got != tt.want {
			t.Errorf("FormatEdge(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBinLabelAndCenter(t *testing.T) {
	ax := histogram.Axis{Name: "eta", Edges: []float64{-4, -2, 0, 2}}

	if got := BinLabel(ax, 1); got != "[-2, 0)" {
		t.Errorf("BinLabel = %q", got)
	}
	if got := BinCenter(ax, 1); got != -1 {
		t.Errorf("BinCenter = %v", got)
	}
}
