// Package histogram holds the data model for multi-dimensional binned
// histograms and the projection (marginal-sum) machinery the viewer is
// built on. Counts are stored flat, row-major, with the last listed axis
// varying fastest — the layout the collaboration's analysis exports use.
package histogram

import (
	"encoding/json"
	"fmt"
)

// Axis is one dimension of a histogram. Edges are the bin boundaries,
// so an axis with N bins carries N+1 strictly increasing edges.
type Axis struct {
	Name  string    `json:"name"`
	Edges []float64 `json:"edges"`
}

// Bins returns the number of bins on the axis.
func (a Axis) Bins() int {
	if len(a.Edges) < 2 {
		return 0
	}
	return len(a.Edges) - 1
}

// Spec is a complete multi-dimensional histogram as loaded from JSON.
type Spec struct {
	Axes   []Axis    `json:"axes"`
	Counts []float64 `json:"counts"`
}

// SchemaError reports a structurally well-formed document that violates
// the histogram invariants. It is fatal for the load attempt that hit it.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "histogram schema: " + e.Reason
}

func schemaErrorf(format string, args ...interface{}) *SchemaError {
	return &SchemaError{Reason: fmt.Sprintf(format, args...)}
}

// Parse decodes and validates a histogram document.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the Spec invariants: at least one axis, every axis has
// at least one bin with strictly increasing edges, unique axis names, and
// the flat counts length matches the product of the per-axis bin counts.
func (s *Spec) Validate() error {
	if len(s.Axes) == 0 {
		return schemaErrorf("no axes defined")
	}

	seen := make(map[string]bool, len(s.Axes))
	expected := 1
	for i, ax := range s.Axes {
		if ax.Name == "" {
			return schemaErrorf("axis %d has no name", i)
		}
		if seen[ax.Name] {
			return schemaErrorf("duplicate axis name %q", ax.Name)
		}
		seen[ax.Name] = true

		if len(ax.Edges) < 2 {
			return schemaErrorf("axis %q needs at least 2 edges, got %d", ax.Name, len(ax.Edges))
		}
		for j := 1; j < len(ax.Edges); j++ {
			if ax.Edges[j] <= ax.Edges[j-1] {
				return schemaErrorf("axis %q edges not strictly increasing at index %d (%v >= %v)",
					ax.Name, j, ax.Edges[j-1], ax.Edges[j])
			}
		}
		expected *= ax.Bins()
	}

	if len(s.Counts) != expected {
		return schemaErrorf("counts length %d does not match bin product %d", len(s.Counts), expected)
	}
	return nil
}

// Axis returns the axis with the given name, or false if absent.
func (s *Spec) Axis(name string) (Axis, bool) {
	for _, ax := range s.Axes {
		if ax.Name == name {
			return ax, true
		}
	}
	return Axis{}, false
}

// AxisIndex returns the position of the named axis, or -1.
func (s *Spec) AxisIndex(name string) int {
	for i, ax := range s.Axes {
		if ax.Name == name {
			return i
		}
	}
	return -1
}

// Total returns the sum of all counts.
func (s *Spec) Total() float64 {
	var total float64
	for _, c := range s.Counts {
		total += c
	}
	return total
}
