package histogram

import "fmt"

// BinRange restricts a hidden axis to the half-open bin interval [Lo, Hi).
type BinRange struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Selection describes which axes to display and how the hidden axes are
// restricted. A nil range in Filters means the axis is summed over fully.
type Selection struct {
	Display []string
	Filters map[string]*BinRange
}

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	out := Selection{Display: append([]string(nil), s.Display...)}
	if s.Filters != nil {
		out.Filters = make(map[string]*BinRange, len(s.Filters))
		for name, r := range s.Filters {
			if r == nil {
				out.Filters[name] = nil
				continue
			}
			cp := *r
			out.Filters[name] = &cp
		}
	}
	return out
}

// DefaultSelection builds the selection used when a histogram first loads:
// the requested initial axes if given, otherwise the first one or two axes,
// with every hidden axis unfiltered.
func DefaultSelection(spec *Spec, initial []string) Selection {
	display := make([]string, 0, 2)
	for _, name := range initial {
		if _, ok := spec.Axis(name); ok && len(display) < 2 {
			display = append(display, name)
		}
	}
	if len(display) == 0 {
		for _, ax := range spec.Axes {
			display = append(display, ax.Name)
			if len(display) == 2 {
				break
			}
		}
	}

	sel := Selection{Display: display, Filters: make(map[string]*BinRange)}
	for _, ax := range spec.Axes {
		if !contains(display, ax.Name) {
			sel.Filters[ax.Name] = nil
		}
	}
	return sel
}

// Projection is a histogram reduced to its displayed axes. Values is flat
// row-major over Axes, the same convention as Spec.Counts. It is recomputed
// whole on every selection change and never mutated in place.
type Projection struct {
	Axes   []Axis
	Values []float64
}

// Value returns the cell at the given displayed-axis coordinates.
// For a 1-axis projection pass a single index.
func (p *Projection) Value(coords ...int) float64 {
	st := strides(p.Axes)
	flat := 0
	for i, c := range coords {
		flat += c * st[i]
	}
	return p.Values[flat]
}

// Total returns the sum of all projected values.
func (p *Projection) Total() float64 {
	var total float64
	for _, v := range p.Values {
		total += v
	}
	return total
}

// InvalidSelectionError reports a selection the reducer refuses to compute:
// unknown axis, wrong display-axis count, a filter on a displayed axis, or
// an out-of-range bin restriction. Callers keep their previously computed
// projection when they see one.
type InvalidSelectionError struct {
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return "invalid selection: " + e.Reason
}

func invalidf(format string, args ...interface{}) *InvalidSelectionError {
	return &InvalidSelectionError{Reason: fmt.Sprintf(format, args...)}
}

// Reduce projects spec onto the selection's display axes, summing counts
// over every hidden axis, restricted to that axis's bin range when one is
// set. The walk is a single pass over the flat counts in ascending index
// order, so identical inputs always produce identical output.
func Reduce(spec *Spec, sel Selection) (*Projection, error) {
	if err := checkSelection(spec, sel); err != nil {
		return nil, err
	}

	displayIdx := make([]int, len(sel.Display))
	for i, name := range sel.Display {
		displayIdx[i] = spec.AxisIndex(name)
	}

	outAxes := make([]Axis, len(displayIdx))
	outSize := 1
	for i, ai := range displayIdx {
		outAxes[i] = spec.Axes[ai]
		outSize *= spec.Axes[ai].Bins()
	}
	outStrides := strides(outAxes)

	// Per-axis admission ranges: displayed axes admit everything, hidden
	// axes admit their filter range (or everything when unfiltered).
	lo := make([]int, len(spec.Axes))
	hi := make([]int, len(spec.Axes))
	for i, ax := range spec.Axes {
		lo[i], hi[i] = 0, ax.Bins()
	}
	for name, r := range sel.Filters {
		if r == nil {
			continue
		}
		ai := spec.AxisIndex(name)
		lo[ai], hi[ai] = r.Lo, r.Hi
	}

	values := make([]float64, outSize)
	st := strides(spec.Axes)
	coords := make([]int, len(spec.Axes))

flat:
	for i, c := range spec.Counts {
		decode(i, st, coords)
		for ai := range coords {
			if coords[ai] < lo[ai] || coords[ai] >= hi[ai] {
				continue flat
			}
		}
		out := 0
		for j, ai := range displayIdx {
			out += coords[ai] * outStrides[j]
		}
		values[out] += c
	}

	return &Projection{Axes: outAxes, Values: values}, nil
}

func checkSelection(spec *Spec, sel Selection) error {
	if n := len(sel.Display); n < 1 || n > 2 {
		return invalidf("need 1 or 2 display axes, got %d", n)
	}
	for _, name := range sel.Display {
		if _, ok := spec.Axis(name); !ok {
			return invalidf("unknown display axis %q", name)
		}
	}
	if len(sel.Display) == 2 && sel.Display[0] == sel.Display[1] {
		return invalidf("display axis %q listed twice", sel.Display[0])
	}
	for name, r := range sel.Filters {
		ax, ok := spec.Axis(name)
		if !ok {
			return invalidf("filter on unknown axis %q", name)
		}
		if contains(sel.Display, name) {
			return invalidf("filter on displayed axis %q", name)
		}
		if r == nil {
			continue
		}
		if r.Lo < 0 || r.Hi > ax.Bins() || r.Lo > r.Hi {
			return invalidf("filter range [%d,%d) out of bounds for axis %q (%d bins)",
				r.Lo, r.Hi, name, ax.Bins())
		}
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
