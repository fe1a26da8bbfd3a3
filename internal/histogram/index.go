package histogram

// strides returns the row-major stride of each axis: the flat-index
// distance between consecutive bins on that axis. The last axis has
// stride 1 (it varies fastest).
func strides(axes []Axis) []int {
	st := make([]int, len(axes))
	acc := 1
	for i := len(axes) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= axes[i].Bins()
	}
	return st
}

// decode writes the multi-dimensional bin coordinate of flat index into
// coords. coords must have len(axes) entries.
func decode(flat int, st []int, coords []int) {
	for i, s := range st {
		coords[i] = flat / s
		flat %= s
	}
}
