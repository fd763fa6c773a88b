package coverage

import (
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/utils"
	"gonum.org/v1/gonum/floats"
)

// Coverage maps scalar types to one value per point. All arrays have the
// same length.
type Coverage map[ScalarType][]float64

// Validate checks the coverage is non-empty with equal-length, NaN-free
// arrays and returns that length
func (c Coverage) Validate() (int, error) {
	if len(c) == 0 {
		return 0, utils.Preconditionf("scalar coverage is empty")
	}
	n := -1
	for _, t := range sortedTypes(c) {
		values := c[t]
		if n < 0 {
			n = len(values)
		}
		if len(values) != n {
			return 0, utils.Preconditionf("scalar type %s has %d values, expected %d", t, len(values), n)
		}
		if floats.HasNaN(values) {
			return 0, utils.Preconditionf("scalar type %s contains NaN", t)
		}
	}
	if n == 0 {
		return 0, utils.Preconditionf("scalar coverage has no values")
	}
	return n, nil
}

// Types returns the scalar types in sorted order
func (c Coverage) Types() []ScalarType {
	return sortedTypes(c)
}

// Expand maps values given per original point onto tessellated points by
// linear interpolation along each subdivided edge
func (c Coverage) Expand(interps []geometry.Interpolation) Coverage {
	out := make(Coverage, len(c))
	for t, values := range c {
		expanded := make([]float64, len(interps))
		for i, in := range interps {
			expanded[i] = in.Interpolate(values)
		}
		out[t] = expanded
	}
	return out
}

// clone copies every array so later edits to c do not leak in
func (c Coverage) clone() Coverage {
	out := make(Coverage, len(c))
	for t, values := range c {
		out[t] = append([]float64(nil), values...)
	}
	return out
}

// blend returns (1-frac)·a + frac·b
func blend(a, b []float64, frac float64) []float64 {
	out := make([]float64, len(a))
	floats.ScaleTo(out, 1-frac, a)
	floats.AddScaled(out, frac, b)
	return out
}
