package geometry

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Interpolation records how a tessellated point relates to the original points:
// it lies a fraction Ratio of the way along the arc from Index0 to Index1.
// Original points have Index0 == Index1 and Ratio 0.
type Interpolation struct {
	Index0, Index1 int
	Ratio          float64
}

// IdentityInterpolations returns the interpolations of an untessellated geometry
func IdentityInterpolations(n int) []Interpolation {
	interps := make([]Interpolation, n)
	for i := range interps {
		interps[i] = Interpolation{Index0: i, Index1: i}
	}
	return interps
}

// Interpolate blends two original values with the stored ratio
func (in Interpolation) Interpolate(values []float64) float64 {
	if in.Ratio == 0 {
		return values[in.Index0]
	}
	return (1-in.Ratio)*values[in.Index0] + in.Ratio*values[in.Index1]
}

// Tessellate subdivides every edge longer than maxSegment into equal arcs.
// The closing edge, from the last point back to the first, is included when
// closed is set. Each returned point carries an Interpolation.
func Tessellate(points []s2.Point, closed bool, maxSegment s1.Angle) ([]s2.Point, []Interpolation) {
	n := len(points)
	if n == 0 {
		return nil, nil
	}
	out := make([]s2.Point, 0, n)
	interps := make([]Interpolation, 0, n)

	numEdges := n - 1
	if closed {
		numEdges = n
	}
	for i := 0; i < numEdges; i++ {
		j := (i + 1) % n
		a, b := points[i], points[j]
		out = append(out, a)
		interps = append(interps, Interpolation{Index0: i, Index1: i})

		numSub := int(math.Ceil(a.Distance(b).Radians() / maxSegment.Radians()))
		for k := 1; k < numSub; k++ {
			ratio := float64(k) / float64(numSub)
			out = append(out, s2.Interpolate(ratio, a, b))
			interps = append(interps, Interpolation{Index0: i, Index1: j, Ratio: ratio})
		}
	}
	if !closed {
		out = append(out, points[n-1])
		interps = append(interps, Interpolation{Index0: n - 1, Index1: n - 1})
	}
	return out, interps
}
