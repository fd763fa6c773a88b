package topology

import (
	"math"

	"github.com/golang/geo/r2"
)

// naturalNeighbourWeights computes Sibson coordinates of p with respect to the
// vertices of a planar Delaunay triangulation. The natural-neighbour cavity is
// the set of triangles whose circumcircle contains p; each cavity triangle
// contributes signed areas between its circumcentre and the circumcentres of
// the triangles p forms with its edges. It returns false when p falls outside
// the cavity machinery (hull edges, degenerate triangles) so callers can fall
// back to barycentric interpolation.
func naturalNeighbourWeights(p r2.Point, verts []r2.Point, tris [][3]int) (map[int]float64, bool) {
	const eps = 1e-12

	for i, v := range verts {
		if p.Sub(v).Norm() < eps {
			return map[int]float64{i: 1}, true
		}
	}

	weights := make(map[int]float64)
	for _, tri := range tris {
		a, b, c := verts[tri[0]], verts[tri[1]], verts[tri[2]]
		if b.Sub(a).Cross(c.Sub(a)) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
			b, c = c, b
		}
		centre, ok := circumcentre(a, b, c)
		if !ok {
			continue
		}
		if p.Sub(centre).Norm() >= a.Sub(centre).Norm() {
			continue
		}
		v := [3]r2.Point{a, b, c}
		var cs [3]r2.Point
		for j := 0; j < 3; j++ {
			cs[j], ok = circumcentre(p, v[(j+1)%3], v[(j+2)%3])
			if !ok {
				return nil, false
			}
		}
		for j := 0; j < 3; j++ {
			d := cs[(j+1)%3].Sub(centre).Cross(cs[(j+2)%3].Sub(centre))
			weights[tri[j]] += d
		}
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	if len(weights) == 0 || !(total > eps) || math.IsInf(total, 0) {
		return nil, false
	}
	for i := range weights {
		weights[i] /= total
		if weights[i] < -1e-9 {
			return nil, false
		}
	}
	return weights, true
}

func circumcentre(a, b, c r2.Point) (r2.Point, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-18 {
		return r2.Point{}, false
	}
	a2, b2, c2 := a.Dot(a), b.Dot(b), c.Dot(c)
	return r2.Point{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}, true
}
