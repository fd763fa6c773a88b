package topology

import (
	"sync"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/rotation"
	"github.com/notargets/gotopo/strain"
	"github.com/notargets/gotopo/utils"
	"gonum.org/v1/gonum/mat"
)

// NetworkVertex is a triangulation vertex. Its velocity comes from the stage
// rotation of the plate the vertex was taken from.
type NetworkVertex struct {
	Point   s2.Point
	PlateID rotation.PlateID
}

// RigidBlock is a non-deforming interior region of a network
type RigidBlock struct {
	PlateID  rotation.PlateID
	Vertices []s2.Point

	loop *s2.Loop
}

// ResolvedNetwork is a deforming region resolved at one time: an outline, a
// triangulation of its interior with per-vertex velocities, and optional rigid
// interior blocks
type ResolvedNetwork struct {
	PlateID  rotation.PlateID
	Name     string
	Boundary []s2.Point

	Vertices    []NetworkVertex
	Triangles   [][3]int // Counter-clockwise viewed from outside the sphere
	RigidBlocks []*RigidBlock

	loop *s2.Loop
	cap  s2.Cap

	mu         sync.Mutex
	velocities map[stageInterval][]r3.Vector
}

type stageInterval struct {
	fromTime, toTime float64
}

// NewResolvedNetwork validates the triangulation and orients every triangle
// counter-clockwise
func NewResolvedNetwork(plateID rotation.PlateID, name string, boundary []s2.Point,
	vertices []NetworkVertex, triangles [][3]int, blocks []RigidBlock) (*ResolvedNetwork, error) {
	loop, err := newLoop(boundary)
	if err != nil {
		return nil, err
	}
	if len(triangles) == 0 {
		return nil, utils.Preconditionf("network %s has no triangles", name)
	}
	tris := make([][3]int, len(triangles))
	for i, tri := range triangles {
		for _, vi := range tri {
			if vi < 0 || vi >= len(vertices) {
				return nil, utils.Preconditionf("network %s triangle %d references vertex %d of %d",
					name, i, vi, len(vertices))
			}
		}
		a, b, c := vertices[tri[0]].Point, vertices[tri[1]].Point, vertices[tri[2]].Point
		switch s2.RobustSign(a, b, c) {
		case s2.Indeterminate:
			return nil, utils.Preconditionf("network %s triangle %d is degenerate", name, i)
		case s2.Clockwise:
			tri[1], tri[2] = tri[2], tri[1]
		}
		tris[i] = tri
	}
	n := &ResolvedNetwork{
		PlateID:    plateID,
		Name:       name,
		Boundary:   boundary,
		Vertices:   vertices,
		Triangles:  tris,
		loop:       loop,
		cap:        loop.CapBound(),
		velocities: make(map[stageInterval][]r3.Vector),
	}
	for _, blk := range blocks {
		bl, err := newLoop(blk.Vertices)
		if err != nil {
			return nil, err
		}
		n.RigidBlocks = append(n.RigidBlocks, &RigidBlock{PlateID: blk.PlateID, Vertices: blk.Vertices, loop: bl})
	}
	return n, nil
}

// CapBound returns a cap bounding the network outline
func (n *ResolvedNetwork) CapBound() s2.Cap {
	return n.cap
}

// ContainsPoint reports whether p is inside the network outline
func (n *ResolvedNetwork) ContainsPoint(p s2.Point) bool {
	return n.loop.ContainsPoint(p)
}

// DistanceToBoundary returns the angular distance from p to the network outline
func (n *ResolvedNetwork) DistanceToBoundary(p s2.Point) s1.Angle {
	return geometry.DistanceToLoop(p, n.Boundary)
}

// Locate finds the rigid block or triangle containing p
func (n *ResolvedNetwork) Locate(p s2.Point) (Location, bool) {
	if !n.loop.ContainsPoint(p) {
		return NoLocation(), false
	}
	loc := Location{Kind: InNetwork, Network: n, Block: -1, Triangle: -1}
	for i, blk := range n.RigidBlocks {
		if blk.loop.ContainsPoint(p) {
			loc.Block = i
			return loc, true
		}
	}
	for i, tri := range n.Triangles {
		a, b, c := n.Vertices[tri[0]].Point, n.Vertices[tri[1]].Point, n.Vertices[tri[2]].Point
		if s2.RobustSign(a, b, p) == s2.Clockwise ||
			s2.RobustSign(b, c, p) == s2.Clockwise ||
			s2.RobustSign(c, a, p) == s2.Clockwise {
			continue
		}
		loc.Triangle = i
		loc.Weights = barycentric(p, a, b, c)
		return loc, true
	}
	return NoLocation(), false
}

// barycentric returns the gnomonic barycentric coordinates of p in triangle abc
func barycentric(p, a, b, c s2.Point) [3]float64 {
	wa := p.Dot(b.Cross(c.Vector))
	wb := p.Dot(c.Cross(a.Vector))
	wc := p.Dot(a.Cross(b.Vector))
	sum := wa + wb + wc
	if sum == 0 {
		return [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	}
	return [3]float64{wa / sum, wb / sum, wc / sum}
}

// VertexVelocities returns the velocity (km/My) of every vertex over the stage
// [fromTime, toTime]. Results are memoized per interval.
func (n *ResolvedNetwork) VertexVelocities(rotations rotation.Service, fromTime, toTime float64) []r3.Vector {
	key := stageInterval{fromTime: fromTime, toTime: toTime}
	n.mu.Lock()
	defer n.mu.Unlock()
	if v, ok := n.velocities[key]; ok {
		return v
	}
	v := make([]r3.Vector, len(n.Vertices))
	deltaTime := fromTime - toTime
	for i, vert := range n.Vertices {
		stage := rotations.StageRotation(vert.PlateID, fromTime, toTime)
		v[i] = geometry.VelocityFromStage(vert.Point, stage, deltaTime)
	}
	n.velocities[key] = v
	return v
}

// Velocity interpolates the network velocity at a located point. Rigid blocks
// move with their plate.
func (n *ResolvedNetwork) Velocity(p s2.Point, loc Location, rotations rotation.Service,
	fromTime, toTime float64, naturalNeighbour bool) r3.Vector {
	utils.Assert(loc.Network == n, "location does not refer to network %s", n.Name)
	deltaTime := fromTime - toTime
	if loc.Block >= 0 {
		stage := rotations.StageRotation(n.RigidBlocks[loc.Block].PlateID, fromTime, toTime)
		return geometry.VelocityFromStage(p, stage, deltaTime)
	}
	vel := n.VertexVelocities(rotations, fromTime, toTime)
	var sum r3.Vector
	if weights, ok := n.naturalNeighbour(p, naturalNeighbour); ok {
		for i, w := range weights {
			sum = sum.Add(vel[i].Mul(w))
		}
	} else {
		tri := n.Triangles[loc.Triangle]
		for k := 0; k < 3; k++ {
			sum = sum.Add(vel[tri[k]].Mul(loc.Weights[k]))
		}
	}
	return geometry.TangentProject(p, sum)
}

func (n *ResolvedNetwork) naturalNeighbour(p s2.Point, enabled bool) (map[int]float64, bool) {
	if !enabled {
		return nil, false
	}
	colat, lon := geometry.LocalBasis(p)
	verts := make([]r2.Point, len(n.Vertices))
	for i, v := range n.Vertices {
		if v.Point.Dot(p.Vector) <= 0 {
			return nil, false
		}
		x, y := geometry.TangentCoords(p, v.Point, colat, lon)
		verts[i] = r2.Point{X: x, Y: y}
	}
	return naturalNeighbourWeights(r2.Point{}, verts, n.Triangles)
}

// StrainRate returns the strain rate (1/My) at a located point. The velocity
// field is linear across each triangle, so the rate is that of the containing
// triangle expressed in the local (colatitude, longitude) basis of p. Rigid
// blocks do not deform.
func (n *ResolvedNetwork) StrainRate(p s2.Point, loc Location, rotations rotation.Service,
	fromTime, toTime float64) strain.Strain {
	if loc.Block >= 0 || loc.Triangle < 0 {
		return strain.Zero()
	}
	vel := n.VertexVelocities(rotations, fromTime, toTime)
	tri := n.Triangles[loc.Triangle]
	colat, lon := geometry.LocalBasis(p)

	var xs, ys, us, vs [3]float64
	for k, vi := range tri {
		xs[k], ys[k] = geometry.TangentCoords(p, n.Vertices[vi].Point, colat, lon)
		us[k], vs[k] = vel[vi].Dot(colat), vel[vi].Dot(lon)
	}
	a := mat.NewDense(2, 2, []float64{
		xs[1] - xs[0], ys[1] - ys[0],
		xs[2] - xs[0], ys[2] - ys[0],
	})
	b := mat.NewDense(2, 2, []float64{
		us[1] - us[0], vs[1] - vs[0],
		us[2] - us[0], vs[2] - vs[0],
	})
	// a·g = b gives g[k][m] = ∂u_m/∂x_k; the velocity gradient is gᵀ
	var g mat.Dense
	if err := g.Solve(a, b); err != nil {
		return strain.Zero()
	}
	return strain.FromVelocityGradient(g.T())
}
