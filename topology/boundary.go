package topology

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/rotation"
	"github.com/notargets/gotopo/utils"
)

// ResolvedBoundary is a rigid plate polygon resolved at one time
type ResolvedBoundary struct {
	PlateID  rotation.PlateID
	Name     string
	Vertices []s2.Point

	loop *s2.Loop
	cap  s2.Cap
}

// NewResolvedBoundary builds the polygon. Vertex winding does not matter; the
// smaller of the two regions bounded by the ring is taken as the interior.
func NewResolvedBoundary(plateID rotation.PlateID, name string, vertices []s2.Point) (*ResolvedBoundary, error) {
	loop, err := newLoop(vertices)
	if err != nil {
		return nil, err
	}
	return &ResolvedBoundary{
		PlateID:  plateID,
		Name:     name,
		Vertices: vertices,
		loop:     loop,
		cap:      loop.CapBound(),
	}, nil
}

func newLoop(vertices []s2.Point) (*s2.Loop, error) {
	if len(vertices) < 3 {
		return nil, utils.Preconditionf("polygon needs at least 3 vertices, got %d", len(vertices))
	}
	pts := make([]s2.Point, len(vertices))
	copy(pts, vertices)
	loop := s2.LoopFromPoints(pts)
	loop.Normalize()
	return loop, nil
}

// ContainsPoint reports whether p is inside the plate polygon
func (b *ResolvedBoundary) ContainsPoint(p s2.Point) bool {
	return b.loop.ContainsPoint(p)
}

// DistanceToBoundary returns the angular distance from p to the polygon outline
func (b *ResolvedBoundary) DistanceToBoundary(p s2.Point) s1.Angle {
	return geometry.DistanceToLoop(p, b.Vertices)
}

// CapBound returns a cap bounding the polygon
func (b *ResolvedBoundary) CapBound() s2.Cap {
	return b.cap
}
