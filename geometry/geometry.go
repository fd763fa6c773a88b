package geometry

import (
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Kind identifies the shape of a geometry
type Kind uint8

const (
	PointKind Kind = iota
	MultiPointKind
	PolylineKind
	PolygonKind // Closed ring, last point is not a repeat of the first
)

func (k Kind) String() string {
	switch k {
	case PointKind:
		return "point"
	case MultiPointKind:
		return "multipoint"
	case PolylineKind:
		return "polyline"
	case PolygonKind:
		return "polygon"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Geometry is an ordered set of unit-vector points on the sphere
type Geometry struct {
	Kind   Kind
	Points []s2.Point
}

// New validates the point count for the kind
func New(kind Kind, points []s2.Point) (Geometry, error) {
	var minPoints int
	switch kind {
	case PointKind:
		if len(points) != 1 {
			return Geometry{}, fmt.Errorf("point geometry needs exactly 1 point, got %d", len(points))
		}
	case MultiPointKind:
		minPoints = 1
	case PolylineKind:
		minPoints = 2
	case PolygonKind:
		minPoints = 3
	default:
		return Geometry{}, fmt.Errorf("unknown geometry kind %d", kind)
	}
	if len(points) < minPoints {
		return Geometry{}, fmt.Errorf("%s geometry needs at least %d points, got %d", kind, minPoints, len(points))
	}
	pts := make([]s2.Point, len(points))
	copy(pts, points)
	return Geometry{Kind: kind, Points: pts}, nil
}

// FromLatLons builds a geometry from [lat, lon] pairs in degrees
func FromLatLons(kind Kind, latLons [][2]float64) (Geometry, error) {
	pts := make([]s2.Point, len(latLons))
	for i, ll := range latLons {
		pts[i] = PointFromLatLon(ll[0], ll[1])
	}
	return New(kind, pts)
}

// NumPoints returns the number of points
func (g Geometry) NumPoints() int {
	return len(g.Points)
}

// Closed reports whether consecutive points wrap around from last to first
func (g Geometry) Closed() bool {
	return g.Kind == PolygonKind
}

// Tessellate subdivides polyline and polygon edges so that no segment exceeds
// maxSegment. Point kinds are returned unchanged with identity interpolations.
func (g Geometry) Tessellate(maxSegment s1.Angle) (Geometry, []Interpolation) {
	if g.Kind == PointKind || g.Kind == MultiPointKind || maxSegment <= 0 {
		return g, IdentityInterpolations(len(g.Points))
	}
	pts, interps := Tessellate(g.Points, g.Closed(), maxSegment)
	return Geometry{Kind: g.Kind, Points: pts}, interps
}

// CapBound returns a spherical cap containing all points
func CapBound(points []s2.Point) s2.Cap {
	c := s2.EmptyCap()
	for _, p := range points {
		c = c.AddPoint(p)
	}
	return c
}

// DistanceToLoop returns the minimum angular distance from p to the edges of
// the closed ring of vertices
func DistanceToLoop(p s2.Point, ring []s2.Point) s1.Angle {
	if len(ring) == 0 {
		return s1.InfAngle()
	}
	if len(ring) == 1 {
		return p.Distance(ring[0])
	}
	minDist := s1.InfAngle()
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		if d := s2.DistanceFromSegment(p, a, b); d < minDist {
			minDist = d
		}
	}
	return minDist
}
