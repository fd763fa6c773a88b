package geometry

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesPointCount(t *testing.T) {
	_, err := New(PolylineKind, nil)
	assert.Error(t, err)
	_, err = FromLatLons(PolygonKind, [][2]float64{{0, 0}, {0, 1}})
	assert.Error(t, err)
	_, err = FromLatLons(PointKind, [][2]float64{{0, 0}, {0, 1}})
	assert.Error(t, err)

	g, err := FromLatLons(PolylineKind, [][2]float64{{0, 0}, {0, 1}})
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumPoints())
	assert.False(t, g.Closed())
}

func TestTessellatePolyline(t *testing.T) {
	g, err := FromLatLons(PolylineKind, [][2]float64{{0, 0}, {0, 10}, {0, 12}})
	require.NoError(t, err)

	tess, interps := g.Tessellate(s1.Angle(3) * s1.Degree)
	// 10° edge → 4 arcs, 2° edge → 1 arc
	require.Len(t, tess.Points, 6)
	require.Len(t, interps, 6)

	assert.Equal(t, Interpolation{Index0: 0, Index1: 0}, interps[0])
	assert.Equal(t, 0, interps[2].Index0)
	assert.Equal(t, 1, interps[2].Index1)
	assert.InDelta(t, 0.5, interps[2].Ratio, 1e-12)
	assert.Equal(t, Interpolation{Index0: 2, Index1: 2}, interps[5])

	for i := 1; i < len(tess.Points); i++ {
		assert.LessOrEqual(t, tess.Points[i-1].Distance(tess.Points[i]).Degrees(), 3.0+1e-9)
	}
	_, lon := LatLon(tess.Points[2])
	assert.InDelta(t, 5.0, lon, 1e-9)

	values := []float64{10, 30, 40}
	assert.InDelta(t, 20.0, interps[2].Interpolate(values), 1e-12)
	assert.Equal(t, 10.0, interps[0].Interpolate(values))
}

func TestTessellatePolygonIncludesClosingEdge(t *testing.T) {
	g, err := FromLatLons(PolygonKind, [][2]float64{{0, 0}, {0, 4}, {4, 0}})
	require.NoError(t, err)
	tess, interps := g.Tessellate(s1.Angle(2.5) * s1.Degree)
	assert.Greater(t, len(tess.Points), 6)
	last := interps[len(interps)-1]
	assert.Equal(t, 2, last.Index0)
	assert.Equal(t, 0, last.Index1)
}

func TestTessellatePointsUnchanged(t *testing.T) {
	g, err := FromLatLons(MultiPointKind, [][2]float64{{0, 0}, {10, 10}})
	require.NoError(t, err)
	tess, interps := g.Tessellate(s1.Degree)
	assert.Equal(t, g.Points, tess.Points)
	assert.Equal(t, IdentityInterpolations(2), interps)
}

func TestFiniteRotationRotatesAboutPole(t *testing.T) {
	r := FromEulerPole(90, 0, 90)
	p := r.Rotate(PointFromLatLon(0, 0))
	lat, lon := LatLon(p)
	assert.InDelta(t, 0, lat, 1e-9)
	assert.InDelta(t, 90, lon, 1e-9)

	axis, angle := r.AxisAngle()
	assert.InDelta(t, 1, axis.Z, 1e-12)
	assert.InDelta(t, 90, angle.Degrees(), 1e-9)
}

func TestFiniteRotationInverseAndCompose(t *testing.T) {
	a := FromEulerPole(30, 40, 12)
	b := FromEulerPole(-10, 120, 25)
	p := PointFromLatLon(15, -20)

	back := a.Inverse().Rotate(a.Rotate(p))
	assert.Less(t, back.Distance(p).Radians(), 1e-12)

	ab := Compose(a, b)
	assert.Less(t, ab.Rotate(p).Distance(a.Rotate(b.Rotate(p))).Radians(), 1e-12)
	assert.True(t, Compose(a, a.Inverse()).IsIdentity(1e-12))
}

func TestSlerpEndpointsAndMidpoint(t *testing.T) {
	a := Identity()
	b := FromEulerPole(90, 0, 40)
	same := func(x, y FiniteRotation) bool { return Compose(x, y.Inverse()).IsIdentity(1e-12) }
	assert.True(t, same(Slerp(a, b, 0), a))
	assert.True(t, same(Slerp(a, b, 1), b))
	assert.True(t, same(Slerp(a, b, 0.5), FromEulerPole(90, 0, 20)))
}

func TestVelocityFromStage(t *testing.T) {
	// 1° per My about the north pole: equatorial speed = R·π/180 km/My eastward
	stage := FromEulerPole(90, 0, 1)
	p := PointFromLatLon(0, 0)
	v := VelocityFromStage(p, stage, 1)
	vColat, vLon := ColatLonVelocity(p, v)
	assert.InDelta(t, 0, vColat, 1e-9)
	assert.InDelta(t, EarthRadiusKm*math.Pi/180, vLon, 1e-9)
	assert.InDelta(t, 90, AzimuthDegrees(p, v), 1e-9)

	// Moving backward in time through the inverse stage gives the same velocity
	vBack := VelocityFromStage(p, stage.Inverse(), -1)
	assert.InDelta(t, 0, v.Sub(vBack).Norm(), 1e-9)

	moved := Advect(p, v, 1)
	assert.Less(t, moved.Distance(stage.Rotate(p)).Radians(), 1e-12)
	assert.Less(t, Advect(moved, v.Mul(-1), 1).Distance(p).Radians(), 1e-6)
}

func TestLocalBasisIsOrthonormalTangent(t *testing.T) {
	p := PointFromLatLon(35, 60)
	colat, lon := LocalBasis(p)
	assert.InDelta(t, 1, colat.Norm(), 1e-12)
	assert.InDelta(t, 1, lon.Norm(), 1e-12)
	assert.InDelta(t, 0, colat.Dot(lon), 1e-12)
	assert.InDelta(t, 0, colat.Dot(p.Vector), 1e-12)
	assert.InDelta(t, 0, lon.Dot(p.Vector), 1e-12)
	// Colatitude increases southward
	assert.Less(t, colat.Z, 0.0)

	tp := TangentProject(p, p.Vector.Add(r3.Vector{X: 0, Y: 0, Z: 1}))
	assert.InDelta(t, 0, tp.Dot(p.Vector), 1e-12)
}

func TestDistanceToLoop(t *testing.T) {
	square, err := FromLatLons(PolygonKind, [][2]float64{{-10, -10}, {-10, 10}, {10, 10}, {10, -10}})
	require.NoError(t, err)
	d := DistanceToLoop(PointFromLatLon(0, 9), square.Points)
	assert.InDelta(t, 1.0, d.Degrees(), 1e-6)
	assert.Equal(t, s1.InfAngle(), DistanceToLoop(PointFromLatLon(0, 0), nil))
}

func TestCapBoundContainsPoints(t *testing.T) {
	g, err := FromLatLons(MultiPointKind, [][2]float64{{0, 0}, {10, 10}, {-5, 20}})
	require.NoError(t, err)
	c := CapBound(g.Points)
	for _, p := range g.Points {
		assert.True(t, c.ContainsPoint(p))
	}
}
