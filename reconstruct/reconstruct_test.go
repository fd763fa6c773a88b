package reconstruct

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/rotation"
	"github.com/notargets/gotopo/topology"
	"github.com/notargets/gotopo/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ll(lat, lon float64) s2.Point {
	return geometry.PointFromLatLon(lat, lon)
}

func square(latMin, latMax, lonMin, lonMax float64) []s2.Point {
	return []s2.Point{ll(latMin, lonMin), ll(latMin, lonMax), ll(latMax, lonMax), ll(latMax, lonMin)}
}

// Plate 1 moves east 1°/My about the north pole; every other plate is fixed
func eastwardRotations(t *testing.T, plateID rotation.PlateID) *rotation.Hierarchy {
	t.Helper()
	h, err := rotation.NewHierarchy(0, []rotation.Sequence{
		{MovingPlate: plateID, FixedPlate: 0, Poles: []rotation.Pole{
			{Time: 0, Lat: 90, Lon: 0, Angle: 0},
			{Time: 100, Lat: 90, Lon: 0, Angle: -100},
		}},
	})
	require.NoError(t, err)
	return h
}

func staticSource(t *testing.T, tr topology.TimeRange, boundaries ...*topology.ResolvedBoundary) *topology.TimeSpan {
	t.Helper()
	snaps := make([]topology.Snapshot, tr.NumSlots())
	for i := range snaps {
		snaps[i] = topology.Snapshot{Boundaries: boundaries}
	}
	ts, err := topology.NewTimeSpan(tr, snaps)
	require.NoError(t, err)
	return ts
}

func timeRange(t *testing.T, begin, end, inc float64) topology.TimeRange {
	t.Helper()
	tr, err := topology.NewTimeRange(begin, end, inc)
	require.NoError(t, err)
	return tr
}

// subductionSetup has plate 1 (west of 0°E) moving east into fixed plate 2
func subductionSetup(t *testing.T) (*TopologyReconstruct, *topology.ResolvedBoundary, *topology.ResolvedBoundary) {
	t.Helper()
	west, err := topology.NewResolvedBoundary(1, "west", square(-30, 30, -30, 0))
	require.NoError(t, err)
	east, err := topology.NewResolvedBoundary(2, "east", square(-30, 30, 0, 30))
	require.NoError(t, err)
	recon, err := New(staticSource(t, timeRange(t, 10, 0, 1), west, east), eastwardRotations(t, 1), nil)
	require.NoError(t, err)
	return recon, west, east
}

func defaultDeactivation(t *testing.T) *Deactivation {
	t.Helper()
	d, err := NewDeactivation(DefaultDeactivationParams())
	require.NoError(t, err)
	return d
}

func TestFullSubduction(t *testing.T) {
	recon, _, _ := subductionSetup(t)
	geom, err := geometry.New(geometry.PointKind, []s2.Point{ll(0, -5.5)})
	require.NoError(t, err)

	span, err := recon.CreateGeometryTimeSpan(geom, 1, 10, SpanConfig{DeactivatePoints: defaultDeactivation(t)})
	require.NoError(t, err)

	tr := span.TimeRange()
	for slot := 0; slot <= 5; slot++ {
		assert.True(t, span.IsValid(tr.SlotTime(slot)), "slot %d", slot)
	}
	for slot := 6; slot < tr.NumSlots(); slot++ {
		assert.False(t, span.IsValid(tr.SlotTime(slot)), "slot %d", slot)
	}
	assert.False(t, span.IsValid(4.5))
	assert.True(t, span.IsValid(50), "older times are never truncated here")

	youngest, oldest := span.ValidTimes()
	assert.Equal(t, 5.0, youngest)
	assert.True(t, math.IsInf(oldest, 1))

	_, ok := span.Geometry(tr.SlotTime(6))
	assert.False(t, ok)

	g, ok := span.Geometry(tr.SlotTime(5))
	require.True(t, ok)
	lat, lon := geometry.LatLon(g.Points[0])
	assert.InDelta(t, 0, lat, 1e-9)
	assert.InDelta(t, -0.5, lon, 1e-9)
}

func TestPointCountAndMonotonicDeactivation(t *testing.T) {
	recon, _, _ := subductionSetup(t)
	geom, err := geometry.New(geometry.MultiPointKind, []s2.Point{ll(0, -5.5), ll(10, -25), ll(-10, -2.5)})
	require.NoError(t, err)
	span, err := recon.CreateGeometryTimeSpan(geom, 1, 10, SpanConfig{DeactivatePoints: defaultDeactivation(t)})
	require.NoError(t, err)

	tr := span.TimeRange()
	prev := []bool{true, true, true}
	for slot := 0; slot < tr.NumSlots(); slot++ {
		all, ok := span.AllGeometryData(tr.SlotTime(slot), AllFields)
		require.True(t, ok)
		require.Len(t, all.Active, 3)
		require.Len(t, all.Points, 3)
		require.Len(t, all.StrainRates, 3)
		require.Len(t, all.Strains, 3)
		for i := range all.Active {
			if !prev[i] {
				assert.False(t, all.Active[i], "point %d reactivated at slot %d", i, slot)
			}
		}
		prev = all.Active

		data, ok := span.GeometryData(tr.SlotTime(slot), PointsField|StrainRatesField)
		require.True(t, ok)
		assert.Len(t, data.StrainRates, len(data.Points))
		assert.Nil(t, data.Strains)
	}
	// The far point survives, the two near the trench are consumed
	assert.Equal(t, []bool{false, true, false}, prev)

	mask, ok := span.ActiveMask(3)
	require.True(t, ok)
	assert.Equal(t, []bool{false, true, false}, mask)

	g, ok := span.Geometry(0)
	require.True(t, ok)
	assert.Equal(t, geometry.MultiPointKind, g.Kind)
	assert.Len(t, g.Points, 1)
}

func TestRigidRoundTrip(t *testing.T) {
	tr := timeRange(t, 10, 0, 1)
	recon, err := New(staticSource(t, tr), eastwardRotations(t, 1), nil)
	require.NoError(t, err)

	p := ll(10, 30)
	geom, err := geometry.New(geometry.PointKind, []s2.Point{p})
	require.NoError(t, err)
	back, err := recon.CreateGeometryTimeSpan(geom, 1, 0, SpanConfig{})
	require.NoError(t, err)

	past, ok := back.Geometry(10)
	require.True(t, ok)
	assert.Less(t, past.Points[0].Distance(ll(10, 20)).Radians(), 1e-9)

	forward, err := recon.CreateGeometryTimeSpan(past, 1, 10, SpanConfig{})
	require.NoError(t, err)
	present, ok := forward.Geometry(0)
	require.True(t, ok)
	assert.Less(t, present.Points[0].Distance(p).Radians(), 1e-9)

	// Rigid extrapolation beyond both ends of the range
	older, ok := back.Geometry(20)
	require.True(t, ok)
	assert.Less(t, older.Points[0].Distance(ll(10, 10)).Radians(), 1e-9)
	// Rotations clamp at present day
	future, ok := forward.Geometry(-5)
	require.True(t, ok)
	assert.Less(t, future.Points[0].Distance(p).Radians(), 1e-9)
	assert.True(t, back.IsValid(-1000) && back.IsValid(1000))
}

func TestImportOutsideRange(t *testing.T) {
	tr := timeRange(t, 10, 0, 1)
	recon, err := New(staticSource(t, tr), eastwardRotations(t, 1), nil)
	require.NoError(t, err)

	// Position given at 20 Ma is rotated to the 10 Ma edge before stepping
	geom, err := geometry.New(geometry.PointKind, []s2.Point{ll(0, 0)})
	require.NoError(t, err)
	span, err := recon.CreateGeometryTimeSpan(geom, 1, 20, SpanConfig{})
	require.NoError(t, err)
	assert.Equal(t, 10.0, span.SeedTime())

	g, ok := span.Geometry(20)
	require.True(t, ok)
	assert.Less(t, g.Points[0].Distance(ll(0, 0)).Radians(), 1e-9)
	g, ok = span.Geometry(0)
	require.True(t, ok)
	assert.Less(t, g.Points[0].Distance(ll(0, 20)).Radians(), 1e-9)
}

func TestImportBetweenSlots(t *testing.T) {
	tr := timeRange(t, 10, 0, 1)
	recon, err := New(staticSource(t, tr), eastwardRotations(t, 1), nil)
	require.NoError(t, err)

	geom, err := geometry.New(geometry.PointKind, []s2.Point{ll(10, 30)})
	require.NoError(t, err)
	span, err := recon.CreateGeometryTimeSpan(geom, 1, 4.5, SpanConfig{})
	require.NoError(t, err)

	times := span.SampleTimes()
	assert.Len(t, times, tr.NumSlots()+1)
	assert.Contains(t, times, 4.5)
	assert.Equal(t, 10.0, times[0])

	g, ok := span.Geometry(4.5)
	require.True(t, ok)
	assert.Less(t, g.Points[0].Distance(ll(10, 30)).Radians(), 1e-12)

	g, ok = span.Geometry(4)
	require.True(t, ok)
	assert.Less(t, g.Points[0].Distance(ll(10, 30.5)).Radians(), 1e-9)

	g, ok = span.Geometry(4.25)
	require.True(t, ok)
	assert.Less(t, g.Points[0].Distance(ll(10, 30.25)).Radians(), 1e-5)
}

func riftFeature() topology.NetworkFeature {
	return topology.NetworkFeature{
		PlateID: 10,
		Name:    "rift",
		Vertices: []topology.NetworkVertex{
			{Point: ll(-5, 0), PlateID: 1},
			{Point: ll(5, 0), PlateID: 1},
			{Point: ll(-5, 20), PlateID: 2},
			{Point: ll(5, 20), PlateID: 2},
		},
		Outline:   []int{0, 2, 3, 1},
		Triangles: [][3]int{{0, 2, 3}, {0, 3, 1}},
	}
}

func riftReconstruct(t *testing.T) *TopologyReconstruct {
	t.Helper()
	tr := timeRange(t, 5, 0, 1)
	rots := eastwardRotations(t, 2)
	ts, err := topology.Resolve(tr, rots, nil, []topology.NetworkFeature{riftFeature()})
	require.NoError(t, err)
	recon, err := New(ts, rots, nil)
	require.NoError(t, err)
	return recon
}

func TestDeformingNetworkStrain(t *testing.T) {
	recon := riftReconstruct(t)
	geom, err := geometry.New(geometry.PointKind, []s2.Point{ll(1, 10)})
	require.NoError(t, err)
	span, err := recon.CreateGeometryTimeSpan(geom, 10, 0, SpanConfig{})
	require.NoError(t, err)

	for _, smp := range span.samples {
		require.NotNil(t, smp)
		assert.Nil(t, smp.strains, "total strain is computed on demand")
	}

	data, ok := span.GeometryData(0, LocationsField|StrainRatesField)
	require.True(t, ok)
	assert.Equal(t, topology.InNetwork, data.Locations[0].Kind)
	rate := data.StrainRates[0]
	assert.Greater(t, rate.PhiPhi, 0.0)
	assert.InDelta(t, 0, rate.ThetaTheta, 1e-3)
	assert.Nil(t, span.samples[0].strains)

	// Extension moved the point west of its present position in the past
	past, ok := span.Geometry(5)
	require.True(t, ok)
	_, lon := geometry.LatLon(past.Points[0])
	assert.Less(t, lon, 10.0)
	assert.Greater(t, lon, 5.0)

	oldest, ok := span.GeometryData(5, StrainsField)
	require.True(t, ok)
	assert.True(t, oldest.Strains[0].IsZero())

	mid, ok := span.GeometryData(3, StrainsField)
	require.True(t, ok)
	now, ok := span.GeometryData(0, StrainsField)
	require.True(t, ok)
	assert.Greater(t, mid.Strains[0].PhiPhi, 0.0)
	assert.Greater(t, now.Strains[0].PhiPhi, mid.Strains[0].PhiPhi)
	assert.Greater(t, now.Strains[0].Dilatation(), 0.0)

	for _, smp := range span.samples {
		assert.NotNil(t, smp.strains)
	}

	// Interpolated and extrapolated samples carry strain too
	between, ok := span.GeometryData(2.5, StrainsField)
	require.True(t, ok)
	assert.Greater(t, between.Strains[0].PhiPhi, mid.Strains[0].PhiPhi)
	beyond, ok := span.GeometryData(-3, StrainsField|StrainRatesField)
	require.True(t, ok)
	assert.Equal(t, now.Strains[0], beyond.Strains[0])
	assert.True(t, beyond.StrainRates[0].IsZero())
}

func TestNaturalNeighbourOption(t *testing.T) {
	recon := riftReconstruct(t)
	geom, err := geometry.New(geometry.PointKind, []s2.Point{ll(1, 10)})
	require.NoError(t, err)
	bary, err := recon.CreateGeometryTimeSpan(geom, 10, 0, SpanConfig{})
	require.NoError(t, err)
	nn, err := recon.CreateGeometryTimeSpan(geom, 10, 0, SpanConfig{UseNaturalNeighbour: true})
	require.NoError(t, err)

	a, ok := bary.Geometry(5)
	require.True(t, ok)
	b, ok := nn.Geometry(5)
	require.True(t, ok)
	assert.Less(t, geometry.AngleToKm(a.Points[0].Distance(b.Points[0])), 50.0)
}

func TestVelocities(t *testing.T) {
	recon, _, _ := subductionSetup(t)
	geom, err := geometry.New(geometry.PointKind, []s2.Point{ll(0, -5.5)})
	require.NoError(t, err)
	span, err := recon.CreateGeometryTimeSpan(geom, 1, 10, SpanConfig{DeactivatePoints: defaultDeactivation(t)})
	require.NoError(t, err)

	fullSpeed := geometry.EarthRadiusKm * math.Pi / 180
	for _, dt := range []DeltaTimeType{DeltaTimePlusToT, DeltaTimeToTMinus, DeltaTimePlusMinusHalf} {
		v, ok := span.Velocities(8, 1, dt)
		require.True(t, ok)
		require.Len(t, v.Velocities, 1)
		vColat, vLon := geometry.ColatLonVelocity(v.Points[0], v.Velocities[0])
		assert.InDelta(t, 0, vColat, 1e-9)
		assert.InDelta(t, fullSpeed, vLon, 1e-6, dt.String())
		assert.Equal(t, topology.InBoundary, v.Locations[0].Kind)
		assert.Equal(t, "west", v.Locations[0].Boundary.Name)
	}
	assert.InDelta(t, 11.12, geometry.SpeedCmsPerYear(mustVelocity(t, span, 8)), 0.01)

	_, ok := span.Velocities(2, 1, DeltaTimePlusToT)
	assert.False(t, ok)
	assert.Panics(t, func() { span.Velocities(8, 0, DeltaTimePlusToT) })
}

func mustVelocity(t *testing.T, span *GeometryTimeSpan, time float64) r3.Vector {
	t.Helper()
	v, ok := span.Velocities(time, 1, DeltaTimePlusToT)
	require.True(t, ok)
	return v.Velocities[0]
}

func TestDeltaTimeType(t *testing.T) {
	from, to := DeltaTimePlusToT.Interval(10, 2)
	assert.Equal(t, [2]float64{12, 10}, [2]float64{from, to})
	from, to = DeltaTimeToTMinus.Interval(10, 2)
	assert.Equal(t, [2]float64{10, 8}, [2]float64{from, to})
	from, to = DeltaTimePlusMinusHalf.Interval(10, 2)
	assert.Equal(t, [2]float64{11, 9}, [2]float64{from, to})

	d, err := ParseDeltaTimeType("centred")
	require.NoError(t, err)
	assert.Equal(t, DeltaTimePlusMinusHalf, d)
	_, err = ParseDeltaTimeType("sideways")
	assert.True(t, errors.Is(err, utils.ErrPrecondition))
}

func TestDeactivationPolicy(t *testing.T) {
	_, west, east := subductionSetup(t)
	rots := eastwardRotations(t, 1)
	d := defaultDeactivation(t)

	crossing := PointTransition{
		PrevTime: 6, CurrTime: 5,
		PrevPoint: ll(0, -0.5), CurrPoint: ll(0, 0.5),
		PrevLocation: topology.LocatedInBoundary(west),
		CurrLocation: topology.LocatedInBoundary(east),
		PlateID:      1,
		Rotations:    rots,
	}
	assert.False(t, d.IsActive(crossing))

	// Unlocated before, or staying on the same plate
	tr := crossing
	tr.PrevLocation = topology.NoLocation()
	assert.True(t, d.IsActive(tr))
	tr = crossing
	tr.CurrLocation = topology.LocatedInBoundary(west)
	assert.True(t, d.IsActive(tr))

	// Too far from the boundary to have crossed it in one step
	tr = crossing
	tr.PrevPoint = ll(0, -5)
	assert.True(t, d.IsActive(tr))

	// No velocity jump across the boundary
	still, err := topology.NewResolvedBoundary(3, "still", square(-30, 30, -30, 0))
	require.NoError(t, err)
	tr = crossing
	tr.PrevLocation = topology.LocatedInBoundary(still)
	assert.True(t, d.IsActive(tr))

	// A huge threshold keeps everything
	lenient, err := NewDeactivation(DeactivationParams{ThresholdVelocityDelta: 100})
	require.NoError(t, err)
	assert.True(t, lenient.IsActive(crossing))

	_, err = NewDeactivation(DeactivationParams{ThresholdVelocityDelta: -1})
	assert.True(t, errors.Is(err, utils.ErrPrecondition))
	_, err = NewDeactivation(DeactivationParams{ThresholdDistanceToBoundary: math.NaN()})
	assert.True(t, errors.Is(err, utils.ErrPrecondition))
}

func TestDeactivateOutsideNetwork(t *testing.T) {
	tr := timeRange(t, 5, 0, 1)
	rots := eastwardRotations(t, 2)
	ts, err := topology.Resolve(tr, rots, nil, []topology.NetworkFeature{riftFeature()})
	require.NoError(t, err)
	snap := ts.Snapshot(5)
	inside := snap.Locate(ll(1, 10), topology.NoLocation())
	require.Equal(t, topology.InNetwork, inside.Kind)

	leaving := PointTransition{
		PrevTime: 1, CurrTime: 0,
		PrevPoint: ll(1, 19.9), CurrPoint: ll(1, 20.5),
		PrevLocation: inside,
		CurrLocation: topology.NoLocation(),
		PlateID:      10,
		Rotations:    rots,
	}
	assert.True(t, defaultDeactivation(t).IsActive(leaving))

	params := DefaultDeactivationParams()
	params.DeactivatePointsOutsideNetwork = true
	strict, err := NewDeactivation(params)
	require.NoError(t, err)
	assert.False(t, strict.IsActive(leaving))
}

func TestTessellatedSpan(t *testing.T) {
	tr := timeRange(t, 10, 0, 1)
	recon, err := New(staticSource(t, tr), eastwardRotations(t, 1), nil)
	require.NoError(t, err)
	geom, err := geometry.New(geometry.PolylineKind, []s2.Point{ll(0, 0), ll(0, 10)})
	require.NoError(t, err)

	span, err := recon.CreateGeometryTimeSpan(geom, 1, 0, SpanConfig{MaxTessellationAngle: 3 * s1.Degree})
	require.NoError(t, err)
	assert.Equal(t, 2, span.NumOriginalPoints())
	assert.Equal(t, 5, span.NumAllPoints())
	require.Len(t, span.Interpolations(), 5)
	assert.InDelta(t, 0.25, span.Interpolations()[1].Ratio, 1e-12)

	all, ok := span.AllGeometryData(7, PointsField)
	require.True(t, ok)
	assert.Len(t, all.Points, 5)
	g, ok := span.Geometry(7)
	require.True(t, ok)
	assert.Equal(t, geometry.PolylineKind, g.Kind)
}

func TestCreateGeometryTimeSpanPreconditions(t *testing.T) {
	tr := timeRange(t, 10, 0, 1)
	recon, err := New(staticSource(t, tr), eastwardRotations(t, 1), nil)
	require.NoError(t, err)
	p, err := geometry.New(geometry.PointKind, []s2.Point{ll(0, 0)})
	require.NoError(t, err)

	_, err = recon.CreateGeometryTimeSpan(geometry.Geometry{}, 1, 0, SpanConfig{})
	assert.True(t, errors.Is(err, utils.ErrPrecondition))
	_, err = recon.CreateGeometryTimeSpan(p, 1, math.NaN(), SpanConfig{})
	assert.True(t, errors.Is(err, utils.ErrPrecondition))
	_, err = recon.CreateGeometryTimeSpan(p, 1, 0, SpanConfig{MaxTessellationAngle: -1})
	assert.True(t, errors.Is(err, utils.ErrPrecondition))

	_, err = New(nil, eastwardRotations(t, 1), nil)
	assert.True(t, errors.Is(err, utils.ErrPrecondition))
	_, err = New(staticSource(t, tr), nil, nil)
	assert.True(t, errors.Is(err, utils.ErrPrecondition))
}

func TestReconstructionGeometryPoints(t *testing.T) {
	rots := eastwardRotations(t, 1)
	present, err := geometry.New(geometry.PointKind, []s2.Point{ll(0, 0)})
	require.NoError(t, err)

	rigid := ReconstructRigid(rots, 1, present, 10)
	vgp := ReconstructPole(rots, 1, ll(80, 0), ll(0, 0), 5*s1.Degree, 10)

	recon, _, _ := subductionSetup(t)
	trench, err := geometry.New(geometry.PointKind, []s2.Point{ll(0, -5.5)})
	require.NoError(t, err)
	span, err := recon.CreateGeometryTimeSpan(trench, 1, 10, SpanConfig{DeactivatePoints: defaultDeactivation(t)})
	require.NoError(t, err)

	for _, tc := range []struct {
		rg    ReconstructionGeometry
		ok    bool
		point s2.Point
	}{
		{rg: rigid, ok: true, point: ll(0, -10)},
		{rg: vgp, ok: true, point: ll(80, -10)},
		{rg: TopologyReconstructed{Span: span, Time: 10}, ok: true, point: ll(0, -5.5)},
		{rg: TopologyReconstructed{Span: span, Time: 0}, ok: false},
	} {
		pts, ok := Points(tc.rg)
		assert.Equal(t, tc.ok, ok)
		assert.Equal(t, rotation.PlateID(1), tc.rg.ReconstructionPlateID())
		if ok {
			require.Len(t, pts, 1)
			assert.Less(t, pts[0].Distance(tc.point).Radians(), 1e-9)
		}
	}
	assert.Equal(t, 10.0, vgp.ReconstructionTime())
	assert.Less(t, vgp.Site.Distance(ll(0, -10)).Radians(), 1e-9)
}

func TestReconstructAll(t *testing.T) {
	recon, _, _ := subductionSetup(t)
	mk := func(lat, lon float64) geometry.Geometry {
		g, err := geometry.New(geometry.PointKind, []s2.Point{ll(lat, lon)})
		require.NoError(t, err)
		return g
	}
	features := []Feature{
		{Name: "a", Geometry: mk(0, -5.5), PlateID: 1, ImportTime: 10,
			Config: SpanConfig{DeactivatePoints: defaultDeactivation(t)}},
		{Name: "b", Geometry: mk(10, -20), PlateID: 1, ImportTime: 10},
		{Name: "c", Geometry: mk(-10, 10), PlateID: 2, ImportTime: 0},
	}
	spans, err := recon.ReconstructAll(context.Background(), features, 2)
	require.NoError(t, err)
	require.Len(t, spans, 3)
	for i, s := range spans {
		require.NotNil(t, s, "feature %d", i)
	}
	assert.False(t, spans[0].IsValid(0))
	assert.True(t, spans[1].IsValid(0))
	assert.Equal(t, rotation.PlateID(2), spans[2].PlateID())

	features = append(features, Feature{Name: "empty"})
	_, err = recon.ReconstructAll(context.Background(), features, 3)
	assert.True(t, errors.Is(err, utils.ErrPrecondition))
	assert.ErrorContains(t, err, "empty")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = recon.ReconstructAll(ctx, features[:3], 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStageCacheShared(t *testing.T) {
	recon, _, _ := subductionSetup(t)
	geom, err := geometry.New(geometry.PointKind, []s2.Point{ll(10, -20)})
	require.NoError(t, err)
	_, err = recon.CreateGeometryTimeSpan(geom, 1, 10, SpanConfig{})
	require.NoError(t, err)
	first := recon.Rotations().Stats()
	_, err = recon.CreateGeometryTimeSpan(geom, 1, 10, SpanConfig{})
	require.NoError(t, err)
	second := recon.Rotations().Stats()
	assert.Equal(t, first.Misses, second.Misses)
	assert.Greater(t, second.Hits, first.Hits)
}
