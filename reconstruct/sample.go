package reconstruct

import (
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/rotation"
	"github.com/notargets/gotopo/strain"
	"github.com/notargets/gotopo/topology"
)

// pointState is one point of a sample
type pointState struct {
	position   s2.Point
	location   topology.Location
	strainRate strain.Strain
}

// sample holds every point slot of a geometry at one time. Inactive slots keep
// their index with a zero pointState, so the slot count never changes.
type sample struct {
	time      float64
	active    []bool
	points    []pointState
	numActive int

	// Total strain per slot, filled in for the whole span on first request and
	// only read after that
	strains []strain.Strain
}

func newSample(time float64, numPoints int) *sample {
	return &sample{
		time:   time,
		active: make([]bool, numPoints),
		points: make([]pointState, numPoints),
	}
}

func (s *sample) activePositions() []s2.Point {
	pts := make([]s2.Point, 0, s.numActive)
	for i, p := range s.points {
		if s.active[i] {
			pts = append(pts, p.position)
		}
	}
	return pts
}

// interpolateSamples blends a (older) towards b (younger). A slot is active
// only when it is active in both. The location is taken from the nearer sample.
func interpolateSamples(a, b *sample, frac, time float64, withStrains bool) *sample {
	out := newSample(time, len(a.points))
	if withStrains {
		out.strains = make([]strain.Strain, len(a.points))
	}
	near := a
	if frac > 0.5 {
		near = b
	}
	for i := range out.points {
		if !a.active[i] || !b.active[i] {
			continue
		}
		pa, pb := &a.points[i], &b.points[i]
		out.active[i] = true
		out.numActive++
		out.points[i] = pointState{
			position:   s2.Interpolate(frac, pa.position, pb.position),
			location:   near.points[i].location,
			strainRate: strain.Lerp(pa.strainRate, pb.strainRate, frac),
		}
		if withStrains {
			out.strains[i] = strain.Lerp(a.strains[i], b.strains[i], frac)
		}
	}
	return out
}

// rigidSample rotates the active points of edge to time with a single stage
// rotation of plateID. No topologies exist out there, so points are not
// located and do not deform; total strain is carried unchanged.
func rigidSample(edge *sample, rotations rotation.Service, plateID rotation.PlateID, time float64,
	withStrains bool) *sample {
	out := newSample(time, len(edge.points))
	if withStrains {
		out.strains = edge.strains
	}
	stage := rotations.StageRotation(plateID, edge.time, time)
	for i := range edge.points {
		if !edge.active[i] {
			continue
		}
		out.active[i] = true
		out.numActive++
		out.points[i] = pointState{
			position:   stage.Rotate(edge.points[i].position),
			location:   topology.NoLocation(),
			strainRate: strain.Zero(),
		}
	}
	return out
}

// locationVelocity returns the velocity (km/My) of p over [fromTime, toTime]
// as moved by the topology at loc, or rigidly by plateID when not located
func locationVelocity(p s2.Point, loc topology.Location, rotations rotation.Service,
	plateID rotation.PlateID, fromTime, toTime float64, naturalNeighbour bool) r3.Vector {
	if loc.Kind == topology.InNetwork {
		return loc.Network.Velocity(p, loc, rotations, fromTime, toTime, naturalNeighbour)
	}
	if id, ok := loc.PlateID(); ok {
		plateID = id
	}
	stage := rotations.StageRotation(plateID, fromTime, toTime)
	return geometry.VelocityFromStage(p, stage, fromTime-toTime)
}
