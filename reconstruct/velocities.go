package reconstruct

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/topology"
	"github.com/notargets/gotopo/utils"
)

// DeltaTimeType selects the finite-difference interval of a velocity query
type DeltaTimeType uint8

const (
	DeltaTimePlusToT        DeltaTimeType = iota // [t+Δt, t]
	DeltaTimeToTMinus                            // [t, t-Δt]
	DeltaTimePlusMinusHalf                       // [t+Δt/2, t-Δt/2]
)

func (d DeltaTimeType) String() string {
	switch d {
	case DeltaTimePlusToT:
		return "plus-to-t"
	case DeltaTimeToTMinus:
		return "t-to-minus"
	case DeltaTimePlusMinusHalf:
		return "centred"
	}
	return fmt.Sprintf("DeltaTimeType(%d)", uint8(d))
}

// ParseDeltaTimeType accepts the names printed by String
func ParseDeltaTimeType(name string) (DeltaTimeType, error) {
	for _, d := range []DeltaTimeType{DeltaTimePlusToT, DeltaTimeToTMinus, DeltaTimePlusMinusHalf} {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, utils.Preconditionf("unknown velocity delta time type %q", name)
}

// Interval returns the (older, younger) times of the velocity stage at time
func (d DeltaTimeType) Interval(time, deltaTime float64) (fromTime, toTime float64) {
	switch d {
	case DeltaTimeToTMinus:
		return time, time - deltaTime
	case DeltaTimePlusMinusHalf:
		return time + deltaTime/2, time - deltaTime/2
	}
	return time + deltaTime, time
}

// VelocityData holds the active points at a time with their velocities and
// the topology each point was moving with
type VelocityData struct {
	Points     []s2.Point
	Velocities []r3.Vector // km/My, tangent to the sphere
	Locations  []topology.Location
}

// Velocities returns the velocity of every active point at time, evaluated
// over the interval selected by deltaType. deltaTime must be positive.
func (s *GeometryTimeSpan) Velocities(time, deltaTime float64, deltaType DeltaTimeType) (VelocityData, bool) {
	utils.Assert(deltaTime > 0, "velocity delta time %g must be positive", deltaTime)
	data, ok := s.GeometryData(time, PointsField|LocationsField)
	if !ok {
		return VelocityData{}, false
	}
	fromTime, toTime := deltaType.Interval(time, deltaTime)
	out := VelocityData{
		Points:     data.Points,
		Velocities: make([]r3.Vector, len(data.Points)),
		Locations:  data.Locations,
	}
	for i, p := range data.Points {
		out.Velocities[i] = locationVelocity(p, data.Locations[i], s.rotations, s.plateID,
			fromTime, toTime, s.naturalNeighbour)
	}
	return out, true
}
