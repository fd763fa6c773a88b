package reconstruct

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/rotation"
	"github.com/notargets/gotopo/topology"
	"github.com/notargets/gotopo/utils"
)

const (
	// DefaultThresholdVelocityDelta is the change in velocity (cm/yr) across a
	// topology boundary below which a point is never deactivated
	DefaultThresholdVelocityDelta = 0.7

	// DefaultThresholdDistanceToBoundary (km/My) is scaled by the time step to
	// give the distance from a boundary within which a point may be deactivated
	DefaultThresholdDistanceToBoundary = 10.0

	// DefaultDeactivatePointsOutsideNetwork controls whether points leaving a
	// deforming network into no topology at all are deactivated
	DefaultDeactivatePointsOutsideNetwork = false
)

// DeactivationParams tunes the default active-point test
type DeactivationParams struct {
	ThresholdVelocityDelta         float64 // cm/yr
	ThresholdDistanceToBoundary    float64 // km/My
	DeactivatePointsOutsideNetwork bool
}

// DefaultDeactivationParams returns the default thresholds
func DefaultDeactivationParams() DeactivationParams {
	return DeactivationParams{
		ThresholdVelocityDelta:         DefaultThresholdVelocityDelta,
		ThresholdDistanceToBoundary:    DefaultThresholdDistanceToBoundary,
		DeactivatePointsOutsideNetwork: DefaultDeactivatePointsOutsideNetwork,
	}
}

// PointTransition describes one point over one reconstruction time step. The
// previous location refers to the topologies at PrevTime, the current one to
// those at CurrTime.
type PointTransition struct {
	PrevTime, CurrTime         float64
	PrevPoint, CurrPoint       s2.Point
	PrevLocation, CurrLocation topology.Location

	// Reconstruction plate of the feature, used where a location has none
	PlateID   rotation.PlateID
	Rotations rotation.Service
}

// ActivePointPredicate decides whether a point survives a time step. A point
// that fails is deactivated for all later time steps in the same direction.
type ActivePointPredicate interface {
	IsActive(tr PointTransition) bool
}

type neverDeactivate struct{}

func (neverDeactivate) IsActive(PointTransition) bool { return true }

// Deactivation is the default subduction and ridge-consumption test. A point
// that has crossed from one topology into another is deactivated when the
// velocity jump across the boundary exceeds ThresholdVelocityDelta and the
// point started the step closer to its old boundary than it could travel in
// one step.
type Deactivation struct {
	Params DeactivationParams
}

var _ ActivePointPredicate = (*Deactivation)(nil)

// NewDeactivation validates the thresholds
func NewDeactivation(params DeactivationParams) (*Deactivation, error) {
	if params.ThresholdVelocityDelta < 0 || math.IsNaN(params.ThresholdVelocityDelta) {
		return nil, utils.Preconditionf("velocity delta threshold %g cm/yr must not be negative",
			params.ThresholdVelocityDelta)
	}
	if params.ThresholdDistanceToBoundary < 0 || math.IsNaN(params.ThresholdDistanceToBoundary) {
		return nil, utils.Preconditionf("distance to boundary threshold %g km/My must not be negative",
			params.ThresholdDistanceToBoundary)
	}
	return &Deactivation{Params: params}, nil
}

func (d *Deactivation) IsActive(tr PointTransition) bool {
	prev, curr := tr.PrevLocation, tr.CurrLocation
	if !prev.IsLocated() {
		return true
	}
	if !curr.IsLocated() {
		return !(d.Params.DeactivatePointsOutsideNetwork && prev.Kind == topology.InNetwork)
	}
	if prev.SameTopology(curr) {
		return true
	}

	prevVel := locationVelocity(tr.PrevPoint, prev, tr.Rotations, tr.PlateID, tr.PrevTime, tr.CurrTime, false)
	currVel := locationVelocity(tr.CurrPoint, curr, tr.Rotations, tr.PlateID, tr.PrevTime, tr.CurrTime, false)
	deltaVel := currVel.Sub(prevVel).Norm()
	if deltaVel*geometry.KmsPerMyToCmsPerYear < d.Params.ThresholdVelocityDelta {
		return true
	}

	deltaTime := math.Abs(tr.PrevTime - tr.CurrTime)
	thresholdKm := (d.Params.ThresholdDistanceToBoundary + deltaVel) * deltaTime
	return geometry.AngleToKm(distanceToBoundary(tr.PrevPoint, prev)) > thresholdKm
}

func distanceToBoundary(p s2.Point, loc topology.Location) s1.Angle {
	switch loc.Kind {
	case topology.InBoundary:
		return loc.Boundary.DistanceToBoundary(p)
	case topology.InNetwork:
		return loc.Network.DistanceToBoundary(p)
	}
	return s1.InfAngle()
}
