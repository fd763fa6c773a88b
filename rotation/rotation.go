// Package rotation provides plate-motion rotations: the service interface the
// reconstruction core consumes, an in-memory rotation hierarchy built from total
// reconstruction poles, and a memoizing stage-rotation cache.
package rotation

import (
	"github.com/notargets/gotopo/geometry"
)

// PlateID identifies a tectonic plate in the rotation hierarchy
type PlateID uint32

// Service answers rotation queries for a fixed rotation model. Implementations
// must be pure for fixed arguments so results can be memoized.
type Service interface {
	// TotalRotation rotates present-day positions on plateID to their positions
	// at time (Ma) relative to the anchor plate
	TotalRotation(plateID PlateID, time float64) geometry.FiniteRotation

	// StageRotation moves positions on plateID at fromTime to their positions
	// at toTime
	StageRotation(plateID PlateID, fromTime, toTime float64) geometry.FiniteRotation
}

// StageFromTotals returns R(to)·R(from)⁻¹ for a total-rotation lookup
func StageFromTotals(s Service, plateID PlateID, fromTime, toTime float64) geometry.FiniteRotation {
	return geometry.Compose(s.TotalRotation(plateID, toTime), s.TotalRotation(plateID, fromTime).Inverse())
}
