package geometry

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// VelocityFromStage returns the velocity (km/My) of p under a stage rotation
// spanning deltaTime My. A positive deltaTime means the stage moves forward in
// time (from older to younger), so the result always points in the direction of
// motion forward in time.
func VelocityFromStage(p s2.Point, stage FiniteRotation, deltaTime float64) r3.Vector {
	if deltaTime == 0 {
		return r3.Vector{}
	}
	axis, angle := stage.AxisAngle()
	if angle == 0 {
		return r3.Vector{}
	}
	omega := axis.Mul(angle.Radians() / deltaTime)
	return omega.Cross(p.Vector).Mul(EarthRadiusKm)
}

// ColatLonVelocity splits a tangent velocity at p into colatitude (southward)
// and longitude (eastward) components
func ColatLonVelocity(p s2.Point, v r3.Vector) (vColat, vLon float64) {
	colat, lon := LocalBasis(p)
	return v.Dot(colat), v.Dot(lon)
}

// Advect moves p along the great circle given by velocity v (km/My) for
// deltaTime My (negative moves backward)
func Advect(p s2.Point, v r3.Vector, deltaTime float64) s2.Point {
	speed := v.Norm()
	if speed == 0 || deltaTime == 0 {
		return p
	}
	axis := p.Vector.Cross(v)
	angle := s1.Angle(speed * deltaTime / EarthRadiusKm)
	return NewFiniteRotation(axis, angle).Rotate(p)
}

// TangentProject removes the radial component of v at p
func TangentProject(p s2.Point, v r3.Vector) r3.Vector {
	return v.Sub(p.Vector.Mul(v.Dot(p.Vector)))
}

// SpeedCmsPerYear returns the magnitude of a km/My velocity in cm/yr
func SpeedCmsPerYear(v r3.Vector) float64 {
	return v.Norm() * KmsPerMyToCmsPerYear
}

// AzimuthDegrees returns the clockwise angle from north of the velocity at p
func AzimuthDegrees(p s2.Point, v r3.Vector) float64 {
	vColat, vLon := ColatLonVelocity(p, v)
	az := math.Atan2(vLon, -vColat) * 180 / math.Pi
	return math.Mod(az+360, 360)
}
