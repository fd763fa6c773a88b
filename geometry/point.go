package geometry

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	EarthRadiusKm = 6371.0 // Earth's mean radius in kilometers

	// KmsPerMyToCmsPerYear converts km/My to cm/yr
	KmsPerMyToCmsPerYear = 0.1
)

// PointFromLatLon converts latitude and longitude in degrees to a unit vector
func PointFromLatLon(latDeg, lonDeg float64) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(latDeg, lonDeg))
}

// LatLon returns latitude and longitude of p in degrees
func LatLon(p s2.Point) (latDeg, lonDeg float64) {
	ll := s2.LatLngFromPoint(p)
	return ll.Lat.Degrees(), ll.Lng.Degrees()
}

// LocalBasis returns the unit tangent vectors at p pointing along increasing
// colatitude (south) and increasing longitude (east)
func LocalBasis(p s2.Point) (colat, lon r3.Vector) {
	ll := s2.LatLngFromPoint(p)
	theta := math.Pi/2 - ll.Lat.Radians()
	phi := ll.Lng.Radians()
	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(phi)
	colat = r3.Vector{X: cosT * cosP, Y: cosT * sinP, Z: -sinT}
	lon = r3.Vector{X: -sinP, Y: cosP, Z: 0}
	return
}

// TangentCoords projects q gnomonically onto the tangent plane at p and
// returns its (colatitude, longitude) coordinates in kilometers
func TangentCoords(p, q s2.Point, colat, lon r3.Vector) (x, y float64) {
	d := q.Dot(p.Vector)
	if d <= 0 {
		// Beyond the horizon; clamp to keep the projection finite
		d = 1e-12
	}
	v := q.Mul(1 / d).Sub(p.Vector)
	return v.Dot(colat) * EarthRadiusKm, v.Dot(lon) * EarthRadiusKm
}

// AngleToKm converts an angular distance to kilometers on Earth's surface
func AngleToKm(a s1.Angle) float64 {
	return a.Radians() * EarthRadiusKm
}
