package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"gonum.org/v1/gonum/num/quat"
)

// FiniteRotation is a rotation of the sphere about its centre, stored as a unit
// quaternion
type FiniteRotation struct {
	q quat.Number
}

// Identity returns the rotation that leaves every point in place
func Identity() FiniteRotation {
	return FiniteRotation{q: quat.Number{Real: 1}}
}

// NewFiniteRotation rotates counter-clockwise by angle about axis (right hand rule)
func NewFiniteRotation(axis r3.Vector, angle s1.Angle) FiniteRotation {
	n := axis.Norm()
	if n == 0 || angle == 0 {
		return Identity()
	}
	axis = axis.Mul(1 / n)
	sinH, cosH := math.Sincos(angle.Radians() / 2)
	return FiniteRotation{q: quat.Number{
		Real: cosH,
		Imag: axis.X * sinH,
		Jmag: axis.Y * sinH,
		Kmag: axis.Z * sinH,
	}}
}

// FromEulerPole builds a rotation from a pole latitude/longitude and an angle,
// all in degrees, as in total reconstruction pole tables
func FromEulerPole(latDeg, lonDeg, angleDeg float64) FiniteRotation {
	pole := PointFromLatLon(latDeg, lonDeg)
	return NewFiniteRotation(pole.Vector, s1.Angle(angleDeg)*s1.Degree)
}

// FromQuaternion normalizes q and wraps it as a rotation
func FromQuaternion(q quat.Number) FiniteRotation {
	n := quat.Abs(q)
	if n == 0 {
		return Identity()
	}
	return FiniteRotation{q: quat.Scale(1/n, q)}
}

// Quaternion returns the underlying unit quaternion
func (r FiniteRotation) Quaternion() quat.Number {
	return r.q
}

// RotateVector applies the rotation to an arbitrary vector
func (r FiniteRotation) RotateVector(v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	res := quat.Mul(quat.Mul(r.q, p), quat.Conj(r.q))
	return r3.Vector{X: res.Imag, Y: res.Jmag, Z: res.Kmag}
}

// Rotate applies the rotation to a point on the sphere
func (r FiniteRotation) Rotate(p s2.Point) s2.Point {
	return s2.Point{Vector: r.RotateVector(p.Vector).Normalize()}
}

// RotatePoints applies the rotation to every point
func (r FiniteRotation) RotatePoints(points []s2.Point) []s2.Point {
	out := make([]s2.Point, len(points))
	for i, p := range points {
		out[i] = r.Rotate(p)
	}
	return out
}

// Inverse returns the rotation undoing r
func (r FiniteRotation) Inverse() FiniteRotation {
	return FiniteRotation{q: quat.Conj(r.q)}
}

// Compose returns the rotation applying b first and then a
func Compose(a, b FiniteRotation) FiniteRotation {
	return FromQuaternion(quat.Mul(a.q, b.q))
}

// AxisAngle returns the rotation axis and angle with the angle in [0, π]
func (r FiniteRotation) AxisAngle() (r3.Vector, s1.Angle) {
	q := r.q
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	v := r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	sinH := v.Norm()
	if sinH < 1e-15 {
		return r3.Vector{X: 0, Y: 0, Z: 1}, 0
	}
	angle := 2 * math.Atan2(sinH, q.Real)
	return v.Mul(1 / sinH), s1.Angle(angle)
}

// IsIdentity reports whether r is within tol radians of the identity
func (r FiniteRotation) IsIdentity(tol float64) bool {
	_, angle := r.AxisAngle()
	return angle.Radians() <= tol
}

// Slerp interpolates between a (t=0) and b (t=1) along the shortest path
func Slerp(a, b FiniteRotation, t float64) FiniteRotation {
	qa, qb := a.q, b.q
	dot := qa.Real*qb.Real + qa.Imag*qb.Imag + qa.Jmag*qb.Jmag + qa.Kmag*qb.Kmag
	if dot < 0 {
		qb = quat.Scale(-1, qb)
		dot = -dot
	}
	if dot > 0.9995 {
		return FromQuaternion(quat.Add(qa, quat.Scale(t, quat.Sub(qb, qa))))
	}
	omega := math.Acos(dot)
	sinO := math.Sin(omega)
	wa := math.Sin((1-t)*omega) / sinO
	wb := math.Sin(t*omega) / sinO
	return FromQuaternion(quat.Add(quat.Scale(wa, qa), quat.Scale(wb, qb)))
}

func (r FiniteRotation) String() string {
	axis, angle := r.AxisAngle()
	lat, lon := LatLon(s2.Point{Vector: axis})
	return fmt.Sprintf("pole(%.4f, %.4f) angle %.6f°", lat, lon, angle.Degrees())
}
