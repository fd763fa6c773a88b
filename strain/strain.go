// Package strain holds the symmetric 2x2 deformation tensor used both for
// instantaneous strain rates and for accumulated total strain. Components are
// expressed in the local (colatitude θ, longitude φ) basis of a point.
package strain

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Principal holds the eigen-decomposition of a strain tensor
type Principal struct {
	Principal1 float64 // Larger eigenvalue (compression)
	Principal2 float64 // Smaller eigenvalue (tension)

	// Angle is the counter-clockwise rotation (radians) from the colatitude
	// axis to the Principal1 direction, viewed from outside the sphere
	Angle float64
}

// Strain is an immutable symmetric tensor. Derived quantities are computed on
// first use and cached; copies share the cache.
type Strain struct {
	ThetaTheta float64
	PhiPhi     float64
	ThetaPhi   float64

	derived *derived
}

type derived struct {
	invariantOnce sync.Once
	invariant     float64

	principalOnce sync.Once
	principal     Principal
}

// New returns the tensor with the given components
func New(thetaTheta, phiPhi, thetaPhi float64) Strain {
	return Strain{
		ThetaTheta: thetaTheta,
		PhiPhi:     phiPhi,
		ThetaPhi:   thetaPhi,
		derived:    &derived{},
	}
}

// Zero returns the zero tensor
func Zero() Strain {
	return New(0, 0, 0)
}

// Dilatation is the trace θθ + φφ
func (s Strain) Dilatation() float64 {
	return s.ThetaTheta + s.PhiPhi
}

// SecondInvariant is the square root of |θθ·φφ − θφ²| carrying the sign of the
// determinant
func (s Strain) SecondInvariant() float64 {
	if s.derived == nil {
		return s.secondInvariant()
	}
	s.derived.invariantOnce.Do(func() {
		s.derived.invariant = s.secondInvariant()
	})
	return s.derived.invariant
}

func (s Strain) secondInvariant() float64 {
	det := s.ThetaTheta*s.PhiPhi - s.ThetaPhi*s.ThetaPhi
	return math.Copysign(math.Sqrt(math.Abs(det)), det)
}

// PrincipalStrains returns the eigenvalues and the principal angle
func (s Strain) PrincipalStrains() Principal {
	if s.derived == nil {
		return s.principalStrains()
	}
	s.derived.principalOnce.Do(func() {
		s.derived.principal = s.principalStrains()
	})
	return s.derived.principal
}

// PrincipalAngle is shorthand for PrincipalStrains().Angle
func (s Strain) PrincipalAngle() float64 {
	return s.PrincipalStrains().Angle
}

func (s Strain) principalStrains() Principal {
	mean := 0.5 * (s.ThetaTheta + s.PhiPhi)
	halfDiff := 0.5 * (s.ThetaTheta - s.PhiPhi)
	radius := math.Sqrt(s.ThetaPhi*s.ThetaPhi + halfDiff*halfDiff)
	return Principal{
		Principal1: mean + radius,
		Principal2: mean - radius,
		Angle:      0.5 * math.Atan2(2*s.ThetaPhi, s.ThetaTheta-s.PhiPhi),
	}
}

// Add returns the component-wise sum
func (s Strain) Add(o Strain) Strain {
	return New(s.ThetaTheta+o.ThetaTheta, s.PhiPhi+o.PhiPhi, s.ThetaPhi+o.ThetaPhi)
}

// Scale returns every component multiplied by f
func (s Strain) Scale(f float64) Strain {
	return New(f*s.ThetaTheta, f*s.PhiPhi, f*s.ThetaPhi)
}

// Lerp blends a (t=0) and b (t=1)
func Lerp(a, b Strain, t float64) Strain {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// IsZero reports whether every component is exactly zero
func (s Strain) IsZero() bool {
	return s.ThetaTheta == 0 && s.PhiPhi == 0 && s.ThetaPhi == 0
}

// Matrix returns the tensor as a gonum symmetric matrix in (θ, φ) order
func (s Strain) Matrix() *mat.SymDense {
	return mat.NewSymDense(2, []float64{
		s.ThetaTheta, s.ThetaPhi,
		s.ThetaPhi, s.PhiPhi,
	})
}

// FromVelocityGradient symmetrizes a 2x2 velocity gradient L (rows: velocity
// component θ, φ; columns: derivative along θ, φ)
func FromVelocityGradient(l mat.Matrix) Strain {
	return New(l.At(0, 0), l.At(1, 1), 0.5*(l.At(0, 1)+l.At(1, 0)))
}
