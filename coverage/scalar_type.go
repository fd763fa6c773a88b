// Package coverage carries per-point scalar values along with a reconstructed
// geometry, evolving selected crustal quantities with the geometry's strain
// history.
package coverage

import (
	"math"
	"sort"
)

// ScalarType names a per-point scalar quantity
type ScalarType string

const (
	CrustalThickness        ScalarType = "CrustalThickness"        // km
	CrustalStretchingFactor ScalarType = "CrustalStretchingFactor" // β, initial over current thickness
	CrustalThinningFactor   ScalarType = "CrustalThinningFactor"   // γ = 1 - 1/β
)

// EvolutionFunc advances a scalar over one time step. dilatationRate (1/My)
// is averaged over the step and deltaTime is the signed step in the forward
// (towards present) direction, so a negative deltaTime undoes a forward step.
type EvolutionFunc func(value, dilatationRate, deltaTime float64) float64

// Laws maps each evolved scalar type to its evolution function. Types absent
// from the map are carried unchanged.
type Laws map[ScalarType]EvolutionFunc

// DefaultLaws returns the area-conserving crustal laws
func DefaultLaws() Laws {
	return Laws{
		CrustalThickness:        EvolveThickness,
		CrustalStretchingFactor: EvolveStretchingFactor,
		CrustalThinningFactor:   EvolveThinningFactor,
	}
}

// EvolveThickness thins crust as its area grows
func EvolveThickness(thickness, dilatationRate, deltaTime float64) float64 {
	return thickness * math.Exp(-dilatationRate*deltaTime)
}

// EvolveStretchingFactor grows β with area
func EvolveStretchingFactor(beta, dilatationRate, deltaTime float64) float64 {
	return beta * math.Exp(dilatationRate*deltaTime)
}

// EvolveThinningFactor keeps γ = 1 - 1/β consistent with EvolveStretchingFactor
func EvolveThinningFactor(gamma, dilatationRate, deltaTime float64) float64 {
	return 1 - (1-gamma)*math.Exp(-dilatationRate*deltaTime)
}

// Evolved reports whether the laws evolve scalarType
func (l Laws) Evolved(scalarType ScalarType) bool {
	_, ok := l[scalarType]
	return ok
}

func sortedTypes[V any](m map[ScalarType]V) []ScalarType {
	types := make([]ScalarType, 0, len(m))
	for t := range m {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
