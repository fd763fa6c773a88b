package coverage

import (
	"math"
	"sort"

	"github.com/notargets/gotopo/reconstruct"
	"github.com/notargets/gotopo/utils"
)

const timeEpsilon = 1e-6

// Evolution integrates evolved scalar types through the samples of a
// geometry time span, outward from the import sample in both directions
type Evolution struct {
	times      []float64                  // Sample times, oldest first
	dilatation [][]float64                // [sample][point slot], 1/My
	active     [][]bool                   // [sample][point slot]
	laws       Laws
	values     map[ScalarType][][]float64 // [type][sample][point slot]
}

// NewEvolution evolves importValues (one value per point slot) with laws.
// Every type in importValues must have a law.
func NewEvolution(span *reconstruct.GeometryTimeSpan, importValues Coverage, laws Laws) *Evolution {
	times := span.SampleTimes()
	seed := sort.Search(len(times), func(i int) bool { return times[i] <= span.SeedTime()+timeEpsilon })
	utils.Assert(seed < len(times) && math.Abs(times[seed]-span.SeedTime()) < timeEpsilon,
		"no sample at seed time %g", span.SeedTime())

	dilatation := make([][]float64, len(times))
	active := make([][]bool, len(times))
	for k, t := range times {
		data, ok := span.AllGeometryData(t, reconstruct.StrainRatesField)
		utils.Assert(ok, "span has a sample at %g but is not valid there", t)
		active[k] = data.Active
		dilatation[k] = make([]float64, len(data.StrainRates))
		for i, rate := range data.StrainRates {
			dilatation[k][i] = rate.Dilatation()
		}
	}

	e := &Evolution{
		times:      times,
		dilatation: dilatation,
		active:     active,
		laws:       laws,
		values:     make(map[ScalarType][][]float64, len(importValues)),
	}
	for scalarType, initial := range importValues {
		law, ok := laws[scalarType]
		utils.Assert(ok, "scalar type %s has no evolution law", scalarType)
		perSample := make([][]float64, len(times))
		perSample[seed] = append([]float64(nil), initial...)
		for k := seed + 1; k < len(times); k++ {
			perSample[k] = evolveStep(law, perSample[k-1], active[k],
				dilatation[k-1], dilatation[k], times[k-1]-times[k])
		}
		for k := seed - 1; k >= 0; k-- {
			perSample[k] = evolveStep(law, perSample[k+1], active[k],
				dilatation[k+1], dilatation[k], times[k+1]-times[k])
		}
		e.values[scalarType] = perSample
	}
	return e
}

// evolveStep applies law to the slots active in the new sample. Slots
// inactive there keep a zero value.
func evolveStep(law EvolutionFunc, prev []float64, active []bool, prevRate, currRate []float64,
	deltaTime float64) []float64 {
	out := make([]float64, len(prev))
	for i := range out {
		if !active[i] {
			continue
		}
		out[i] = law(prev[i], 0.5*(prevRate[i]+currRate[i]), deltaTime)
	}
	return out
}

// Types returns the evolved scalar types
func (e *Evolution) Types() []ScalarType {
	return sortedTypes(e.values)
}

// Values returns the evolved values of every point slot at time, clamped to
// the first and last samples. Between samples the law is applied over the
// partial step from the older sample.
func (e *Evolution) Values(scalarType ScalarType, time float64) ([]float64, bool) {
	perSample, ok := e.values[scalarType]
	if !ok {
		return nil, false
	}
	last := len(e.times) - 1
	switch {
	case time >= e.times[0]-timeEpsilon:
		return perSample[0], true
	case time <= e.times[last]+timeEpsilon:
		return perSample[last], true
	}
	// First sample younger than time; times are strictly decreasing
	k := sort.Search(len(e.times), func(i int) bool { return e.times[i] < time })
	if math.Abs(e.times[k-1]-time) < timeEpsilon {
		return perSample[k-1], true
	}
	if math.Abs(e.times[k]-time) < timeEpsilon {
		return perSample[k], true
	}
	frac := (e.times[k-1] - time) / (e.times[k-1] - e.times[k])
	rateAtTime := blend(e.dilatation[k-1], e.dilatation[k], frac)
	return evolveStep(e.laws[scalarType], perSample[k-1], e.active[k-1],
		e.dilatation[k-1], rateAtTime, e.times[k-1]-time), true
}
