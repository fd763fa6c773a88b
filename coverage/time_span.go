package coverage

import (
	"github.com/notargets/gotopo/reconstruct"
	"github.com/notargets/gotopo/utils"
)

// TimeSpan gives the scalar values of a coverage at any time. A static time
// span returns its values unchanged everywhere. An evolving one follows a
// GeometryTimeSpan: evolved types change with the geometry's strain history,
// the others are carried unchanged, and all of them are deactivated in
// lock-step with the geometry's points.
type TimeSpan struct {
	numAll int

	// Values per point slot at the import time (after tessellation expansion)
	importValues Coverage

	span      *reconstruct.GeometryTimeSpan // nil when static
	evolution *Evolution                    // nil when static or nothing evolves
}

// NewStatic returns a coverage without a geometry time span
func NewStatic(initial Coverage) (*TimeSpan, error) {
	n, err := initial.Validate()
	if err != nil {
		return nil, err
	}
	return &TimeSpan{numAll: n, importValues: initial.clone()}, nil
}

// NewEvolving ties initial, given per original (untessellated) point, to span.
// A nil laws uses DefaultLaws.
func NewEvolving(initial Coverage, span *reconstruct.GeometryTimeSpan, laws Laws) (*TimeSpan, error) {
	if span == nil {
		return nil, utils.Preconditionf("evolving coverage needs a geometry time span")
	}
	n, err := initial.Validate()
	if err != nil {
		return nil, err
	}
	if n != span.NumOriginalPoints() {
		return nil, utils.Preconditionf("coverage has %d values per type, geometry has %d points",
			n, span.NumOriginalPoints())
	}
	if laws == nil {
		laws = DefaultLaws()
	}

	importValues := initial.Expand(span.Interpolations())
	evolved := make(Coverage)
	for t, values := range importValues {
		if laws.Evolved(t) {
			evolved[t] = values
		}
	}
	ts := &TimeSpan{numAll: span.NumAllPoints(), importValues: importValues, span: span}
	if len(evolved) > 0 {
		ts.evolution = NewEvolution(span, evolved, laws)
	}
	return ts, nil
}

// IsValid reports whether the coverage has active values at time
func (ts *TimeSpan) IsValid(time float64) bool {
	return ts.span == nil || ts.span.IsValid(time)
}

// NumAllScalarValues returns the number of values per type including inactive ones
func (ts *TimeSpan) NumAllScalarValues() int {
	return ts.numAll
}

// ScalarTypes returns the types held, sorted
func (ts *TimeSpan) ScalarTypes() []ScalarType {
	return ts.importValues.Types()
}

// Evolving reports whether scalarType changes with the strain history
func (ts *TimeSpan) Evolving(scalarType ScalarType) bool {
	if ts.evolution == nil {
		return false
	}
	_, ok := ts.evolution.values[scalarType]
	return ok
}

// AreScalarValuesActive returns the active mask at time, matching the
// geometry's own point mask
func (ts *TimeSpan) AreScalarValuesActive(time float64) ([]bool, bool) {
	if ts.span == nil {
		active := make([]bool, ts.numAll)
		for i := range active {
			active[i] = true
		}
		return active, true
	}
	return ts.span.ActiveMask(time)
}

// AllScalarValues returns one value per point slot with the active mask.
// Inactive values are zero.
func (ts *TimeSpan) AllScalarValues(scalarType ScalarType, time float64) ([]float64, []bool, bool) {
	base, ok := ts.importValues[scalarType]
	if !ok {
		return nil, nil, false
	}
	active, ok := ts.AreScalarValuesActive(time)
	if !ok {
		return nil, nil, false
	}
	values := base
	if ts.Evolving(scalarType) {
		values, ok = ts.evolution.Values(scalarType, time)
		utils.Assert(ok, "evolved scalar type %s missing from its evolution", scalarType)
	}
	out := make([]float64, ts.numAll)
	for i, a := range active {
		if a {
			out[i] = values[i]
		}
	}
	return out, active, true
}

// ScalarValues returns the values of the active points at time, in the same
// order as the geometry's active points
func (ts *TimeSpan) ScalarValues(scalarType ScalarType, time float64) ([]float64, bool) {
	values, active, ok := ts.AllScalarValues(scalarType, time)
	if !ok {
		return nil, false
	}
	return utils.Compact(utils.NewIndexMap(active), values), true
}
