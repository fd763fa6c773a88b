package coverage

import (
	"fmt"

	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/reconstruct"
)

// Property is one scalar coverage of a feature: the geometry property the
// values are attached to, the property holding the values, and the values
// themselves, one per domain point
type Property struct {
	DomainProperty string
	RangeProperty  string
	Domain         geometry.Geometry
	Scalars        Coverage
}

// Extractor finds the scalar coverages of a feature
type Extractor interface {
	Coverages(feature reconstruct.Feature) []Property
}

// MapExtractor looks coverages up by feature name
type MapExtractor map[string][]Property

func (m MapExtractor) Coverages(feature reconstruct.Feature) []Property {
	return m[feature.Name]
}

// Build creates one TimeSpan per coverage of feature. With a nil span the
// coverages are static.
func Build(extractor Extractor, feature reconstruct.Feature, span *reconstruct.GeometryTimeSpan,
	laws Laws) ([]*TimeSpan, error) {
	var out []*TimeSpan
	for _, prop := range extractor.Coverages(feature) {
		var (
			ts  *TimeSpan
			err error
		)
		if span == nil {
			ts, err = NewStatic(prop.Scalars)
		} else {
			ts, err = NewEvolving(prop.Scalars, span, laws)
		}
		if err != nil {
			return nil, fmt.Errorf("coverage %s of feature %s: %w", prop.RangeProperty, feature.Name, err)
		}
		out = append(out, ts)
	}
	return out, nil
}
