package reconstruct

import (
	"math"
	"sort"
	"sync"

	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/rotation"
	"github.com/notargets/gotopo/strain"
	"github.com/notargets/gotopo/topology"
	"github.com/notargets/gotopo/utils"
)

// GeometryTimeSpan is the history of one geometry's points across the time
// range of its TopologyReconstruct. Every slot is computed at creation; total
// strains are integrated on first request.
//
// A span is safe for concurrent readers once created.
type GeometryTimeSpan struct {
	source    topology.Source
	rotations rotation.Service
	timeRange topology.TimeRange

	plateID           rotation.PlateID
	importTime        float64
	kind              geometry.Kind
	numOriginalPoints int
	interpolations    []geometry.Interpolation
	naturalNeighbour  bool
	deactivate        ActivePointPredicate

	samples []*sample // One per slot, nil beyond a deactivation cut-off
	seed    *sample   // Import sample when it falls between slots

	// Validity window; infinite ends are not truncated by deactivation
	youngestValidTime float64
	oldestValidTime   float64

	strainsOnce sync.Once
}

// Fields selects the per-point outputs of GeometryData
type Fields uint8

const (
	PointsField Fields = 1 << iota
	LocationsField
	StrainRatesField
	StrainsField

	AllFields = PointsField | LocationsField | StrainRatesField | StrainsField
)

// GeometryData holds per-point outputs; unrequested fields are nil
type GeometryData struct {
	Points      []s2.Point
	Locations   []topology.Location
	StrainRates []strain.Strain // 1/My
	Strains     []strain.Strain
}

// AllGeometryData holds one entry per point slot. Entries of inactive slots
// are zero values.
type AllGeometryData struct {
	Active []bool
	GeometryData
}

// TimeRange returns the slots the span was computed over
func (s *GeometryTimeSpan) TimeRange() topology.TimeRange { return s.timeRange }

// PlateID returns the reconstruction plate used outside topologies
func (s *GeometryTimeSpan) PlateID() rotation.PlateID { return s.plateID }

// ImportTime returns the time at which the geometry was inserted
func (s *GeometryTimeSpan) ImportTime() float64 { return s.importTime }

// NumOriginalPoints returns the number of points before tessellation
func (s *GeometryTimeSpan) NumOriginalPoints() int { return s.numOriginalPoints }

// NumAllPoints returns the number of point slots after tessellation
func (s *GeometryTimeSpan) NumAllPoints() int { return len(s.interpolations) }

// Interpolations relates each point slot to the original points
func (s *GeometryTimeSpan) Interpolations() []geometry.Interpolation {
	return s.interpolations
}

// ValidTimes returns the validity window [youngest, oldest]. Ends not cut off
// by deactivation are infinite.
func (s *GeometryTimeSpan) ValidTimes() (youngest, oldest float64) {
	return s.youngestValidTime, s.oldestValidTime
}

// IsValid reports whether at least one point is active at time
func (s *GeometryTimeSpan) IsValid(time float64) bool {
	return time >= s.youngestValidTime-timeEpsilon && time <= s.oldestValidTime+timeEpsilon
}

// SampleTimes returns the times of the computed samples, oldest first. The
// import time is included when it falls between slots.
func (s *GeometryTimeSpan) SampleTimes() []float64 {
	var times []float64
	for _, smp := range s.orderedSamples() {
		times = append(times, smp.time)
	}
	return times
}

// SeedTime returns the time of the import sample: the import time clamped to
// the time range
func (s *GeometryTimeSpan) SeedTime() float64 {
	return math.Max(s.timeRange.End, math.Min(s.timeRange.Begin, s.importTime))
}

func (s *GeometryTimeSpan) orderedSamples() []*sample {
	out := make([]*sample, 0, len(s.samples)+1)
	for _, smp := range s.samples {
		if smp != nil {
			out = append(out, smp)
		}
	}
	if s.seed != nil {
		out = append(out, s.seed)
		sort.Slice(out, func(i, j int) bool { return out[i].time > out[j].time })
	}
	return out
}

// sampleAt returns the computed sample at time, interpolating between samples
// or rotating rigidly beyond the time range
func (s *GeometryTimeSpan) sampleAt(time float64, withStrains bool) (*sample, bool) {
	if !s.IsValid(time) {
		return nil, false
	}
	tr := s.timeRange
	last := tr.NumSlots() - 1
	switch {
	case time > tr.Begin+timeEpsilon:
		return rigidSample(s.edge(0), s.rotations, s.plateID, time, withStrains), true
	case time < tr.End-timeEpsilon:
		return rigidSample(s.edge(last), s.rotations, s.plateID, time, withStrains), true
	}
	if slot, ok := tr.ExactSlot(time); ok {
		return s.edge(slot), true
	}
	if s.seed != nil && math.Abs(time-s.seed.time) < timeEpsilon {
		return s.seed, true
	}

	older, younger, _ := tr.BracketingSlots(time)
	a, b := s.samples[older], s.samples[younger]
	if s.seed != nil && s.seed.time < tr.SlotTime(older) && s.seed.time > tr.SlotTime(younger) {
		if time > s.seed.time {
			b = s.seed
		} else {
			a = s.seed
		}
	}
	utils.Assert(a != nil && b != nil, "no samples either side of valid time %g", time)
	frac := (a.time - time) / (a.time - b.time)
	return interpolateSamples(a, b, frac, time, withStrains), true
}

func (s *GeometryTimeSpan) edge(slot int) *sample {
	smp := s.samples[slot]
	utils.Assert(smp != nil, "slot %d inside the validity window was not computed", slot)
	return smp
}

// ensureStrains integrates total strain forward in time from the oldest
// sample. A point starts from zero strain in the first sample it is active in.
func (s *GeometryTimeSpan) ensureStrains() {
	s.strainsOnce.Do(func() {
		ordered := s.orderedSamples()
		for k, smp := range ordered {
			smp.strains = make([]strain.Strain, len(smp.points))
			for i := range smp.points {
				if !smp.active[i] || k == 0 || !ordered[k-1].active[i] {
					continue
				}
				prev := ordered[k-1]
				smp.strains[i] = strain.Accumulate(prev.strains[i],
					prev.points[i].strainRate, smp.points[i].strainRate, prev.time-smp.time)
			}
		}
	})
}

// Geometry returns the active points at time. When too few points remain for
// the original kind the result degrades to a multipoint.
func (s *GeometryTimeSpan) Geometry(time float64) (geometry.Geometry, bool) {
	data, ok := s.GeometryData(time, PointsField)
	if !ok {
		return geometry.Geometry{}, false
	}
	g, err := geometry.New(s.kind, data.Points)
	if err != nil {
		g = geometry.Geometry{Kind: geometry.MultiPointKind, Points: data.Points}
	}
	return g, true
}

// GeometryData returns the requested fields for the active points at time,
// all in the same order
func (s *GeometryTimeSpan) GeometryData(time float64, fields Fields) (GeometryData, bool) {
	all, ok := s.AllGeometryData(time, fields)
	if !ok {
		return GeometryData{}, false
	}
	im := utils.NewIndexMap(all.Active)
	out := GeometryData{}
	if all.Points != nil {
		out.Points = utils.Compact(im, all.Points)
	}
	if all.Locations != nil {
		out.Locations = utils.Compact(im, all.Locations)
	}
	if all.StrainRates != nil {
		out.StrainRates = utils.Compact(im, all.StrainRates)
	}
	if all.Strains != nil {
		out.Strains = utils.Compact(im, all.Strains)
	}
	return out, true
}

// AllGeometryData returns the requested fields for every point slot at time
func (s *GeometryTimeSpan) AllGeometryData(time float64, fields Fields) (AllGeometryData, bool) {
	withStrains := fields&StrainsField != 0
	if withStrains {
		s.ensureStrains()
	}
	smp, ok := s.sampleAt(time, withStrains)
	if !ok {
		return AllGeometryData{}, false
	}
	n := len(smp.points)
	out := AllGeometryData{Active: make([]bool, n)}
	copy(out.Active, smp.active)
	if fields&PointsField != 0 {
		out.Points = make([]s2.Point, n)
	}
	if fields&LocationsField != 0 {
		out.Locations = make([]topology.Location, n)
	}
	if fields&StrainRatesField != 0 {
		out.StrainRates = make([]strain.Strain, n)
	}
	if fields&StrainsField != 0 {
		out.Strains = make([]strain.Strain, n)
	}
	for i := range smp.points {
		if !smp.active[i] {
			if out.Locations != nil {
				out.Locations[i] = topology.NoLocation()
			}
			continue
		}
		p := &smp.points[i]
		if out.Points != nil {
			out.Points[i] = p.position
		}
		if out.Locations != nil {
			out.Locations[i] = p.location
		}
		if out.StrainRates != nil {
			out.StrainRates[i] = p.strainRate
		}
		if out.Strains != nil {
			out.Strains[i] = smp.strains[i]
		}
	}
	return out, true
}

// ActiveMask returns which point slots are active at time
func (s *GeometryTimeSpan) ActiveMask(time float64) ([]bool, bool) {
	data, ok := s.AllGeometryData(time, 0)
	return data.Active, ok
}
