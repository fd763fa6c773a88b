// Package reconstruct advects geometries through a time-varying mosaic of
// rigid plates and deforming networks, tracking which points survive and how
// they deform.
package reconstruct

import (
	"log/slog"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/rotation"
	"github.com/notargets/gotopo/strain"
	"github.com/notargets/gotopo/topology"
	"github.com/notargets/gotopo/utils"
)

const (
	timeEpsilon = 1e-6
	cullMargin  = s1.Angle(1e-9)
)

// TopologyReconstruct holds the resolved topologies and rotations shared by
// every GeometryTimeSpan it creates. Both must stay unchanged while any span
// built from them is in use.
type TopologyReconstruct struct {
	source    topology.Source
	rotations *rotation.StageCache
	logger    *slog.Logger
}

// SpanConfig holds the per-geometry options of CreateGeometryTimeSpan
type SpanConfig struct {
	// Maximum arc between consecutive polyline/polygon points; zero disables
	// tessellation
	MaxTessellationAngle s1.Angle

	// Deactivation test; nil never deactivates points
	DeactivatePoints ActivePointPredicate

	// Interpolate network velocities with natural-neighbour rather than
	// barycentric weights
	UseNaturalNeighbour bool
}

// New builds a reconstructor. Stage rotations are memoized across all spans.
// A nil logger uses slog.Default.
func New(source topology.Source, rotations rotation.Service, logger *slog.Logger) (*TopologyReconstruct, error) {
	if source == nil {
		return nil, utils.Preconditionf("no resolved topology source")
	}
	if rotations == nil {
		return nil, utils.Preconditionf("no rotation service")
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, ok := rotations.(*rotation.StageCache)
	if !ok {
		cache = rotation.NewStageCache(rotations, rotation.DefaultStageCacheSize)
	}
	return &TopologyReconstruct{source: source, rotations: cache, logger: logger}, nil
}

// TimeRange returns the slots of the resolved topologies
func (tr *TopologyReconstruct) TimeRange() topology.TimeRange {
	return tr.source.TimeRange()
}

// Rotations returns the memoizing rotation service used by all spans
func (tr *TopologyReconstruct) Rotations() *rotation.StageCache {
	return tr.rotations
}

// CreateGeometryTimeSpan tessellates geom if requested and reconstructs it over
// the whole time range, starting from its position at importTime. Points are
// moved by plateID outside all topologies and beyond the time range.
func (tr *TopologyReconstruct) CreateGeometryTimeSpan(geom geometry.Geometry, plateID rotation.PlateID,
	importTime float64, cfg SpanConfig) (*GeometryTimeSpan, error) {
	if len(geom.Points) == 0 {
		return nil, utils.Preconditionf("geometry has no points")
	}
	if math.IsNaN(importTime) || math.IsInf(importTime, 0) {
		return nil, utils.Preconditionf("import time %g is not finite", importTime)
	}
	if cfg.MaxTessellationAngle < 0 {
		return nil, utils.Preconditionf("tessellation angle %v must not be negative", cfg.MaxTessellationAngle)
	}

	tessellated, interps := geom.Tessellate(cfg.MaxTessellationAngle)
	deactivate := cfg.DeactivatePoints
	if deactivate == nil {
		deactivate = neverDeactivate{}
	}
	timeRange := tr.source.TimeRange()
	span := &GeometryTimeSpan{
		source:            tr.source,
		rotations:         tr.rotations,
		timeRange:         timeRange,
		plateID:           plateID,
		importTime:        importTime,
		kind:              geom.Kind,
		numOriginalPoints: len(geom.Points),
		interpolations:    interps,
		naturalNeighbour:  cfg.UseNaturalNeighbour,
		deactivate:        deactivate,
		samples:           make([]*sample, timeRange.NumSlots()),
		youngestValidTime: math.Inf(-1),
		oldestValidTime:   math.Inf(1),
	}
	span.build(tessellated.Points)

	tr.logger.Debug("created geometry time span",
		"plate", plateID,
		"points", len(geom.Points),
		"tessellated", len(tessellated.Points),
		"import_time", importTime)
	if span.youngestValidTime > math.Inf(-1) || span.oldestValidTime < math.Inf(1) {
		tr.logger.Info("geometry consumed by topologies",
			"plate", plateID,
			"import_time", importTime,
			"valid_from", span.oldestValidTime,
			"valid_to", span.youngestValidTime)
	}
	return span, nil
}

// build seeds the span at the import time (clamped to the range) and sweeps
// outward, one slot at a time, in both directions
func (s *GeometryTimeSpan) build(points []s2.Point) {
	tr := s.timeRange
	seedTime := math.Max(tr.End, math.Min(tr.Begin, s.importTime))
	positions := points
	if seedTime != s.importTime {
		positions = s.rotations.StageRotation(s.plateID, s.importTime, seedTime).RotatePoints(points)
	}
	seed := s.seedSample(positions, seedTime)

	if slot, ok := tr.ExactSlot(seedTime); ok {
		s.samples[slot] = seed
		s.sweep(seed, slot+1, 1)
		s.sweep(seed, slot-1, -1)
		return
	}
	older, younger, _ := tr.BracketingSlots(seedTime)
	s.seed = seed
	s.sweep(seed, younger, 1)
	s.sweep(seed, older, -1)
}

func (s *GeometryTimeSpan) seedSample(positions []s2.Point, time float64) *sample {
	smp := newSample(time, len(positions))
	snap := s.culledSnapshot(s.timeRange.NearestSlot(time), positions)
	for i, p := range positions {
		loc := snap.Locate(p, topology.NoLocation())
		smp.active[i] = true
		smp.points[i] = pointState{
			position:   p,
			location:   loc,
			strainRate: s.strainRate(p, loc, time),
		}
	}
	smp.numActive = len(positions)
	return smp
}

// sweep steps from prev through slots firstSlot, firstSlot+dir, ... until the
// range ends or every point has been deactivated
func (s *GeometryTimeSpan) sweep(prev *sample, firstSlot, dir int) {
	for slot := firstSlot; slot >= 0 && slot < len(s.samples); slot += dir {
		next := s.step(prev, slot)
		if next.numActive == 0 {
			if dir > 0 {
				s.youngestValidTime = prev.time
			} else {
				s.oldestValidTime = prev.time
			}
			return
		}
		s.samples[slot] = next
		prev = next
	}
}

// step advects the active points of prev to the time of slot using the
// topologies they were located in at prev, then locates them again and applies
// the deactivation test
func (s *GeometryTimeSpan) step(prev *sample, slot int) *sample {
	fromTime, toTime := prev.time, s.timeRange.SlotTime(slot)
	next := newSample(toTime, len(prev.points))
	moved := make([]s2.Point, 0, prev.numActive)
	for i, ps := range prev.points {
		if !prev.active[i] {
			continue
		}
		next.points[i].position = s.advect(ps.position, ps.location, fromTime, toTime)
		moved = append(moved, next.points[i].position)
	}

	snap := s.culledSnapshot(slot, moved)
	for i, ps := range prev.points {
		if !prev.active[i] {
			continue
		}
		pt := &next.points[i]
		pt.location = snap.Locate(pt.position, ps.location)
		if !s.deactivate.IsActive(PointTransition{
			PrevTime:     fromTime,
			CurrTime:     toTime,
			PrevPoint:    ps.position,
			CurrPoint:    pt.position,
			PrevLocation: ps.location,
			CurrLocation: pt.location,
			PlateID:      s.plateID,
			Rotations:    s.rotations,
		}) {
			*pt = pointState{}
			continue
		}
		pt.strainRate = s.strainRate(pt.position, pt.location, toTime)
		next.active[i] = true
		next.numActive++
	}
	return next
}

// advect moves p from fromTime to toTime. Rigid motion uses the stage rotation
// directly; deforming networks advance along the interpolated velocity.
func (s *GeometryTimeSpan) advect(p s2.Point, loc topology.Location, fromTime, toTime float64) s2.Point {
	if loc.Kind == topology.InNetwork && !loc.InRigidBlock() {
		v := loc.Network.Velocity(p, loc, s.rotations, fromTime, toTime, s.naturalNeighbour)
		return geometry.Advect(p, v, fromTime-toTime)
	}
	plateID := s.plateID
	if id, ok := loc.PlateID(); ok {
		plateID = id
	}
	return s.rotations.StageRotation(plateID, fromTime, toTime).Rotate(p)
}

// strainRate is the rate of deformation at time over the preceding increment
func (s *GeometryTimeSpan) strainRate(p s2.Point, loc topology.Location, time float64) strain.Strain {
	if loc.Kind != topology.InNetwork {
		return strain.Zero()
	}
	return loc.Network.StrainRate(p, loc, s.rotations, time+s.timeRange.Increment, time)
}

func (s *GeometryTimeSpan) culledSnapshot(slot int, points []s2.Point) topology.Snapshot {
	region := geometry.CapBound(points)
	return s.source.Snapshot(slot).Cull(region.Expanded(cullMargin))
}
