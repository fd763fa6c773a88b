package topology

import (
	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/utils"
)

// Snapshot holds the topologies resolved at one time slot
type Snapshot struct {
	Time       float64
	Boundaries []*ResolvedBoundary
	Networks   []*ResolvedNetwork
}

// Source supplies resolved topologies per time slot. Implementations must be
// immutable for the lifetime of any reconstruction built against them.
type Source interface {
	TimeRange() TimeRange
	Snapshot(slot int) Snapshot
}

// TimeSpan is a precomputed Source: one Snapshot per slot
type TimeSpan struct {
	timeRange TimeRange
	snapshots []Snapshot
}

var _ Source = (*TimeSpan)(nil)

// NewTimeSpan takes one snapshot per slot of timeRange
func NewTimeSpan(timeRange TimeRange, snapshots []Snapshot) (*TimeSpan, error) {
	if len(snapshots) != timeRange.NumSlots() {
		return nil, utils.Preconditionf("got %d snapshots for %d time slots", len(snapshots), timeRange.NumSlots())
	}
	for i := range snapshots {
		snapshots[i].Time = timeRange.SlotTime(i)
	}
	return &TimeSpan{timeRange: timeRange, snapshots: snapshots}, nil
}

// TimeRange returns the slots covered
func (ts *TimeSpan) TimeRange() TimeRange {
	return ts.timeRange
}

// Snapshot returns the topologies at slot
func (ts *TimeSpan) Snapshot(slot int) Snapshot {
	utils.Assert(slot >= 0 && slot < len(ts.snapshots), "slot %d outside [0, %d)", slot, len(ts.snapshots))
	return ts.snapshots[slot]
}

// Cull returns the topologies whose bounds intersect region
func (s Snapshot) Cull(region s2.Cap) Snapshot {
	out := Snapshot{Time: s.Time}
	for _, b := range s.Boundaries {
		if b.CapBound().Intersects(region) {
			out.Boundaries = append(out.Boundaries, b)
		}
	}
	for _, n := range s.Networks {
		if n.CapBound().Intersects(region) {
			out.Networks = append(out.Networks, n)
		}
	}
	return out
}

// Locate finds the topology containing p. Networks take precedence over rigid
// plates. The topology matching hint, if any, is tried first within each kind.
func (s Snapshot) Locate(p s2.Point, hint Location) Location {
	var (
		hintNetwork  *ResolvedNetwork
		hintBoundary *ResolvedBoundary
	)
	if found, ok := s.Find(hint); ok {
		hintNetwork, hintBoundary = found.Network, found.Boundary
	}
	if hintNetwork != nil {
		if loc, ok := hintNetwork.Locate(p); ok {
			return loc
		}
	}
	for _, n := range s.Networks {
		if n == hintNetwork {
			continue
		}
		if loc, ok := n.Locate(p); ok {
			return loc
		}
	}
	if hintBoundary != nil && hintBoundary.ContainsPoint(p) {
		return LocatedInBoundary(hintBoundary)
	}
	for _, b := range s.Boundaries {
		if b != hintBoundary && b.ContainsPoint(p) {
			return LocatedInBoundary(b)
		}
	}
	return NoLocation()
}

// Find returns the topology of this snapshot matching loc's plate and name,
// giving the counterpart of a location resolved at another time
func (s Snapshot) Find(loc Location) (Location, bool) {
	switch loc.Kind {
	case InBoundary:
		for _, b := range s.Boundaries {
			if b.PlateID == loc.Boundary.PlateID && b.Name == loc.Boundary.Name {
				return LocatedInBoundary(b), true
			}
		}
	case InNetwork:
		for _, n := range s.Networks {
			if n.PlateID == loc.Network.PlateID && n.Name == loc.Network.Name {
				return Location{Kind: InNetwork, Network: n, Block: -1, Triangle: -1}, true
			}
		}
	}
	return NoLocation(), false
}
