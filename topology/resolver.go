package topology

import (
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/rotation"
	"github.com/notargets/gotopo/utils"
)

// ValidTime is the period [End, Begin] (Ma) over which a topology exists. The
// zero value means all time.
type ValidTime struct {
	Begin float64
	End   float64
}

// Contains reports whether time falls within the period
func (vt ValidTime) Contains(time float64) bool {
	if vt.Begin == 0 && vt.End == 0 {
		return true
	}
	return time <= vt.Begin+timeEpsilon && time >= vt.End-timeEpsilon
}

// PlateFeature is a rigid plate polygon in present-day coordinates
type PlateFeature struct {
	PlateID   rotation.PlateID
	Name      string
	Vertices  []s2.Point
	ValidTime ValidTime
}

// NetworkFeature is a deforming network in present-day coordinates. Every
// vertex moves with its own plate, so the triangulation deforms through time.
type NetworkFeature struct {
	PlateID   rotation.PlateID
	Name      string
	Vertices  []NetworkVertex
	Outline   []int // Ring of indices into Vertices
	Triangles [][3]int
	Blocks    []RigidBlock
	ValidTime ValidTime
}

// Resolve rotates every plate and network to each slot time of timeRange,
// dropping topologies outside their valid time
func Resolve(timeRange TimeRange, rotations rotation.Service,
	plates []PlateFeature, networks []NetworkFeature) (*TimeSpan, error) {
	for _, nf := range networks {
		for _, vi := range nf.Outline {
			if vi < 0 || vi >= len(nf.Vertices) {
				return nil, utils.Preconditionf("network %s outline references vertex %d of %d",
					nf.Name, vi, len(nf.Vertices))
			}
		}
	}

	snapshots := make([]Snapshot, timeRange.NumSlots())
	for slot := range snapshots {
		time := timeRange.SlotTime(slot)
		snap := Snapshot{Time: time}
		for _, pf := range plates {
			if !pf.ValidTime.Contains(time) {
				continue
			}
			rot := rotations.TotalRotation(pf.PlateID, time)
			b, err := NewResolvedBoundary(pf.PlateID, pf.Name, rot.RotatePoints(pf.Vertices))
			if err != nil {
				return nil, fmt.Errorf("resolving plate %s at %g Ma: %w", pf.Name, time, err)
			}
			snap.Boundaries = append(snap.Boundaries, b)
		}
		for _, nf := range networks {
			if !nf.ValidTime.Contains(time) {
				continue
			}
			n, err := resolveNetwork(nf, rotations, time)
			if err != nil {
				return nil, fmt.Errorf("resolving network %s at %g Ma: %w", nf.Name, time, err)
			}
			snap.Networks = append(snap.Networks, n)
		}
		snapshots[slot] = snap
	}
	return NewTimeSpan(timeRange, snapshots)
}

func resolveNetwork(nf NetworkFeature, rotations rotation.Service, time float64) (*ResolvedNetwork, error) {
	verts := make([]NetworkVertex, len(nf.Vertices))
	for i, v := range nf.Vertices {
		verts[i] = NetworkVertex{
			Point:   rotations.TotalRotation(v.PlateID, time).Rotate(v.Point),
			PlateID: v.PlateID,
		}
	}
	outline := make([]s2.Point, len(nf.Outline))
	for i, vi := range nf.Outline {
		outline[i] = verts[vi].Point
	}
	blocks := make([]RigidBlock, len(nf.Blocks))
	for i, blk := range nf.Blocks {
		blocks[i] = RigidBlock{
			PlateID:  blk.PlateID,
			Vertices: rotations.TotalRotation(blk.PlateID, time).RotatePoints(blk.Vertices),
		}
	}
	return NewResolvedNetwork(nf.PlateID, nf.Name, outline, verts, nf.Triangles, blocks)
}

// OutlineFromTriangles returns the boundary ring of a triangulation: the
// edges used by exactly one triangle, chained head to tail
func OutlineFromTriangles(triangles [][3]int) ([]int, error) {
	type edge struct{ a, b int }
	count := make(map[edge]int)
	directed := make(map[int]int)
	for _, tri := range triangles {
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			key := edge{min(a, b), max(a, b)}
			count[key]++
		}
	}
	for _, tri := range triangles {
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			key := edge{min(a, b), max(a, b)}
			if count[key] == 1 {
				directed[a] = b
			}
		}
	}
	if len(directed) < 3 {
		return nil, utils.Preconditionf("triangulation has no closed outline")
	}
	start := -1
	for a := range directed {
		if start < 0 || a < start {
			start = a
		}
	}
	ring := []int{start}
	for next := directed[start]; next != start; next = directed[next] {
		if len(ring) > len(directed) {
			return nil, utils.Preconditionf("triangulation outline is not a single ring")
		}
		ring = append(ring, next)
	}
	if len(ring) != len(directed) {
		return nil, utils.Preconditionf("triangulation outline is not a single ring")
	}
	return ring, nil
}
