package topology

import (
	"fmt"

	"github.com/notargets/gotopo/rotation"
)

// LocationKind says what, if anything, contains a point
type LocationKind uint8

const (
	NotLocated LocationKind = iota
	InBoundary
	InNetwork
)

// Location records which resolved boundary or network (and which part of the
// network) contains a point. Boundaries and networks are referenced, not owned;
// they belong to the resolved-topology time span.
type Location struct {
	Kind     LocationKind
	Boundary *ResolvedBoundary
	Network  *ResolvedNetwork

	// Network sub-region: index into Network.RigidBlocks (or -1), and the
	// containing triangle with its barycentric weights (when not in a block)
	Block    int
	Triangle int
	Weights  [3]float64
}

// NoLocation returns the location of a point outside all topologies
func NoLocation() Location {
	return Location{Kind: NotLocated, Block: -1, Triangle: -1}
}

// LocatedInBoundary returns the location of a point inside a rigid plate
func LocatedInBoundary(b *ResolvedBoundary) Location {
	return Location{Kind: InBoundary, Boundary: b, Block: -1, Triangle: -1}
}

// IsLocated reports whether any topology contains the point
func (l Location) IsLocated() bool {
	return l.Kind != NotLocated
}

// InRigidBlock reports whether the point is in a rigid interior block of a network
func (l Location) InRigidBlock() bool {
	return l.Kind == InNetwork && l.Block >= 0
}

// PlateID returns the plate that moves the point rigidly, or the network's own
// plate ID for deforming locations
func (l Location) PlateID() (rotation.PlateID, bool) {
	switch l.Kind {
	case InBoundary:
		return l.Boundary.PlateID, true
	case InNetwork:
		if l.Block >= 0 {
			return l.Network.RigidBlocks[l.Block].PlateID, true
		}
		return l.Network.PlateID, true
	}
	return 0, false
}

// SameTopology reports whether two locations refer to the same topological
// plate or network (possibly resolved at different times)
func (l Location) SameTopology(o Location) bool {
	if l.Kind != o.Kind {
		return false
	}
	switch l.Kind {
	case InBoundary:
		return l.Boundary.PlateID == o.Boundary.PlateID && l.Boundary.Name == o.Boundary.Name
	case InNetwork:
		return l.Network.PlateID == o.Network.PlateID && l.Network.Name == o.Network.Name
	}
	return true
}

func (l Location) String() string {
	switch l.Kind {
	case InBoundary:
		return fmt.Sprintf("plate %d (%s)", l.Boundary.PlateID, l.Boundary.Name)
	case InNetwork:
		if l.Block >= 0 {
			return fmt.Sprintf("network %s block %d", l.Network.Name, l.Network.RigidBlocks[l.Block].PlateID)
		}
		return fmt.Sprintf("network %s triangle %d", l.Network.Name, l.Triangle)
	}
	return "not located"
}
