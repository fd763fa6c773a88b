package utils

import (
	"fmt"
)

// IndexMap relates the full, fixed-size array of point slots of a geometry to
// the compacted array holding only the active slots.
type IndexMap struct {
	NumAll    int // Total slots (active and inactive)
	NumActive int // Active slots

	AllToActive []int // [slot] → compacted index, -1 if inactive
	ActiveToAll []int // [compacted index] → slot
}

// NewIndexMap builds the mapping from an active mask
func NewIndexMap(active []bool) *IndexMap {
	im := &IndexMap{
		NumAll:      len(active),
		AllToActive: make([]int, len(active)),
		ActiveToAll: make([]int, 0, len(active)),
	}
	for slot, a := range active {
		if !a {
			im.AllToActive[slot] = -1
			continue
		}
		im.AllToActive[slot] = len(im.ActiveToAll)
		im.ActiveToAll = append(im.ActiveToAll, slot)
	}
	im.NumActive = len(im.ActiveToAll)
	return im
}

// Compact gathers the active entries of values (one per slot) in slot order
func Compact[T any](im *IndexMap, values []T) []T {
	out := make([]T, im.NumActive)
	for i, slot := range im.ActiveToAll {
		out[i] = values[slot]
	}
	return out
}

// Verify checks that the two directions of the mapping agree
func (im *IndexMap) Verify() error {
	if len(im.AllToActive) != im.NumAll {
		return fmt.Errorf("AllToActive length %d does not match NumAll=%d", len(im.AllToActive), im.NumAll)
	}
	if len(im.ActiveToAll) != im.NumActive {
		return fmt.Errorf("ActiveToAll length %d does not match NumActive=%d", len(im.ActiveToAll), im.NumActive)
	}
	count := 0
	for slot, idx := range im.AllToActive {
		if idx < 0 {
			continue
		}
		count++
		if idx >= im.NumActive || im.ActiveToAll[idx] != slot {
			return fmt.Errorf("slot %d maps to compacted index %d which does not map back", slot, idx)
		}
	}
	if count != im.NumActive {
		return fmt.Errorf("conservation error: %d active slots != NumActive %d", count, im.NumActive)
	}
	return nil
}
