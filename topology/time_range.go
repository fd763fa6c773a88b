package topology

import (
	"math"

	"github.com/notargets/gotopo/utils"
)

const timeEpsilon = 1e-6

// TimeRange is a uniform sequence of time slots running from Begin (oldest, Ma)
// down to End (youngest) in steps of Increment My. Slot 0 is Begin.
type TimeRange struct {
	Begin     float64
	End       float64
	Increment float64

	numSlots int
}

// NewTimeRange validates the range. If the range is not a whole number of
// increments End is moved forward (older) to the last whole slot.
func NewTimeRange(begin, end, increment float64) (TimeRange, error) {
	if !(increment > 0) {
		return TimeRange{}, utils.Preconditionf("time increment %g must be positive", increment)
	}
	if !(begin > end) {
		return TimeRange{}, utils.Preconditionf("begin time %g must be older than end time %g", begin, end)
	}
	numIntervals := math.Floor((begin-end)/increment + timeEpsilon)
	if numIntervals < 1 {
		return TimeRange{}, utils.Preconditionf("time range [%g, %g] is shorter than one increment %g", begin, end, increment)
	}
	return TimeRange{
		Begin:     begin,
		End:       begin - numIntervals*increment,
		Increment: increment,
		numSlots:  int(numIntervals) + 1,
	}, nil
}

// NumSlots returns the number of time slots including both ends
func (tr TimeRange) NumSlots() int {
	return tr.numSlots
}

// SlotTime returns the time of slot i
func (tr TimeRange) SlotTime(i int) float64 {
	return tr.Begin - float64(i)*tr.Increment
}

// SlotPosition returns the fractional slot index of time. It may lie outside
// [0, NumSlots-1].
func (tr TimeRange) SlotPosition(time float64) float64 {
	return (tr.Begin - time) / tr.Increment
}

// Contains reports whether time lies within [End, Begin]
func (tr TimeRange) Contains(time float64) bool {
	pos := tr.SlotPosition(time)
	return pos >= -timeEpsilon && pos <= float64(tr.numSlots-1)+timeEpsilon
}

// ExactSlot returns the slot whose time matches time to within a small tolerance
func (tr TimeRange) ExactSlot(time float64) (int, bool) {
	pos := tr.SlotPosition(time)
	slot := math.Round(pos)
	if math.Abs(pos-slot) > timeEpsilon || slot < 0 || int(slot) >= tr.numSlots {
		return 0, false
	}
	return int(slot), true
}

// NearestSlot returns the slot nearest to time, clamped to the range
func (tr TimeRange) NearestSlot(time float64) int {
	slot := int(math.Round(tr.SlotPosition(time)))
	if slot < 0 {
		return 0
	}
	if slot >= tr.numSlots {
		return tr.numSlots - 1
	}
	return slot
}

// BracketingSlots returns the slots either side of time (older, younger) and
// the interpolation fraction from older to younger. time must be in range.
func (tr TimeRange) BracketingSlots(time float64) (older, younger int, frac float64) {
	pos := tr.SlotPosition(time)
	older = int(math.Floor(pos))
	if older < 0 {
		older = 0
	}
	if older >= tr.numSlots-1 {
		older = tr.numSlots - 2
	}
	younger = older + 1
	frac = pos - float64(older)
	frac = math.Max(0, math.Min(1, frac))
	return
}
