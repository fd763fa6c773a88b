package rotation

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/utils"
)

// Pole is one total reconstruction pole: at Time (Ma) the moving plate is
// rotated by Angle degrees about (Lat, Lon) relative to the fixed plate
type Pole struct {
	Time  float64
	Lat   float64
	Lon   float64
	Angle float64
}

// Sequence is the time-ordered list of poles of one moving plate relative to
// its fixed plate
type Sequence struct {
	MovingPlate PlateID
	FixedPlate  PlateID
	Poles       []Pole
}

// Hierarchy is a rotation tree: every moving plate has one sequence relative to
// its parent, and rotations relative to the anchor plate are composed up the tree
type Hierarchy struct {
	Anchor PlateID

	sequences map[PlateID]*sequence
}

type sequence struct {
	fixed     PlateID
	times     []float64
	rotations []geometry.FiniteRotation
}

var _ Service = (*Hierarchy)(nil)

// NewHierarchy validates the sequences and builds the rotation tree
func NewHierarchy(anchor PlateID, sequences []Sequence) (*Hierarchy, error) {
	h := &Hierarchy{
		Anchor:    anchor,
		sequences: make(map[PlateID]*sequence, len(sequences)),
	}
	for _, seq := range sequences {
		if len(seq.Poles) == 0 {
			return nil, utils.Preconditionf("plate %d has no poles", seq.MovingPlate)
		}
		if seq.MovingPlate == seq.FixedPlate {
			return nil, utils.Preconditionf("plate %d is fixed relative to itself", seq.MovingPlate)
		}
		if _, dup := h.sequences[seq.MovingPlate]; dup {
			return nil, utils.Preconditionf("plate %d has more than one sequence", seq.MovingPlate)
		}
		poles := make([]Pole, len(seq.Poles))
		copy(poles, seq.Poles)
		sort.Slice(poles, func(i, j int) bool { return poles[i].Time < poles[j].Time })

		s := &sequence{
			fixed:     seq.FixedPlate,
			times:     make([]float64, len(poles)),
			rotations: make([]geometry.FiniteRotation, len(poles)),
		}
		for i, p := range poles {
			if i > 0 && p.Time == poles[i-1].Time {
				return nil, utils.Preconditionf("plate %d has two poles at %g Ma", seq.MovingPlate, p.Time)
			}
			s.times[i] = p.Time
			s.rotations[i] = geometry.FromEulerPole(p.Lat, p.Lon, p.Angle)
		}
		h.sequences[seq.MovingPlate] = s
	}
	if err := h.checkAcyclic(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Hierarchy) checkAcyclic() error {
	for plate := range h.sequences {
		seen := map[PlateID]bool{plate: true}
		for p := plate; ; {
			s, ok := h.sequences[p]
			if !ok || s.fixed == h.Anchor {
				break
			}
			if seen[s.fixed] {
				return utils.Preconditionf("rotation tree has a cycle through plate %d", plate)
			}
			seen[s.fixed] = true
			p = s.fixed
		}
	}
	return nil
}

// Plates returns the moving plate IDs in ascending order
func (h *Hierarchy) Plates() []PlateID {
	ids := make([]PlateID, 0, len(h.sequences))
	for id := range h.sequences {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// relative interpolates the rotation of a plate relative to its fixed plate.
// Times older than the sequence clamp to the oldest pole. Present day and
// future times are the identity.
func (s *sequence) relative(time float64) geometry.FiniteRotation {
	if time <= 0 {
		return geometry.Identity()
	}
	n := len(s.times)
	idx := sort.SearchFloat64s(s.times, time)
	switch {
	case idx < n && s.times[idx] == time:
		return s.rotations[idx]
	case idx == 0:
		// Before the youngest pole: blend from the identity at present day
		if s.times[0] > 0 {
			return geometry.Slerp(geometry.Identity(), s.rotations[0], time/s.times[0])
		}
		return s.rotations[0]
	case idx == n:
		return s.rotations[n-1]
	}
	t0, t1 := s.times[idx-1], s.times[idx]
	return geometry.Slerp(s.rotations[idx-1], s.rotations[idx], (time-t0)/(t1-t0))
}

// TotalRotation composes relative rotations from plateID up to the anchor.
// Plates missing from the tree do not move.
func (h *Hierarchy) TotalRotation(plateID PlateID, time float64) geometry.FiniteRotation {
	total := geometry.Identity()
	for p := plateID; p != h.Anchor; {
		s, ok := h.sequences[p]
		if !ok {
			break
		}
		total = geometry.Compose(s.relative(time), total)
		p = s.fixed
	}
	return total
}

// StageRotation returns R(to)·R(from)⁻¹
func (h *Hierarchy) StageRotation(plateID PlateID, fromTime, toTime float64) geometry.FiniteRotation {
	if fromTime == toTime {
		return geometry.Identity()
	}
	return StageFromTotals(h, plateID, fromTime, toTime)
}

func (p Pole) String() string {
	return fmt.Sprintf("%.2f Ma: (%.4f, %.4f) %.4f°", p.Time, p.Lat, p.Lon, math.Mod(p.Angle, 360))
}
