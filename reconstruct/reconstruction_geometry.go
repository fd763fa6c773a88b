package reconstruct

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/rotation"
)

// ReconstructionGeometry is one of Rigid, TopologyReconstructed or
// VirtualGeomagneticPole
type ReconstructionGeometry interface {
	ReconstructionTime() float64
	ReconstructionPlateID() rotation.PlateID

	isReconstructionGeometry()
}

// Rigid is a present-day geometry rotated by its plate to a reconstruction time
type Rigid struct {
	PlateID       rotation.PlateID
	Time          float64
	Present       geometry.Geometry
	Reconstructed geometry.Geometry
}

// TopologyReconstructed is a geometry advected through topologies, queried at Time
type TopologyReconstructed struct {
	Span *GeometryTimeSpan
	Time float64
}

// VirtualGeomagneticPole is a palaeomagnetic pole carried by the plate of its
// sampling site
type VirtualGeomagneticPole struct {
	PlateID rotation.PlateID
	Time    float64
	Pole    s2.Point
	Site    s2.Point
	A95     s1.Angle // 95% confidence radius
}

func (Rigid) isReconstructionGeometry()                  {}
func (TopologyReconstructed) isReconstructionGeometry()  {}
func (VirtualGeomagneticPole) isReconstructionGeometry() {}

func (r Rigid) ReconstructionTime() float64                  { return r.Time }
func (r TopologyReconstructed) ReconstructionTime() float64  { return r.Time }
func (v VirtualGeomagneticPole) ReconstructionTime() float64 { return v.Time }

func (r Rigid) ReconstructionPlateID() rotation.PlateID                  { return r.PlateID }
func (r TopologyReconstructed) ReconstructionPlateID() rotation.PlateID  { return r.Span.PlateID() }
func (v VirtualGeomagneticPole) ReconstructionPlateID() rotation.PlateID { return v.PlateID }

// ReconstructRigid rotates present to time with the total rotation of plateID
func ReconstructRigid(rotations rotation.Service, plateID rotation.PlateID, present geometry.Geometry,
	time float64) Rigid {
	rot := rotations.TotalRotation(plateID, time)
	return Rigid{
		PlateID:       plateID,
		Time:          time,
		Present:       present,
		Reconstructed: geometry.Geometry{Kind: present.Kind, Points: rot.RotatePoints(present.Points)},
	}
}

// ReconstructPole rotates a pole and its site, given in present-day
// coordinates, to time
func ReconstructPole(rotations rotation.Service, plateID rotation.PlateID, pole, site s2.Point,
	a95 s1.Angle, time float64) VirtualGeomagneticPole {
	rot := rotations.TotalRotation(plateID, time)
	return VirtualGeomagneticPole{
		PlateID: plateID,
		Time:    time,
		Pole:    rot.Rotate(pole),
		Site:    rot.Rotate(site),
		A95:     a95,
	}
}

// Points returns the reconstructed points of any reconstruction geometry, or
// false when a topology-reconstructed geometry is not valid at its time
func Points(rg ReconstructionGeometry) ([]s2.Point, bool) {
	switch g := rg.(type) {
	case Rigid:
		return g.Reconstructed.Points, true
	case TopologyReconstructed:
		geom, ok := g.Span.Geometry(g.Time)
		return geom.Points, ok
	case VirtualGeomagneticPole:
		return []s2.Point{g.Pole}, true
	}
	return nil, false
}
