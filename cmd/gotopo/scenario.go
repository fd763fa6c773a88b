package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/notargets/gotopo/coverage"
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/reconstruct"
	"github.com/notargets/gotopo/rotation"
	"github.com/notargets/gotopo/topology"
	"github.com/notargets/gotopo/utils"
	"gopkg.in/yaml.v3"
)

// Scenario is the YAML document describing one reconstruction: the rotation
// model, the topologies resolved from it and the features to carry through
type Scenario struct {
	TimeRange    TimeRangeDoc     `yaml:"time-range"`
	Anchor       uint32           `yaml:"anchor"`
	Rotations    []SequenceDoc    `yaml:"rotations"`
	Plates       []PlateDoc       `yaml:"plates"`
	Networks     []NetworkDoc     `yaml:"networks"`
	Deactivation *DeactivationDoc `yaml:"deactivation"`
	Features     []FeatureDoc     `yaml:"features"`
	Times        []float64        `yaml:"times"` // Default report times
}

type TimeRangeDoc struct {
	Begin     float64 `yaml:"begin"`
	End       float64 `yaml:"end"`
	Increment float64 `yaml:"increment"`
}

type PoleDoc struct {
	Time  float64 `yaml:"time"`
	Lat   float64 `yaml:"lat"`
	Lon   float64 `yaml:"lon"`
	Angle float64 `yaml:"angle"`
}

type SequenceDoc struct {
	Moving uint32    `yaml:"moving"`
	Fixed  uint32    `yaml:"fixed"`
	Poles  []PoleDoc `yaml:"poles"`
}

type PlateDoc struct {
	PlateID   uint32       `yaml:"plate-id"`
	Name      string       `yaml:"name"`
	Vertices  [][2]float64 `yaml:"vertices"` // (lat, lon) degrees
	ValidTime [2]float64   `yaml:"valid-time"`
}

type NetworkVertexDoc struct {
	Lat     float64 `yaml:"lat"`
	Lon     float64 `yaml:"lon"`
	PlateID uint32  `yaml:"plate-id"`
}

type BlockDoc struct {
	PlateID  uint32       `yaml:"plate-id"`
	Vertices [][2]float64 `yaml:"vertices"`
}

type NetworkDoc struct {
	PlateID   uint32             `yaml:"plate-id"`
	Name      string             `yaml:"name"`
	Vertices  []NetworkVertexDoc `yaml:"vertices"`
	Triangles [][3]int           `yaml:"triangles"`
	Outline   []int              `yaml:"outline"` // Derived from the triangles when empty
	Blocks    []BlockDoc         `yaml:"blocks"`
	ValidTime [2]float64         `yaml:"valid-time"`
}

type DeactivationDoc struct {
	ThresholdVelocityDelta         *float64 `yaml:"threshold-velocity-delta"`
	ThresholdDistanceToBoundary    *float64 `yaml:"threshold-distance-to-boundary"`
	DeactivatePointsOutsideNetwork bool     `yaml:"deactivate-points-outside-network"`
}

type FeatureDoc struct {
	Name              string               `yaml:"name"`
	Kind              string               `yaml:"kind"`
	Points            [][2]float64         `yaml:"points"`
	PlateID           uint32               `yaml:"plate-id"`
	ImportTime        float64              `yaml:"import-time"`
	TessellateDegrees float64              `yaml:"tessellate-degrees"`
	Deactivate        bool                 `yaml:"deactivate"`
	Scalars           map[string][]float64 `yaml:"scalars"`
}

// Model is a scenario resolved into library types
type Model struct {
	Rotations   *rotation.Hierarchy
	Reconstruct *reconstruct.TopologyReconstruct
	Features    []reconstruct.Feature
	Coverages   coverage.MapExtractor
	Times       []float64
}

// LoadScenario reads and decodes a scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario document
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &s, nil
}

func parseKind(name string) (geometry.Kind, error) {
	for _, k := range []geometry.Kind{geometry.PointKind, geometry.MultiPointKind,
		geometry.PolylineKind, geometry.PolygonKind} {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, utils.Preconditionf("unknown geometry kind %q", name)
}

func latLonPoints(latLons [][2]float64) []s2.Point {
	out := make([]s2.Point, len(latLons))
	for i, ll := range latLons {
		out[i] = geometry.PointFromLatLon(ll[0], ll[1])
	}
	return out
}

// Build resolves the topologies and features. naturalNeighbour selects
// natural-neighbour interpolation inside networks for every feature.
func (s *Scenario) Build(logger *slog.Logger, naturalNeighbour bool) (*Model, error) {
	tr, err := topology.NewTimeRange(s.TimeRange.Begin, s.TimeRange.End, s.TimeRange.Increment)
	if err != nil {
		return nil, err
	}

	sequences := make([]rotation.Sequence, len(s.Rotations))
	for i, sd := range s.Rotations {
		poles := make([]rotation.Pole, len(sd.Poles))
		for j, p := range sd.Poles {
			poles[j] = rotation.Pole{Time: p.Time, Lat: p.Lat, Lon: p.Lon, Angle: p.Angle}
		}
		sequences[i] = rotation.Sequence{
			MovingPlate: rotation.PlateID(sd.Moving),
			FixedPlate:  rotation.PlateID(sd.Fixed),
			Poles:       poles,
		}
	}
	rots, err := rotation.NewHierarchy(rotation.PlateID(s.Anchor), sequences)
	if err != nil {
		return nil, err
	}

	plates := make([]topology.PlateFeature, len(s.Plates))
	for i, pd := range s.Plates {
		plates[i] = topology.PlateFeature{
			PlateID:   rotation.PlateID(pd.PlateID),
			Name:      pd.Name,
			Vertices:  latLonPoints(pd.Vertices),
			ValidTime: topology.ValidTime{Begin: pd.ValidTime[0], End: pd.ValidTime[1]},
		}
	}
	networks := make([]topology.NetworkFeature, len(s.Networks))
	for i, nd := range s.Networks {
		nf, err := nd.feature()
		if err != nil {
			return nil, err
		}
		networks[i] = nf
	}
	source, err := topology.Resolve(tr, rots, plates, networks)
	if err != nil {
		return nil, err
	}
	recon, err := reconstruct.New(source, rots, logger)
	if err != nil {
		return nil, err
	}

	deactivate, err := s.deactivation()
	if err != nil {
		return nil, err
	}
	m := &Model{
		Rotations:   rots,
		Reconstruct: recon,
		Coverages:   make(coverage.MapExtractor),
		Times:       s.Times,
	}
	if len(m.Times) == 0 {
		m.Times = []float64{tr.End, tr.Begin}
	}
	for _, fd := range s.Features {
		kind, err := parseKind(fd.Kind)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", fd.Name, err)
		}
		geom, err := geometry.FromLatLons(kind, fd.Points)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", fd.Name, err)
		}
		cfg := reconstruct.SpanConfig{
			MaxTessellationAngle: s1.Angle(fd.TessellateDegrees) * s1.Degree,
			UseNaturalNeighbour:  naturalNeighbour,
		}
		if fd.Deactivate {
			cfg.DeactivatePoints = deactivate
		}
		m.Features = append(m.Features, reconstruct.Feature{
			Name:       fd.Name,
			Geometry:   geom,
			PlateID:    rotation.PlateID(fd.PlateID),
			ImportTime: fd.ImportTime,
			Config:     cfg,
		})
		if len(fd.Scalars) > 0 {
			scalars := make(coverage.Coverage, len(fd.Scalars))
			for name, values := range fd.Scalars {
				scalars[coverage.ScalarType(name)] = values
			}
			m.Coverages[fd.Name] = []coverage.Property{{
				DomainProperty: "points",
				RangeProperty:  "scalars",
				Domain:         geom,
				Scalars:        scalars,
			}}
		}
	}
	return m, nil
}

func (nd NetworkDoc) feature() (topology.NetworkFeature, error) {
	verts := make([]topology.NetworkVertex, len(nd.Vertices))
	for i, v := range nd.Vertices {
		verts[i] = topology.NetworkVertex{
			Point:   geometry.PointFromLatLon(v.Lat, v.Lon),
			PlateID: rotation.PlateID(v.PlateID),
		}
	}
	outline := nd.Outline
	if len(outline) == 0 {
		var err error
		if outline, err = topology.OutlineFromTriangles(nd.Triangles); err != nil {
			return topology.NetworkFeature{}, fmt.Errorf("network %s: %w", nd.Name, err)
		}
	}
	blocks := make([]topology.RigidBlock, len(nd.Blocks))
	for i, b := range nd.Blocks {
		blocks[i] = topology.RigidBlock{PlateID: rotation.PlateID(b.PlateID), Vertices: latLonPoints(b.Vertices)}
	}
	return topology.NetworkFeature{
		PlateID:   rotation.PlateID(nd.PlateID),
		Name:      nd.Name,
		Vertices:  verts,
		Outline:   outline,
		Triangles: nd.Triangles,
		Blocks:    blocks,
		ValidTime: topology.ValidTime{Begin: nd.ValidTime[0], End: nd.ValidTime[1]},
	}, nil
}

func (s *Scenario) deactivation() (*reconstruct.Deactivation, error) {
	params := reconstruct.DefaultDeactivationParams()
	if d := s.Deactivation; d != nil {
		if d.ThresholdVelocityDelta != nil {
			params.ThresholdVelocityDelta = *d.ThresholdVelocityDelta
		}
		if d.ThresholdDistanceToBoundary != nil {
			params.ThresholdDistanceToBoundary = *d.ThresholdDistanceToBoundary
		}
		params.DeactivatePointsOutsideNetwork = d.DeactivatePointsOutsideNetwork
	}
	return reconstruct.NewDeactivation(params)
}
