package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/notargets/gotopo/coverage"
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/reconstruct"
	"github.com/notargets/gotopo/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadRift(t *testing.T) *Model {
	t.Helper()
	scenario, err := LoadScenario("testdata/rift.yaml")
	require.NoError(t, err)
	model, err := scenario.Build(slog.Default(), false)
	require.NoError(t, err)
	return model
}

func TestLoadScenario(t *testing.T) {
	model := loadRift(t)
	require.Len(t, model.Features, 2)
	assert.Equal(t, []float64{0, 5}, model.Times)

	basin := model.Features[0]
	assert.Equal(t, "basin", basin.Name)
	assert.Equal(t, geometry.PointKind, basin.Geometry.Kind)
	assert.Nil(t, basin.Config.DeactivatePoints)

	margin := model.Features[1]
	assert.Equal(t, geometry.PolylineKind, margin.Geometry.Kind)
	assert.NotNil(t, margin.Config.DeactivatePoints)
	assert.Greater(t, float64(margin.Config.MaxTessellationAngle), 0.0)

	props := model.Coverages.Coverages(basin)
	require.Len(t, props, 1)
	assert.Equal(t, []float64{30}, props[0].Scalars[coverage.CrustalThickness])
	assert.Empty(t, model.Coverages.Coverages(margin))

	assert.Equal(t, 6, model.Reconstruct.TimeRange().NumSlots())
}

func TestScenarioErrors(t *testing.T) {
	_, err := ParseScenario([]byte("time-range: [1, 2"))
	assert.Error(t, err)

	bad := []string{
		// Increment of zero
		"time-range: {begin: 5, end: 0, increment: 0}\n",
		// Unknown geometry kind
		`time-range: {begin: 5, end: 0, increment: 1}
features:
  - {name: f, kind: circle, points: [[0, 0]]}
`,
		// Triangulation without a closed outline
		`time-range: {begin: 5, end: 0, increment: 1}
networks:
  - name: n
    vertices: [{lat: 0, lon: 0}, {lat: 0, lon: 1}]
    triangles: [[0, 1, 0]]
`,
		// Negative deactivation threshold
		`time-range: {begin: 5, end: 0, increment: 1}
deactivation: {threshold-velocity-delta: -1}
`,
	}
	for _, doc := range bad {
		s, err := ParseScenario([]byte(doc))
		require.NoError(t, err, doc)
		_, err = s.Build(slog.Default(), false)
		assert.True(t, errors.Is(err, utils.ErrPrecondition), doc)
	}
}

func TestDefaultTimesSpanTheRange(t *testing.T) {
	s, err := ParseScenario([]byte("time-range: {begin: 10, end: 2, increment: 2}\n"))
	require.NoError(t, err)
	model, err := s.Build(slog.Default(), true)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 10}, model.Times)
	assert.Empty(t, model.Features)
}

func TestTables(t *testing.T) {
	color.NoColor = true
	model := loadRift(t)
	spans, err := model.Reconstruct.ReconstructAll(context.Background(), model.Features, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	scalars, err := coverage.Build(model.Coverages, model.Features[0], spans[0], nil)
	require.NoError(t, err)
	require.NoError(t, writeSpanTable(&buf, "basin", spans[0], scalars, 5))
	out := buf.String()
	assert.Contains(t, out, "basin at 5 Ma")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "network rift")
	assert.Contains(t, out, "Active points: 1 of 1")

	buf.Reset()
	v, ok := spans[1].Velocities(0, 1, reconstruct.DeltaTimePlusMinusHalf)
	require.True(t, ok)
	require.NoError(t, writeVelocityTable(&buf, "margin", v, 0))
	assert.Contains(t, buf.String(), "margin velocities at 0 Ma")
	assert.Contains(t, buf.String(), "plate 1 (west)")
}

func TestParseTimesAndLogger(t *testing.T) {
	times, err := parseTimes([]string{"0", " 2.5", "10"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2.5, 10}, times)
	_, err = parseTimes([]string{"soon"})
	assert.Error(t, err)

	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	_, err = newLogger("loud")
	assert.Error(t, err)
}
