package reconstruct

import (
	"context"
	"fmt"

	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/partitions"
	"github.com/notargets/gotopo/rotation"
	"golang.org/x/sync/errgroup"
)

// Feature is one geometry to reconstruct through the topologies
type Feature struct {
	Name       string
	Geometry   geometry.Geometry
	PlateID    rotation.PlateID
	ImportTime float64
	Config     SpanConfig
}

// ReconstructAll creates a GeometryTimeSpan per feature, spreading features
// over at most workers goroutines balanced by point count. The first failure
// cancels the remaining work; spans are returned in feature order.
func (tr *TopologyReconstruct) ReconstructAll(ctx context.Context, features []Feature,
	workers int) ([]*GeometryTimeSpan, error) {
	weights := make([]float64, len(features))
	for i, f := range features {
		weights[i] = float64(f.Geometry.NumPoints())
	}
	layout, err := (&partitions.PartitionBuilder{
		Weights:       weights,
		NumPartitions: max(workers, 1),
		Strategy:      partitions.WeightBalanced,
	}).BuildPartitions()
	if err != nil {
		return nil, err
	}

	spans := make([]*GeometryTimeSpan, len(features))
	g, ctx := errgroup.WithContext(ctx)
	for _, part := range layout.Partitions {
		part := part
		g.Go(func() error {
			tr.logger.Debug("reconstructing partition",
				"partition", part.ID,
				"features", part.NumFeatures,
				"points", part.Cost)
			for _, fi := range part.Features {
				if err := ctx.Err(); err != nil {
					return err
				}
				f := features[fi]
				span, err := tr.CreateGeometryTimeSpan(f.Geometry, f.PlateID, f.ImportTime, f.Config)
				if err != nil {
					return fmt.Errorf("feature %d (%s): %w", fi, f.Name, err)
				}
				spans[fi] = span
			}
			tr.logger.Debug("partition done", "partition", part.ID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats := layout.PartitionStatistics()
	tr.logger.Info("reconstructed features",
		"features", len(features),
		"partitions", stats.NumPartitions,
		"imbalance", stats.Imbalance)
	return spans, nil
}
