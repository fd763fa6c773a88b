package partitions

import (
	"fmt"
)

// Partition is a collection of features reconstructed together by one worker
type Partition struct {
	// Unique identifier for this partition
	ID int

	// Feature membership
	Features    []int // Global feature indices in this partition
	NumFeatures int   // Number of features assigned
	Cost        float64
}

// PartitionLayout manages the decomposition of a feature collection
type PartitionLayout struct {
	// All partitions in the collection
	Partitions []Partition

	// Global sizing information
	MaxFeatures   int // max(NumFeatures) across all partitions
	TotalFeatures int // Sum of all features across partitions
	NumPartitions int

	// Feature to partition mapping
	FToP []int // Length TotalFeatures: feature k belongs to partition FToP[k]
}

// GetPartition returns the partition containing feature k
func (pl *PartitionLayout) GetPartition(featureID int) int {
	if featureID < 0 || featureID >= len(pl.FToP) {
		return -1
	}
	return pl.FToP[featureID]
}

// ValidateLayout checks partition consistency
func (pl *PartitionLayout) ValidateLayout() error {
	if len(pl.Partitions) != pl.NumPartitions {
		return fmt.Errorf("layout has %d partitions, NumPartitions is %d",
			len(pl.Partitions), pl.NumPartitions)
	}
	if len(pl.FToP) != pl.TotalFeatures {
		return fmt.Errorf("FToP length %d != TotalFeatures %d", len(pl.FToP), pl.TotalFeatures)
	}
	actualMax, total := 0, 0
	for id, p := range pl.Partitions {
		if p.ID != id {
			return fmt.Errorf("partition at index %d has ID %d", id, p.ID)
		}
		if len(p.Features) != p.NumFeatures {
			return fmt.Errorf("partition %d: %d features listed, NumFeatures %d",
				p.ID, len(p.Features), p.NumFeatures)
		}
		for _, f := range p.Features {
			if pl.GetPartition(f) != p.ID {
				return fmt.Errorf("feature %d listed in partition %d but mapped to %d",
					f, p.ID, pl.GetPartition(f))
			}
		}
		actualMax = max(actualMax, p.NumFeatures)
		total += p.NumFeatures
	}
	if actualMax != pl.MaxFeatures {
		return fmt.Errorf("computed MaxFeatures %d != stored MaxFeatures %d",
			actualMax, pl.MaxFeatures)
	}
	if total != pl.TotalFeatures {
		return fmt.Errorf("partitions hold %d features, TotalFeatures %d", total, pl.TotalFeatures)
	}
	return nil
}

// PartitionStatistics computes load balance metrics
func (pl *PartitionLayout) PartitionStatistics() PartitionStats {
	stats := PartitionStats{NumPartitions: pl.NumPartitions}
	if pl.NumPartitions == 0 {
		return stats
	}
	var totalCost float64
	for i, p := range pl.Partitions {
		if i == 0 || p.Cost < stats.MinCost {
			stats.MinCost = p.Cost
		}
		stats.MaxCost = max(stats.MaxCost, p.Cost)
		totalCost += p.Cost
	}
	stats.AvgCost = totalCost / float64(pl.NumPartitions)
	if stats.AvgCost > 0 {
		stats.Imbalance = stats.MaxCost / stats.AvgCost
	}
	return stats
}

type PartitionStats struct {
	NumPartitions int
	MinCost       float64
	MaxCost       float64
	AvgCost       float64
	Imbalance     float64 // MaxCost / AvgCost
}
