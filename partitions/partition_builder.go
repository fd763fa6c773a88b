package partitions

import (
	"fmt"
	"math"
	"sort"
)

// PartitionBuilder assigns features to partitions
type PartitionBuilder struct {
	// Per-feature reconstruction cost, typically the tessellated point count
	Weights []float64

	// Partitioning parameters
	NumPartitions       int // Fixed partition count; zero derives it from TargetPartitionSize
	TargetPartitionSize int // Desired features per partition
	Strategy            PartitionStrategy
}

// PartitionStrategy defines how features are grouped
type PartitionStrategy int

const (
	BlockPartition PartitionStrategy = iota // Consecutive features
	RoundRobin                              // Distribute cyclically
	WeightBalanced                          // Heaviest first onto the lightest partition
)

func (s PartitionStrategy) String() string {
	switch s {
	case BlockPartition:
		return "block"
	case RoundRobin:
		return "round-robin"
	case WeightBalanced:
		return "weight-balanced"
	}
	return fmt.Sprintf("PartitionStrategy(%d)", int(s))
}

// BuildPartitions creates a partition layout from the feature weights
func (pb *PartitionBuilder) BuildPartitions() (*PartitionLayout, error) {
	for i, w := range pb.Weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("feature %d has invalid weight %g", i, w)
		}
	}
	numPartitions := pb.calculateNumPartitions()
	fToP := pb.partitionFeatures(numPartitions)
	partitions := pb.createPartitions(fToP, numPartitions)

	maxFeatures := 0
	for _, p := range partitions {
		maxFeatures = max(maxFeatures, p.NumFeatures)
	}

	layout := &PartitionLayout{
		Partitions:    partitions,
		MaxFeatures:   maxFeatures,
		TotalFeatures: len(pb.Weights),
		NumPartitions: numPartitions,
		FToP:          fToP,
	}
	if err := layout.ValidateLayout(); err != nil {
		return nil, fmt.Errorf("invalid partition layout: %w", err)
	}
	return layout, nil
}

// calculateNumPartitions never returns more partitions than features, and
// always at least one
func (pb *PartitionBuilder) calculateNumPartitions() int {
	numFeatures := len(pb.Weights)
	numPartitions := pb.NumPartitions
	if numPartitions <= 0 && pb.TargetPartitionSize > 0 {
		numPartitions = int(math.Ceil(float64(numFeatures) / float64(pb.TargetPartitionSize)))
	}
	numPartitions = min(numPartitions, numFeatures)
	return max(numPartitions, 1)
}

func (pb *PartitionBuilder) partitionFeatures(numPartitions int) []int {
	numFeatures := len(pb.Weights)
	fToP := make([]int, numFeatures)

	switch pb.Strategy {
	case RoundRobin:
		for i := range fToP {
			fToP[i] = i % numPartitions
		}

	case WeightBalanced:
		order := make([]int, numFeatures)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return pb.Weights[order[a]] > pb.Weights[order[b]]
		})
		load := make([]float64, numPartitions)
		for _, f := range order {
			lightest := 0
			for p := 1; p < numPartitions; p++ {
				if load[p] < load[lightest] {
					lightest = p
				}
			}
			fToP[f] = lightest
			load[lightest] += pb.Weights[f]
		}

	default:
		featuresPerPartition := int(math.Ceil(float64(numFeatures) / float64(numPartitions)))
		for i := range fToP {
			fToP[i] = min(i/max(featuresPerPartition, 1), numPartitions-1)
		}
	}
	return fToP
}

func (pb *PartitionBuilder) createPartitions(fToP []int, numPartitions int) []Partition {
	partitions := make([]Partition, numPartitions)
	for i := range partitions {
		partitions[i] = Partition{ID: i, Features: make([]int, 0)}
	}
	for f, part := range fToP {
		partitions[part].Features = append(partitions[part].Features, f)
		partitions[part].NumFeatures++
		partitions[part].Cost += pb.Weights[f]
	}
	return partitions
}
