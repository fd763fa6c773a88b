package rotation

import (
	"sync"

	"github.com/notargets/gotopo/geometry"
)

// DefaultStageCacheSize bounds the number of memoized stage rotations
const DefaultStageCacheSize = 1 << 16

// StageCache memoizes stage rotations by (plate, from, to). Point advection asks
// for the same few plates at every time step, so each stage is computed once.
// Safe for concurrent use by spans sharing one rotation model.
type StageCache struct {
	service Service
	maxSize int

	mu      sync.Mutex
	entries map[stageKey]geometry.FiniteRotation
	hits    uint64
	misses  uint64
}

type stageKey struct {
	plateID  PlateID
	fromTime float64
	toTime   float64
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

var _ Service = (*StageCache)(nil)

// NewStageCache wraps service. A non-positive maxSize selects DefaultStageCacheSize.
func NewStageCache(service Service, maxSize int) *StageCache {
	if maxSize <= 0 {
		maxSize = DefaultStageCacheSize
	}
	return &StageCache{
		service: service,
		maxSize: maxSize,
		entries: make(map[stageKey]geometry.FiniteRotation),
	}
}

// StageRotation returns the memoized stage rotation
func (c *StageCache) StageRotation(plateID PlateID, fromTime, toTime float64) geometry.FiniteRotation {
	if fromTime == toTime {
		return geometry.Identity()
	}
	key := stageKey{plateID: plateID, fromTime: fromTime, toTime: toTime}

	c.mu.Lock()
	if r, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return r
	}
	c.misses++
	c.mu.Unlock()

	r := c.service.StageRotation(plateID, fromTime, toTime)

	c.mu.Lock()
	if len(c.entries) >= c.maxSize {
		c.entries = make(map[stageKey]geometry.FiniteRotation)
	}
	c.entries[key] = r
	c.mu.Unlock()
	return r
}

// TotalRotation passes straight through to the wrapped service
func (c *StageCache) TotalRotation(plateID PlateID, time float64) geometry.FiniteRotation {
	return c.service.TotalRotation(plateID, time)
}

// Stats returns a snapshot of the counters
func (c *StageCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}
