package observability

import (
	"context"
	"sync"
	"time"
)

// OpStats aggregates the runs of one operation.
type OpStats struct {
	Runs      int64         `json:"runs"`
	Errors    int64         `json:"errors"`
	Nodes     int64         `json:"nodes"`
	TotalTime time.Duration `json:"total_ns"`
	MaxTime   time.Duration `json:"max_ns"`
}

// Counters is an in-memory EngineHooks and CacheHooks implementation.
// The server and CLI register it to expose per-operation statistics.
type Counters struct {
	mu     sync.Mutex
	ops    map[string]*OpStats
	hits   int64
	misses int64
}

// NewCounters returns an empty Counters.
func NewCounters() *Counters {
	return &Counters{ops: make(map[string]*OpStats)}
}

func (c *Counters) OnOperationStart(context.Context, string, int) {}

func (c *Counters) OnOperationComplete(_ context.Context, op string, nodeCount int, d time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.ops[op]
	if !ok {
		s = &OpStats{}
		c.ops[op] = s
	}
	s.Runs++
	s.Nodes += int64(nodeCount)
	s.TotalTime += d
	s.MaxTime = max(s.MaxTime, d)
	if err != nil {
		s.Errors++
	}
}

func (c *Counters) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func (c *Counters) OnCacheMiss(context.Context, string) {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
}

func (c *Counters) OnCacheSet(context.Context, string, int) {}

// Snapshot is a point-in-time copy of a Counters.
type Snapshot struct {
	Operations  map[string]OpStats `json:"operations"`
	CacheHits   int64              `json:"cache_hits"`
	CacheMisses int64              `json:"cache_misses"`
}

// Snapshot copies the current statistics.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := Snapshot{
		Operations:  make(map[string]OpStats, len(c.ops)),
		CacheHits:   c.hits,
		CacheMisses: c.misses,
	}
	for op, s := range c.ops {
		out.Operations[op] = *s
	}
	return out
}
