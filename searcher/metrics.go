package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one FindBestMove call.
type SearchMetric struct {
	Workers      int
	Duration     time.Duration
	Evaluations  int
	Worlds       int
	FullPlayouts int
}

// Collector gathers search metrics. Implementations must be safe for
// concurrent use by world workers.
type Collector interface {
	Start(workers int)
	AddEvaluation()
	AddWorld()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	workers      int
	startTime    time.Time
	evaluations  atomic.Int64
	worlds       atomic.Int64
	fullPlayouts atomic.Int64
}

// NewCollector returns a concurrency-safe metrics collector.
func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(workers int) {
	c.workers = workers
	c.startTime = time.Now()
	c.evaluations.Store(0)
	c.worlds.Store(0)
	c.fullPlayouts.Store(0)
}

func (c *collector) AddEvaluation()  { c.evaluations.Add(1) }
func (c *collector) AddWorld()       { c.worlds.Add(1) }
func (c *collector) AddFullPlayout() { c.fullPlayouts.Add(1) }

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Workers:      c.workers,
		Duration:     time.Since(c.startTime),
		Evaluations:  int(c.evaluations.Load()),
		Worlds:       int(c.worlds.Load()),
		FullPlayouts: int(c.fullPlayouts.Load()),
	}
}

type nopCollector struct{}

// NewNopCollector returns a collector that records nothing.
func NewNopCollector() Collector { return nopCollector{} }

func (nopCollector) Start(int)             {}
func (nopCollector) AddEvaluation()        {}
func (nopCollector) AddWorld()             {}
func (nopCollector) AddFullPlayout()       {}
func (nopCollector) Complete() SearchMetric { return SearchMetric{} }
