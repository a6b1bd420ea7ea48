// Package perf keeps a bounded window of recent request latencies per route.
package perf

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the number of recent requests kept.
const DefaultRingSize = 2048

// Sample is one served request.
type Sample struct {
	Route    string // route template, e.g. "/api/members/{id}"
	Method   string
	Status   int
	Duration time.Duration
}

// Collector is a fixed-size ring of samples. When full, the oldest sample is overwritten.
// Aggregation happens only on read.
type Collector struct {
	mu      sync.Mutex
	samples []Sample
	pos     int
	filled  bool
	total   atomic.Int64
}

// NewCollector creates a collector holding the last size samples.
// PRE: none; size <= 0 means DefaultRingSize
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{samples: make([]Sample, size)}
}

// Observe records one request.
// POST: the sample is stored; the oldest one is dropped when the ring is full
func (c *Collector) Observe(route, method string, status int, d time.Duration) {
	c.mu.Lock()
	c.samples[c.pos] = Sample{Route: route, Method: method, Status: status, Duration: d}
	c.pos++
	if c.pos == len(c.samples) {
		c.pos = 0
		c.filled = true
	}
	c.mu.Unlock()
	c.total.Add(1)
}

// RouteStat aggregates the samples of one method and route.
type RouteStat struct {
	Route  string  `json:"route"`
	Count  int     `json:"count"`
	Errors int     `json:"errors"` // 5xx responses
	AvgMs  float64 `json:"avg_ms"`
	MaxMs  float64 `json:"max_ms"`
}

// Summary is the latency picture of the current window.
type Summary struct {
	Total   int64       `json:"total"`
	Window  int         `json:"window"`
	P50Ms   float64     `json:"p50_ms"`
	P95Ms   float64     `json:"p95_ms"`
	P99Ms   float64     `json:"p99_ms"`
	Slowest []RouteStat `json:"slowest"`
}

// Summarize aggregates the window and returns the topN routes by average latency.
func (c *Collector) Summarize(topN int) Summary {
	c.mu.Lock()
	n := c.pos
	if c.filled {
		n = len(c.samples)
	}
	window := make([]Sample, n)
	copy(window, c.samples[:n])
	c.mu.Unlock()

	durations := make([]float64, 0, len(window))
	byRoute := make(map[string]*RouteStat)
	for _, s := range window {
		ms := float64(s.Duration.Microseconds()) / 1000.0
		durations = append(durations, ms)

		key := s.Method + " " + s.Route
		st, ok := byRoute[key]
		if !ok {
			st = &RouteStat{Route: key}
			byRoute[key] = st
		}
		st.Count++
		st.AvgMs += ms
		st.MaxMs = math.Max(st.MaxMs, ms)
		if s.Status >= 500 {
			st.Errors++
		}
	}

	stats := make([]RouteStat, 0, len(byRoute))
	for _, st := range byRoute {
		st.AvgMs /= float64(st.Count)
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AvgMs != stats[j].AvgMs {
			return stats[i].AvgMs > stats[j].AvgMs
		}
		return stats[i].Route < stats[j].Route
	})
	if len(stats) > topN {
		stats = stats[:topN]
	}

	sort.Float64s(durations)
	return Summary{
		Total:   c.total.Load(),
		Window:  len(window),
		P50Ms:   percentile(durations, 50),
		P95Ms:   percentile(durations, 95),
		P99Ms:   percentile(durations, 99),
		Slowest: stats,
	}
}

// percentile returns the p-th percentile of a sorted slice, interpolating between ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
