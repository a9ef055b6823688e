// Package monitor tracks engine health counters for the metrics endpoint.
package monitor

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects decision-loop counters. All methods are safe for
// concurrent use.
type Metrics struct {
	startTime time.Time

	cycles        atomic.Uint64
	skippedCycles atomic.Uint64
	entries       atomic.Uint64
	exits         atomic.Uint64

	cycleLatency *LatencyHistogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		startTime:    time.Now(),
		cycleLatency: NewLatencyHistogram(1000),
	}
}

// RecordCycle counts one completed decision cycle and its duration.
func (m *Metrics) RecordCycle(d time.Duration) {
	m.cycles.Add(1)
	m.cycleLatency.RecordDuration(d)
}

// RecordSkippedCycle counts a cycle abandoned on fetch error or short data.
func (m *Metrics) RecordSkippedCycle() { m.skippedCycles.Add(1) }

// RecordEntry counts an opened position.
func (m *Metrics) RecordEntry() { m.entries.Add(1) }

// RecordExit counts a closed position.
func (m *Metrics) RecordExit() { m.exits.Add(1) }

// Snapshot is the JSON shape served at the metrics endpoint.
type Snapshot struct {
	UptimeSeconds float64      `json:"uptime_seconds"`
	Cycles        uint64       `json:"cycles"`
	SkippedCycles uint64       `json:"skipped_cycles"`
	Entries       uint64       `json:"entries"`
	Exits         uint64       `json:"exits"`
	CycleLatency  LatencyStats `json:"cycle_latency_ms"`
	Goroutines    int          `json:"goroutines"`
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		UptimeSeconds: time.Since(m.startTime).Seconds(),
		Cycles:        m.cycles.Load(),
		SkippedCycles: m.skippedCycles.Load(),
		Entries:       m.entries.Load(),
		Exits:         m.exits.Load(),
		CycleLatency:  m.cycleLatency.Stats(),
		Goroutines:    runtime.NumGoroutine(),
	}
}

// LatencyStats is a summary over the sliding sample window.
type LatencyStats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	P95   float64 `json:"p95"`
}

// LatencyHistogram keeps a sliding window of millisecond samples.
type LatencyHistogram struct {
	mu      sync.Mutex
	samples []float64
	maxSize int
}

func NewLatencyHistogram(size int) *LatencyHistogram {
	if size <= 0 {
		size = 1000
	}
	return &LatencyHistogram{samples: make([]float64, 0, size), maxSize: size}
}

// Record adds a sample in milliseconds, evicting the oldest at capacity.
func (h *LatencyHistogram) Record(ms float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.samples) >= h.maxSize {
		h.samples = h.samples[1:]
	}
	h.samples = append(h.samples, ms)
}

func (h *LatencyHistogram) RecordDuration(d time.Duration) {
	h.Record(float64(d.Nanoseconds()) / 1e6)
}

func (h *LatencyHistogram) Stats() LatencyStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.samples)
	if n == 0 {
		return LatencyStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, h.samples)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	return LatencyStats{
		Count: n,
		Min:   sorted[0],
		Max:   sorted[n-1],
		Avg:   sum / float64(n),
		P95:   sorted[int(float64(n)*0.95)],
	}
}
