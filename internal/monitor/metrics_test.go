package monitor

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordCycle(5 * time.Millisecond)
	m.RecordCycle(15 * time.Millisecond)
	m.RecordSkippedCycle()
	m.RecordEntry()
	m.RecordExit()

	s := m.Snapshot()
	if s.Cycles != 2 || s.SkippedCycles != 1 || s.Entries != 1 || s.Exits != 1 {
		t.Fatalf("counters wrong: %+v", s)
	}
	if s.CycleLatency.Count != 2 || s.CycleLatency.Min != 5 || s.CycleLatency.Max != 15 {
		t.Fatalf("latency stats wrong: %+v", s.CycleLatency)
	}
	if s.CycleLatency.Avg != 10 {
		t.Fatalf("avg = %v, want 10", s.CycleLatency.Avg)
	}
}

func TestLatencyHistogramWindow(t *testing.T) {
	h := NewLatencyHistogram(3)
	for _, v := range []float64{1, 2, 3, 4} {
		h.Record(v)
	}
	s := h.Stats()
	if s.Count != 3 || s.Min != 2 || s.Max != 4 {
		t.Fatalf("window eviction wrong: %+v", s)
	}
}

func TestLatencyHistogramEmpty(t *testing.T) {
	if s := NewLatencyHistogram(10).Stats(); s.Count != 0 {
		t.Fatalf("empty stats = %+v", s)
	}
}
