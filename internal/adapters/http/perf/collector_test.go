package perf

import (
	"sync"
	"testing"
	"time"
)

func TestCollector_SummarizeGroupsByRoute(t *testing.T) {
	c := NewCollector(100)
	c.Observe("/api/members/{id}", "GET", 200, 10*time.Millisecond)
	c.Observe("/api/members/{id}", "GET", 200, 30*time.Millisecond)
	c.Observe("/api/attendance", "POST", 503, 5*time.Millisecond)

	s := c.Summarize(10)
	if s.Total != 3 || s.Window != 3 {
		t.Errorf("Total = %d, Window = %d, want 3, 3", s.Total, s.Window)
	}
	if len(s.Slowest) != 2 {
		t.Fatalf("Slowest = %+v", s.Slowest)
	}
	top := s.Slowest[0]
	if top.Route != "GET /api/members/{id}" || top.Count != 2 || top.AvgMs != 20 || top.MaxMs != 30 {
		t.Errorf("top = %+v", top)
	}
	if s.Slowest[1].Errors != 1 {
		t.Errorf("errors = %d, want 1", s.Slowest[1].Errors)
	}
}

func TestCollector_RingOverwritesOldest(t *testing.T) {
	c := NewCollector(3)
	for i := 0; i < 5; i++ {
		c.Observe("/x", "GET", 200, time.Duration(i)*time.Millisecond)
	}
	s := c.Summarize(10)
	if s.Total != 5 || s.Window != 3 {
		t.Errorf("Total = %d, Window = %d, want 5, 3", s.Total, s.Window)
	}
	// kept 2, 3, 4 ms
	if s.Slowest[0].AvgMs != 3 {
		t.Errorf("AvgMs = %v, want 3", s.Slowest[0].AvgMs)
	}
}

func TestCollector_Percentiles(t *testing.T) {
	c := NewCollector(200)
	for i := 1; i <= 101; i++ {
		c.Observe("/p", "GET", 200, time.Duration(i)*time.Millisecond)
	}
	s := c.Summarize(1)
	if s.P50Ms != 51 || s.P99Ms != 100 {
		t.Errorf("P50 = %v, P99 = %v, want 51, 100", s.P50Ms, s.P99Ms)
	}
	if len(s.Slowest) != 1 {
		t.Errorf("topN not applied: %d", len(s.Slowest))
	}
}

func TestCollector_Empty(t *testing.T) {
	s := NewCollector(0).Summarize(5)
	if s.Total != 0 || s.P95Ms != 0 || len(s.Slowest) != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestCollector_ConcurrentObserve(t *testing.T) {
	c := NewCollector(64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.Observe("/c", "GET", 200, time.Millisecond)
			}
		}()
	}
	wg.Wait()
	if s := c.Summarize(1); s.Total != 800 || s.Window != 64 {
		t.Errorf("Total = %d, Window = %d", s.Total, s.Window)
	}
}
