package logger

import (
	"sync"
	"testing"
	"time"
)

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("scrape.attempts")
	m.IncrCounter("scrape.attempts")
	m.AddCounter("scrape.attempts", 3)

	counters := m.GetSnapshot()["counters"].(map[string]int64)
	if counters["scrape.attempts"] != 5 {
		t.Errorf("Counter = %v, want 5", counters["scrape.attempts"])
	}
}

func TestMetrics_Gauge(t *testing.T) {
	m := NewMetrics()

	m.SetGauge("history.records", 10)
	m.SetGauge("history.records", 11)

	gauges := m.GetSnapshot()["gauges"].(map[string]float64)
	if gauges["history.records"] != 11 {
		t.Errorf("Gauge = %v, want 11", gauges["history.records"])
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("scrape.fetch", 100*time.Millisecond)
	m.RecordTiming("scrape.fetch", 200*time.Millisecond)
	m.RecordTiming("scrape.fetch", 150*time.Millisecond)

	timings := m.GetSnapshot()["timings"].(map[string]map[string]interface{})
	fetch := timings["scrape.fetch"]

	if fetch["count"].(int) != 3 {
		t.Errorf("Timing count = %v, want 3", fetch["count"])
	}
	if fetch["min"].(string) != "100ms" {
		t.Errorf("Min timing = %v, want 100ms", fetch["min"])
	}
	if fetch["max"].(string) != "200ms" {
		t.Errorf("Max timing = %v, want 200ms", fetch["max"])
	}
	if fetch["average"].(string) != "150ms" {
		t.Errorf("Average timing = %v, want 150ms", fetch["average"])
	}
}

func TestMetrics_SnapshotIsCopy(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("a")

	snap := m.GetSnapshot()
	m.IncrCounter("a")

	if got := snap["counters"].(map[string]int64)["a"]; got != 1 {
		t.Errorf("snapshot changed after update: %d", got)
	}

	m.Reset()
	if got := len(m.GetSnapshot()["counters"].(map[string]int64)); got != 0 {
		t.Errorf("Reset() left %d counters", got)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrCounter("notify.sent")
			m.RecordTiming("notify.send", time.Millisecond)
		}()
	}
	wg.Wait()

	if got := m.GetSnapshot()["counters"].(map[string]int64)["notify.sent"]; got != 20 {
		t.Errorf("Counter = %d, want 20", got)
	}
}
