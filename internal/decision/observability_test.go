package decision

import (
	"sync"
	"testing"
	"time"
)

type recordingObserver struct {
	mu         sync.Mutex
	candidates []string
}

func (r *recordingObserver) ObserveQueryLatency(candidate string, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates = append(r.candidates, candidate)
}

func (r *recordingObserver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.candidates)
}

func TestAsyncObserver_DeliversEventsBeforeClose(t *testing.T) {
	rec := &recordingObserver{}
	obs := NewAsyncQueryLatencyObserver(rec, 16)

	for i := 0; i < 10; i++ {
		obs.ObserveQueryLatency("Ad1=0,Ad2=1", time.Millisecond)
	}
	obs.Close()

	if got := rec.count(); got != 10 {
		t.Fatalf("expected 10 delivered events, got %d", got)
	}
	if obs.Dropped() != 0 {
		t.Fatalf("expected no drops, got %d", obs.Dropped())
	}
}

func TestAsyncObserver_DropsAfterClose(t *testing.T) {
	rec := &recordingObserver{}
	obs := NewAsyncQueryLatencyObserver(rec, 4)

	obs.Close()
	obs.Close() // idempotent
	obs.ObserveQueryLatency("Ad1=0,Ad2=0", time.Millisecond)

	if obs.Dropped() != 1 {
		t.Fatalf("expected 1 dropped event, got %d", obs.Dropped())
	}
	if got := rec.count(); got != 0 {
		t.Fatalf("expected no delivered events, got %d", got)
	}
}

func TestEngine_ReportsCandidateLatencies(t *testing.T) {
	rec := &recordingObserver{}
	e := fixtureEngine(t, WithQueryLatencyObserver(rec))

	if _, err := e.Decide(map[string]int{"T": 1}); err != nil {
		t.Fatal(err)
	}

	if got := rec.count(); got != 4 {
		t.Fatalf("expected one observation per candidate, got %d", got)
	}
}
