package decision

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// QueryLatencyObserver receives the inference latency of each evaluated
// candidate assignment.
type QueryLatencyObserver interface {
	ObserveQueryLatency(candidate string, duration time.Duration)
}

type QueryLatencyLogger struct {
	logger *log.Logger
}

func NewQueryLatencyLogger(logger *log.Logger) *QueryLatencyLogger {
	return &QueryLatencyLogger{logger: logger}
}

func (l *QueryLatencyLogger) ObserveQueryLatency(candidate string, duration time.Duration) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Printf("decide_candidate_latency candidate=%s duration_ms=%.3f", candidate, float64(duration.Microseconds())/1000.0)
}

// AsyncQueryLatencyObserver decouples observation from the decide path via a
// bounded buffer; events are dropped rather than blocking a decide call.
type AsyncQueryLatencyObserver struct {
	next    QueryLatencyObserver
	events  chan queryLatencyEvent
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

type queryLatencyEvent struct {
	candidate string
	duration  time.Duration
}

func NewAsyncQueryLatencyObserver(next QueryLatencyObserver, buffer int) *AsyncQueryLatencyObserver {
	if buffer <= 0 {
		buffer = 1
	}

	o := &AsyncQueryLatencyObserver{
		next:   next,
		events: make(chan queryLatencyEvent, buffer),
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for ev := range o.events {
			if o.next == nil {
				continue
			}
			o.next.ObserveQueryLatency(ev.candidate, ev.duration)
		}
	}()

	return o
}

func (o *AsyncQueryLatencyObserver) ObserveQueryLatency(candidate string, duration time.Duration) {
	if o == nil {
		return
	}
	o.mu.RLock()
	if o.closed {
		o.mu.RUnlock()
		o.dropped.Add(1)
		return
	}
	select {
	case o.events <- queryLatencyEvent{candidate: candidate, duration: duration}:
	default:
		o.dropped.Add(1)
	}
	o.mu.RUnlock()
}

func (o *AsyncQueryLatencyObserver) Dropped() uint64 {
	if o == nil {
		return 0
	}
	return o.dropped.Load()
}

func (o *AsyncQueryLatencyObserver) Close() {
	if o == nil {
		return
	}
	o.once.Do(func() {
		o.mu.Lock()
		o.closed = true
		close(o.events)
		o.mu.Unlock()
		o.wg.Wait()
	})
}
