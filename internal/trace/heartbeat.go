package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat periodically emits events so that a hung script is visible in
// the trace. Heartbeats with no span ends between them usually mean an
// endless loop in user code.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	start    time.Time
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once
}

// StartHeartbeat starts emitting every interval. It returns nil when
// tracing is off or interval is not positive; Stop accepts nil.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		start:    time.Now(),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer close(h.stopped)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	gid := goroutineID()
	for beat := 1; ; beat++ {
		select {
		case now := <-ticker.C:
			h.tracer.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeCommand,
				GID:    gid,
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d after %s", beat, now.Sub(h.start).Round(time.Millisecond)),
			})
		case <-h.done:
			return
		}
	}
}

// Stop ends the heartbeat and waits for its goroutine. Safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.done) })
	<-h.stopped
}
