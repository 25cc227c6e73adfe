package trace

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Heartbeat emits periodic events so a hung compilation shows up in the
// trace as heartbeats without matching span ends.
type Heartbeat struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// StartHeartbeat launches the heartbeat goroutine. It returns nil when
// tracing is disabled or interval is not positive.
func StartHeartbeat(ctx context.Context, tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	h := &Heartbeat{cancel: cancel}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for n := 1; ; n++ {
			select {
			case <-ticker.C:
				tracer.Emit(&Event{
					Time:   time.Now(),
					Kind:   KindHeartbeat,
					Scope:  ScopeDriver,
					Name:   "heartbeat",
					Detail: fmt.Sprintf("#%d", n),
				})
			case <-ctx.Done():
				return
			}
		}
	}()
	return h
}

// Stop halts the goroutine and waits for it. Safe on nil and repeated calls.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.cancel()
	h.wg.Wait()
}
