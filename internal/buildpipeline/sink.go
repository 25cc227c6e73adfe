package buildpipeline

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

// Collector keeps every event; used by tests and the timings summary.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *Collector) OnEvent(evt Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
}

// Events returns a copy of the collected events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

// Timings sums Elapsed of pipeline-level done events per stage.
func (c *Collector) Timings() Timings {
	var t Timings
	for _, evt := range c.Events() {
		if evt.File == "" && evt.Status == StatusDone {
			t.Set(evt.Stage, t.Duration(evt.Stage)+evt.Elapsed)
		}
	}
	return t
}

// LineSink prints one line per pipeline-level event; the fallback when the
// progress view is off.
type LineSink struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *LineSink) OnEvent(evt Event) {
	if s == nil || s.W == nil || evt.File != "" || evt.Status == StatusQueued || evt.Status == StatusWorking {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case evt.Err != nil:
		fmt.Fprintf(s.W, "%-9s %s: %v\n", evt.Stage, evt.Status, evt.Err)
	default:
		fmt.Fprintf(s.W, "%-9s %s %s\n", evt.Stage, evt.Status, evt.Elapsed.Round(time.Microsecond))
	}
}

// Emit sends evt to sink when sink is set.
func Emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

// EmitFiles sends one event per file.
func EmitFiles(sink ProgressSink, files []string, stage Stage, status Status) {
	if sink == nil {
		return
	}
	for _, f := range files {
		sink.OnEvent(Event{File: f, Stage: stage, Status: status})
	}
}
