package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gpex/internal/trace"
)

// Phase records the duration of one compiler pass.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string

	span *trace.Span
}

// Timer tracks pass durations and mirrors them as trace spans.
// A nil *Timer is valid and records nothing.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	tracer trace.Tracer
	parent uint64
}

// NewTimer creates a Timer. tracer may be nil.
func NewTimer(tracer trace.Tracer, parent uint64) *Timer {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Timer{phases: make([]Phase, 0, 8), tracer: tracer, parent: parent}
}

// Begin starts a phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	span := trace.Begin(t.tracer, trace.ScopePass, name, t.parent)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now(), span: span})
	return len(t.phases) - 1
}

// End finishes the phase at idx.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	if idx < 0 || idx >= len(t.phases) {
		t.mu.Unlock()
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	span := p.span
	t.mu.Unlock()
	span.End(note)
}

// Span returns the trace span id of phase idx for nesting module spans.
func (t *Timer) Span(idx int) uint64 {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return 0
	}
	return t.phases[idx].span.ID()
}

// Summary renders the phases as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %8.3f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %8.3f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport - сжатая информация о фазе для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report - агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{Name: phase.Name, DurationMS: millis(phase.Dur), Note: phase.Note}
	}
	report.TotalMS = millis(total)
	return report
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
