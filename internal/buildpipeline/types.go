// Package buildpipeline carries compile progress from the driver to
// whoever renders it.
package buildpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	StageRead     Stage = "read"
	StageParse    Stage = "parse"
	StageIndex    Stage = "index"
	StageValidate Stage = "validate"
	StageGenerate Stage = "generate"
	StageVerify   Stage = "verify"
	StageWrite    Stage = "write"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageRead, StageParse, StageIndex, StageValidate, StageGenerate, StageVerify, StageWrite}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped" // e.g. module body skipped after a failed import
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole pipeline when File
// is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

// Set stores a duration for stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] = dur
}

// Has reports whether stage was recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum adds up the given stages; with none it adds up everything.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if len(stages) == 0 {
		stages = Stages
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
