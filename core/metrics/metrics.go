// Package metrics defines the observability surface of the planning
// pipeline. Sinks are implemented under infra; the core only emits events.
package metrics

import "time"

// PipelineEvent summarises one full planning run.
type PipelineEvent struct {
	Works      int
	Rehearsals int
	Bundles    int
	Deficits   int
	Overflows  int
	Duration   time.Duration
	Time       time.Time
}

// EditEvent captures the outcome of one interactive edit.
type EditEvent struct {
	Rehearsal  int
	Action     string
	Accepted   bool
	Violations int
	Time       time.Time
}

// Sink records planning and edit events for observability purposes.
type Sink interface {
	RecordPipelineRun(ev PipelineEvent) error
	RecordEdit(ev EditEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPipelineRun(PipelineEvent) error { return nil }
func (NopSink) RecordEdit(EditEvent) error            { return nil }
