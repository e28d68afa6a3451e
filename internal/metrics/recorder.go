// Package metrics records build telemetry. The Prometheus recorder backs the
// serve mode /metrics endpoint; one-shot builds default to the nop recorder.
package metrics

import "time"

// Recorder receives build telemetry.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage, result string)
	IncBuildOutcome(outcome string)
	AddPagesRendered(n int)
	IncRebuild(trigger string)
}

// Nop discards all observations.
type Nop struct{}

func (Nop) ObserveStageDuration(string, time.Duration) {}
func (Nop) ObserveBuildDuration(time.Duration)         {}
func (Nop) IncStageResult(string, string)              {}
func (Nop) IncBuildOutcome(string)                     {}
func (Nop) AddPagesRendered(int)                       {}
func (Nop) IncRebuild(string)                          {}
