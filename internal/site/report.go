package site

import "time"

// Warning is a non-fatal build finding.
type Warning struct {
	Stage   StageName
	Message string
}

// StageTiming records one executed stage.
type StageTiming struct {
	Stage    StageName
	Duration time.Duration
}

// Report summarizes one completed build.
type Report struct {
	BuildID       string
	StartedAt     time.Time
	Duration      time.Duration
	PagesRendered int
	AssetsCopied  int
	Stages        []StageTiming
	Warnings      []Warning
}

// WarningMessages flattens warnings for logging and serialization.
func (r *Report) WarningMessages() []string {
	msgs := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		msgs[i] = string(w.Stage) + ": " + w.Message
	}
	return msgs
}
