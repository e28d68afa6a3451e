package site

import (
	"context"
	"fmt"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageFetchSource   StageName = "fetch_source"
	StageScanDocs      StageName = "scan_docs"
	StagePrepareOutput StageName = "prepare_output"
	StageRenderPages   StageName = "render_pages"
	StageCopyAssets    StageName = "copy_assets"
	StageRunPlugins    StageName = "run_plugins"
	StagePostProcess   StageName = "post_process"
)

// StageErrorKind classifies the outcome of a stage.
type StageErrorKind string

const (
	StageErrorFatal   StageErrorKind = "fatal"   // Build must abort.
	StageErrorWarning StageErrorKind = "warning" // Record and continue (fatal in strict mode).
)

// StageError is a structured error carrying the stage and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func fatal(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
