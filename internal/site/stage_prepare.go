package site

import (
	"context"
	"fmt"
	"os"
)

// stagePrepareOutput cleans and recreates the output directory. Builds are
// always from scratch; stale artifacts never survive a rebuild. It runs
// after the content scan, so a build that fails navigation resolution never
// touches the output of the last good build.
func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	if err := os.RemoveAll(bs.SiteDir); err != nil {
		return fatal(StagePrepareOutput, fmt.Errorf("clean output directory: %w", err))
	}
	if err := os.MkdirAll(bs.SiteDir, 0o755); err != nil {
		return fatal(StagePrepareOutput, fmt.Errorf("create output directory: %w", err))
	}
	return nil
}
