package site

import (
	"context"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitegen/internal/gitsource"
)

// stageFetchSource clones the remote docs repository when one is configured
// and points the build's content root into the checkout. Local builds pass
// straight through.
func stageFetchSource(ctx context.Context, bs *BuildState) error {
	if bs.Config.DocsRepo == nil {
		return nil
	}

	dest := filepath.Join(os.TempDir(), "sitegen-src-"+bs.BuildID)
	checkout, err := gitsource.Fetch(ctx, bs.Config.DocsRepo, dest)
	if err != nil {
		return fatal(StageFetchSource, err)
	}
	bs.DocsDir = filepath.Join(checkout, bs.Config.DocsDir)
	return nil
}
