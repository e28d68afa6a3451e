package site

import (
	"context"

	"git.home.luguber.info/inful/sitegen/internal/plugins"
)

// stageRunPlugins executes the configured plugin sequence, in declaration
// order, against the rendered site tree.
func stageRunPlugins(ctx context.Context, bs *BuildState) error {
	runner, err := plugins.NewRunner(bs.Config.Plugins)
	if err != nil {
		return fatal(StageRunPlugins, err)
	}

	pages := make([]plugins.PageInfo, 0, len(bs.Pages))
	for _, p := range bs.Pages {
		pages = append(pages, plugins.PageInfo{
			Title:       p.Title,
			Location:    p.URL,
			Description: p.Meta.Description,
			Text:        p.Text,
		})
	}

	b := &plugins.BuildContext{
		Config:  bs.Config,
		SiteDir: bs.SiteDir,
		Pages:   pages,
		URLFor:  bs.URLFor,
	}
	if err := runner.Run(ctx, b); err != nil {
		return fatal(StageRunPlugins, err)
	}
	return nil
}
