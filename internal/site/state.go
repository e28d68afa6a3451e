package site

import (
	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/nav"
	"git.home.luguber.info/inful/sitegen/internal/theme"
)

// BuildState is threaded through the stage pipeline. It holds the immutable
// configuration snapshot plus everything the stages accumulate; it is
// discarded when the build finishes.
type BuildState struct {
	Config  *config.Config
	BuildID string

	// DocsDir is the effective content root for this build: the configured
	// docs_dir, or the directory inside a docs_repo checkout.
	DocsDir string
	SiteDir string

	Nav    nav.Tree
	Pages  []*Page
	Assets []string // docs-relative non-Markdown files to copy

	Renderer *markdown.Markdown
	Theme    *theme.Renderer
	Site     *theme.Site

	Report *Report

	pagesBySource map[string]*Page
}

// PageBySource returns the page rendered from a docs-relative source path.
func (bs *BuildState) PageBySource(sourcePath string) (*Page, bool) {
	p, ok := bs.pagesBySource[sourcePath]
	return p, ok
}

// URLFor maps a docs-relative source path to its site-relative URL.
func (bs *BuildState) URLFor(sourcePath string) (string, bool) {
	if p, ok := bs.pagesBySource[sourcePath]; ok {
		return p.URL, true
	}
	return "", false
}

func (bs *BuildState) addWarning(stage StageName, msg string) {
	bs.Report.Warnings = append(bs.Report.Warnings, Warning{Stage: stage, Message: msg})
}
