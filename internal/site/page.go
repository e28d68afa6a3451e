package site

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
)

// Page is one content document on its way through the pipeline.
type Page struct {
	// SourcePath is the docs-relative, slash-separated source file path.
	SourcePath string
	Title      string
	Meta       frontmatter.Meta
	Body       []byte // Markdown with frontmatter removed
	HTML       []byte // rendered body
	Text       string // plain text, for the search index
	// URL is the site-relative location ("" for the root page,
	// "guides/intro/" with directory URLs, "guides/intro.html" without).
	URL string
	// OutputPath is the site-relative file the page is written to.
	OutputPath string
}

// PageURL maps a docs-relative source path to its URL and output file path.
// index.md and README.md map to their directory's index; other pages map to
// pretty directory URLs when directoryURLs is set and flat .html paths
// otherwise.
func PageURL(sourcePath string, directoryURLs bool) (url, outputPath string) {
	p := path.Clean(strings.ReplaceAll(sourcePath, "\\", "/"))
	stem := strings.TrimSuffix(p, path.Ext(p))

	base := path.Base(stem)
	if base == "index" || base == "README" || base == "readme" {
		dir := path.Dir(stem)
		if dir == "." {
			return "", "index.html"
		}
		return dir + "/", dir + "/index.html"
	}

	if directoryURLs {
		return stem + "/", stem + "/index.html"
	}
	return stem + ".html", stem + ".html"
}

// Depth returns how many directories deep the page URL is, used to compute
// the relative prefix back to the site root.
func (p *Page) Depth() int {
	return strings.Count(p.URL, "/")
}

// RootPrefix is the relative path from the page back to the site root.
func (p *Page) RootPrefix() string {
	return strings.Repeat("../", p.Depth())
}
