package plugins

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// redirectsPlugin emits stub pages that forward moved source paths to their
// new locations. Configured as:
//
//	plugins:
//	  - redirects:
//	      redirect_maps:
//	        old/page.md: new/page.md
type redirectsPlugin struct {
	// moves maps old docs-relative source paths to new ones.
	moves map[string]string
}

func newRedirectsPlugin(spec config.PluginSpec) (Plugin, error) {
	raw, ok := spec.Options["redirect_maps"]
	if !ok {
		return nil, &config.ValidationError{Field: "plugins.redirects", Reason: "redirect_maps option is required"}
	}
	rawMap, ok := raw.(map[string]any)
	if !ok {
		return nil, &config.ValidationError{Field: "plugins.redirects", Reason: "redirect_maps must be a mapping"}
	}
	moves := make(map[string]string, len(rawMap))
	for from, to := range rawMap {
		target, ok := to.(string)
		if !ok || target == "" {
			return nil, &config.ValidationError{Field: "plugins.redirects", Reason: "redirect target for " + from + " must be a path"}
		}
		moves[from] = target
	}
	return &redirectsPlugin{moves: moves}, nil
}

func (p *redirectsPlugin) Name() string { return "redirects" }

var redirectStub = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta http-equiv="refresh" content="0; url={{.}}">
  <link rel="canonical" href="{{.}}">
</head>
<body>Redirecting to <a href="{{.}}">{{.}}</a>&hellip;</body>
</html>
`))

func (p *redirectsPlugin) Run(_ context.Context, b *BuildContext) error {
	// Deterministic emit order for reproducible builds.
	froms := make([]string, 0, len(p.moves))
	for from := range p.moves {
		froms = append(froms, from)
	}
	sort.Strings(froms)

	for _, from := range froms {
		to := p.moves[from]
		targetURL, ok := b.URLFor(to)
		if !ok {
			return fmt.Errorf("redirect target does not exist: %s -> %s", from, to)
		}
		stubURL, _ := sourceToURL(from, b.Config.DirectoryURLs())

		out := filepath.Join(b.SiteDir, filepath.FromSlash(stubHTMLPath(from, b.Config.DirectoryURLs())))
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("create redirect directory: %w", err)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create redirect stub: %w", err)
		}
		rel := relativeURL(stubURL, targetURL)
		werr := redirectStub.Execute(f, rel)
		cerr := f.Close()
		if werr != nil {
			return fmt.Errorf("write redirect stub: %w", werr)
		}
		if cerr != nil {
			return fmt.Errorf("close redirect stub: %w", cerr)
		}
	}
	return nil
}

// sourceToURL mirrors the site package's page URL mapping for stub paths.
func sourceToURL(sourcePath string, directoryURLs bool) (string, bool) {
	stem := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath))
	if filepath.Base(stem) == "index" || filepath.Base(stem) == "README" {
		stem = filepath.Dir(stem)
		if stem == "." {
			return "", true
		}
		return stem + "/", true
	}
	if directoryURLs {
		return stem + "/", true
	}
	return stem + ".html", true
}

func stubHTMLPath(sourcePath string, directoryURLs bool) string {
	url, _ := sourceToURL(sourcePath, directoryURLs)
	if url == "" {
		return "index.html"
	}
	if strings.HasSuffix(url, "/") {
		return url + "index.html"
	}
	return url
}

// relativeURL computes a relative href from one site-relative URL to another.
func relativeURL(from, to string) string {
	depth := strings.Count(from, "/")
	return strings.Repeat("../", depth) + to
}
