package site

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// stagePostProcess rewrites intra-site Markdown hrefs in the emitted HTML to
// their rendered URLs. Links to sources that did not produce a page are
// recorded as warnings; strict mode turns those into a build failure.
func stagePostProcess(ctx context.Context, bs *BuildState) error {
	for _, page := range bs.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := rewritePageLinks(bs, page); err != nil {
			return fatal(StagePostProcess, fmt.Errorf("post-process %s: %w", page.OutputPath, err))
		}
	}
	return nil
}

func rewritePageLinks(bs *BuildState, page *Page) error {
	out := filepath.Join(bs.SiteDir, filepath.FromSlash(page.OutputPath))
	data, err := os.ReadFile(out)
	if err != nil {
		return err
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse rendered html: %w", err)
	}

	changed := false
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for i, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if rewritten, ok := rewriteHref(bs, page, attr.Val); ok {
					n.Attr[i].Val = rewritten
					changed = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	if !changed {
		return nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return fmt.Errorf("serialize rewritten html: %w", err)
	}
	return os.WriteFile(out, buf.Bytes(), 0o644)
}

// rewriteHref maps an href pointing at a Markdown source to the rendered
// page URL, relative to the linking page. Absolute URLs, anchors and
// non-Markdown targets pass through untouched.
func rewriteHref(bs *BuildState, page *Page, href string) (string, bool) {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "/") {
		return "", false
	}
	if strings.Contains(href, "://") || strings.HasPrefix(href, "mailto:") {
		return "", false
	}

	target, fragment := href, ""
	if i := strings.IndexByte(href, '#'); i >= 0 {
		target, fragment = href[:i], href[i:]
	}
	if !strings.HasSuffix(strings.ToLower(target), ".md") {
		return "", false
	}

	// Resolve relative to the linking page's source directory.
	resolved := path.Clean(path.Join(path.Dir(page.SourcePath), target))
	dest, ok := bs.PageBySource(resolved)
	if !ok {
		bs.addWarning(StagePostProcess, fmt.Sprintf("broken link in %s: %s", page.SourcePath, href))
		return "", false
	}
	return relativeHref(page.RootPrefix(), dest.URL) + fragment, true
}
