package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
	"git.home.luguber.info/inful/sitegen/internal/nav"
	"git.home.luguber.info/inful/sitegen/internal/theme"
)

// stageRenderPages reads, renders and writes every page. Titles resolve in
// order: frontmatter title, first level-1 heading, title derived from the
// source path.
func stageRenderPages(ctx context.Context, bs *BuildState) error {
	for _, page := range bs.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := renderPage(bs, page); err != nil {
			return fatal(StageRenderPages, fmt.Errorf("%w: %s: %v", ErrRender, page.SourcePath, err))
		}
		bs.Report.PagesRendered++
	}
	return nil
}

func renderPage(bs *BuildState, page *Page) error {
	raw, err := os.ReadFile(filepath.Join(bs.DocsDir, filepath.FromSlash(page.SourcePath)))
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	meta, body, err := frontmatter.Parse(raw)
	if err != nil {
		return err
	}
	page.Meta = meta
	page.Body = body

	page.Title = meta.Title
	if page.Title == "" {
		page.Title = bs.Renderer.FirstHeading(body)
	}
	if page.Title == "" {
		page.Title = nav.TitleFromPath(page.SourcePath)
	}

	page.HTML, err = bs.Renderer.Render(body)
	if err != nil {
		return err
	}
	page.Text = bs.Renderer.PlainText(body)

	out := filepath.Join(bs.SiteDir, filepath.FromSlash(page.OutputPath))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data := &theme.Page{
		Site:        bs.Site,
		Title:       page.Title,
		Description: meta.Description,
		Content:     template.HTML(page.HTML),
		URL:         page.URL,
		EditURL:     editURL(bs, page),
		Nav:         navItems(bs, page),
		Root:        page.RootPrefix(),
	}

	var buf bytes.Buffer
	if err := bs.Theme.RenderPage(&buf, data); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// navItems projects the navigation tree into per-page sidebar data with
// URLs relative to the page and the page's own entry marked active.
func navItems(bs *BuildState, page *Page) []theme.NavItem {
	root := page.RootPrefix()
	var convert func(nodes []*nav.Node) []theme.NavItem
	convert = func(nodes []*nav.Node) []theme.NavItem {
		items := make([]theme.NavItem, 0, len(nodes))
		for _, n := range nodes {
			item := theme.NavItem{Title: n.Title}
			if n.IsLeaf() {
				url, _ := PageURL(n.Path, bs.Config.DirectoryURLs())
				item.URL = relativeHref(root, url)
				item.Active = n.Path == page.SourcePath
			} else {
				item.Children = convert(n.Children)
			}
			items = append(items, item)
		}
		return items
	}
	return convert(bs.Nav)
}

func relativeHref(root, url string) string {
	href := root + url
	if href == "" {
		return "."
	}
	return href
}

func editURL(bs *BuildState, page *Page) string {
	cfg := bs.Config
	if cfg.RepoURL == "" || cfg.EditURI == "" {
		return ""
	}
	return strings.TrimRight(cfg.RepoURL, "/") + "/" + strings.Trim(cfg.EditURI, "/") + "/" + page.SourcePath
}
