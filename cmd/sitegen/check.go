package main

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/nav"
)

// runCheck validates the configuration and content without writing output:
// the config must load, every navigation leaf must resolve, and intra-site
// Markdown links are audited. Link findings are warnings unless strict mode
// is on.
func runCheck() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	tree := cfg.Nav
	if len(tree) == 0 {
		if tree, err = nav.Infer(cfg.DocsDir); err != nil {
			return err
		}
		slog.Info("Navigation inferred from content directory", "pages", len(nav.Pages(tree)))
	}

	if err := nav.Resolve(tree, cfg.DocsDir); err != nil {
		return err
	}
	slog.Info("Navigation resolved", "entries", len(nav.Pages(tree)))

	for _, title := range nav.DuplicateSiblingTitles(tree) {
		slog.Warn("Duplicate sibling navigation title", "title", title)
	}

	issues, err := auditLinks(cfg)
	if err != nil {
		return err
	}
	if issues > 0 {
		slog.Warn("Link audit found issues", "count", issues)
		if cfg.Strict {
			return fmt.Errorf("check failed: %d broken link(s) in strict mode", issues)
		}
	}

	slog.Info("Configuration valid", "site_name", cfg.SiteName)
	return nil
}

// auditLinks extracts Markdown links from every page and verifies that
// relative .md destinations resolve to files under the content root.
func auditLinks(cfg *config.Config) (int, error) {
	renderer, _ := markdown.New(cfg.MarkdownExtensions)

	issues := 0
	err := filepath.WalkDir(cfg.DocsDir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if ext := strings.ToLower(filepath.Ext(p)); ext != ".md" && ext != ".markdown" {
			return nil
		}
		rel, err := filepath.Rel(cfg.DocsDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		raw, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		_, body, err := frontmatter.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}

		for _, link := range renderer.ExtractLinks(body) {
			dest := link.Destination
			if i := strings.IndexByte(dest, '#'); i >= 0 {
				dest = dest[:i]
			}
			if dest == "" || strings.Contains(dest, "://") || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "mailto:") {
				continue
			}
			if !strings.HasSuffix(strings.ToLower(dest), ".md") {
				continue
			}
			resolved := path.Clean(path.Join(path.Dir(rel), dest))
			target := filepath.Join(cfg.DocsDir, filepath.FromSlash(resolved))
			if _, statErr := os.Stat(target); statErr != nil {
				slog.Warn("Broken link", "page", rel, "destination", link.Destination)
				issues++
			}
		}
		return nil
	})
	return issues, err
}
