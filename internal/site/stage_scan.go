package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/nav"
)

// stageScanDocs resolves the navigation tree against the content root and
// inventories the content directory: Markdown files become pages, everything
// else becomes an asset to copy. Pages outside the navigation tree are still
// rendered; they are just not linked from the sidebar.
func stageScanDocs(_ context.Context, bs *BuildState) error {
	if st, err := os.Stat(bs.DocsDir); err != nil || !st.IsDir() {
		return fatal(StageScanDocs, fmt.Errorf("%w: %s", ErrDocsDirNotFound, bs.DocsDir))
	}

	tree := bs.Config.Nav
	if len(tree) == 0 {
		inferred, err := nav.Infer(bs.DocsDir)
		if err != nil {
			return fatal(StageScanDocs, err)
		}
		tree = inferred
	}

	// Every leaf must resolve before anything is rendered; a broken link
	// aborts the build with the offending title and path (no partial output).
	if err := nav.Resolve(tree, bs.DocsDir); err != nil {
		return fatal(StageScanDocs, err)
	}
	bs.Nav = tree

	// Theme asset references live inside the content tree, which may only
	// exist now (docs_repo checkouts), so they are checked here rather than
	// at config load.
	themeAssets := []struct{ field, path string }{
		{"theme.logo", bs.Config.Theme.Logo},
		{"theme.favicon", bs.Config.Theme.Favicon},
	}
	for _, a := range themeAssets {
		if a.path == "" {
			continue
		}
		target := filepath.Join(bs.DocsDir, filepath.FromSlash(a.path))
		if st, err := os.Stat(target); err != nil || st.IsDir() {
			return fatal(StageScanDocs, &config.ValidationError{
				Field:  a.field,
				Reason: "referenced asset does not exist: " + a.path,
			})
		}
	}

	for _, title := range nav.DuplicateSiblingTitles(tree) {
		bs.addWarning(StageScanDocs, "duplicate sibling navigation title: "+title)
	}

	bs.pagesBySource = make(map[string]*Page)
	err := filepath.WalkDir(bs.DocsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && name != "." {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(bs.DocsDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".md" && ext != ".markdown" {
			bs.Assets = append(bs.Assets, rel)
			return nil
		}

		url, out := PageURL(rel, bs.Config.DirectoryURLs())
		page := &Page{SourcePath: rel, URL: url, OutputPath: out}
		bs.Pages = append(bs.Pages, page)
		bs.pagesBySource[rel] = page
		return nil
	})
	if err != nil {
		return fatal(StageScanDocs, fmt.Errorf("walk content directory: %w", err))
	}
	return nil
}
