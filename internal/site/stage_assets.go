package site

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// stageCopyAssets copies non-Markdown content files into the output tree,
// writes the theme's bundled assets and renders the 404 page.
func stageCopyAssets(ctx context.Context, bs *BuildState) error {
	for _, rel := range bs.Assets {
		if err := ctx.Err(); err != nil {
			return err
		}
		src := filepath.Join(bs.DocsDir, filepath.FromSlash(rel))
		dst := filepath.Join(bs.SiteDir, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			return fatal(StageCopyAssets, fmt.Errorf("copy asset %s: %w", rel, err))
		}
		bs.Report.AssetsCopied++
	}

	if err := bs.Theme.WriteStaticAssets(bs.SiteDir); err != nil {
		return fatal(StageCopyAssets, err)
	}

	f, err := os.Create(filepath.Join(bs.SiteDir, "404.html"))
	if err != nil {
		return fatal(StageCopyAssets, fmt.Errorf("create 404 page: %w", err))
	}
	defer f.Close()
	if err := bs.Theme.RenderNotFound(f, bs.Site); err != nil {
		return fatal(StageCopyAssets, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
