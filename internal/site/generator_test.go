package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/nav"
)

// buildFixture writes a docs tree, parses a configuration for it and returns
// the generator options pointing the build at a fresh output directory.
func buildFixture(t *testing.T, extraYAML string, files map[string]string) (*config.Config, string) {
	t.Helper()
	root := t.TempDir()
	docsDir := filepath.Join(root, "docs")
	for name, content := range files {
		p := filepath.Join(docsDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	doc := fmt.Sprintf("site_name: Test Site\ndocs_dir: %s\n%s", docsDir, extraYAML)
	cfg, err := config.Parse([]byte(doc), "test.yaml")
	require.NoError(t, err)
	return cfg, filepath.Join(root, "site")
}

func TestBuildRendersSite(t *testing.T) {
	cfg, siteDir := buildFixture(t, "", map[string]string{
		"index.md":       "# Welcome\n\nHome page.\n",
		"guide/setup.md": "# Setup\n\nInstall things.\n",
		"img/logo.png":   "not-really-a-png",
	})

	gen := NewGenerator(cfg, Options{SiteDir: siteDir})
	report, err := gen.Build(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, 2, report.PagesRendered)
	assert.Equal(t, 1, report.AssetsCopied)
	assert.NotEmpty(t, report.BuildID)
	assert.Len(t, report.Stages, 7)

	index, err := os.ReadFile(filepath.Join(siteDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Welcome")
	assert.Contains(t, string(index), "Home page.")

	for _, rel := range []string{
		"guide/setup/index.html",
		"img/logo.png",
		"404.html",
		"assets/sitegen.css",
		"search/search_index.json",
	} {
		_, err := os.Stat(filepath.Join(siteDir, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}
}

func TestBuildFlatURLs(t *testing.T) {
	cfg, siteDir := buildFixture(t, "use_directory_urls: false\n", map[string]string{
		"index.md":       "# Home\n",
		"guide/setup.md": "# Setup\n",
	})

	_, err := NewGenerator(cfg, Options{SiteDir: siteDir}).Build(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(siteDir, "guide", "setup.html"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(siteDir, "guide", "setup"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildBrokenNavEntry(t *testing.T) {
	cfg, siteDir := buildFixture(t,
		"nav:\n  - Home: index.md\n  - Guide: missing.md\n",
		map[string]string{"index.md": "# Home\n"})

	_, err := NewGenerator(cfg, Options{SiteDir: siteDir}).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, nav.ErrBrokenLink))

	var broken *nav.BrokenLinkError
	require.True(t, errors.As(err, &broken))
	assert.Equal(t, "Guide", broken.Title)
	assert.Equal(t, "missing.md", broken.Path)

	// No partial output: the failure happens before any page is written.
	_, statErr := os.Stat(filepath.Join(siteDir, "index.html"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildFailurePreservesPreviousOutput(t *testing.T) {
	root := t.TempDir()
	docsDir := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "index.md"), []byte("# Home\n"), 0o644))
	siteDir := filepath.Join(root, "site")

	good, err := config.Parse([]byte(fmt.Sprintf("site_name: Test Site\ndocs_dir: %s\n", docsDir)), "test.yaml")
	require.NoError(t, err)
	_, err = NewGenerator(good, Options{SiteDir: siteDir}).Build(context.Background())
	require.NoError(t, err)

	bad, err := config.Parse([]byte(fmt.Sprintf(
		"site_name: Test Site\ndocs_dir: %s\nnav:\n  - Guide: missing.md\n", docsDir)), "test.yaml")
	require.NoError(t, err)
	_, err = NewGenerator(bad, Options{SiteDir: siteDir}).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, nav.ErrBrokenLink))

	// The artifact from the last good build survives the failed rebuild.
	_, statErr := os.Stat(filepath.Join(siteDir, "index.html"))
	assert.NoError(t, statErr)
}

func TestBuildMissingThemeLogo(t *testing.T) {
	cfg, siteDir := buildFixture(t, "theme:\n  name: material\n  logo: img/logo.svg\n",
		map[string]string{"index.md": "# Home\n"})

	_, err := NewGenerator(cfg, Options{SiteDir: siteDir}).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrValidation))

	var verr *config.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "theme.logo", verr.Field)
}

func TestBuildRendersThemeAssets(t *testing.T) {
	cfg, siteDir := buildFixture(t,
		"theme:\n  name: material\n  logo: img/logo.svg\n  favicon: img/favicon.ico\n",
		map[string]string{
			"index.md":        "# Home\n",
			"img/logo.svg":    "<svg/>",
			"img/favicon.ico": "icon-bytes",
		})

	_, err := NewGenerator(cfg, Options{SiteDir: siteDir}).Build(context.Background())
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(siteDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `<link rel="icon" href="img/favicon.ico">`)
	assert.Contains(t, string(index), `src="img/logo.svg"`)
}

func TestBuildSiteDirOverride(t *testing.T) {
	root := t.TempDir()
	docsDir := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "index.md"), []byte("# Home\n"), 0o644))

	configured := filepath.Join(root, "configured-site")
	override := filepath.Join(root, "served-site")
	doc := fmt.Sprintf("site_name: Test Site\ndocs_dir: %s\nsite_dir: %s\n", docsDir, configured)
	cfg, err := config.Parse([]byte(doc), "test.yaml")
	require.NoError(t, err)

	_, err = NewGenerator(cfg, Options{SiteDir: override}).Build(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(override, "index.html"))
	assert.NoError(t, err)
	_, err = os.Stat(configured)
	assert.True(t, os.IsNotExist(err))
}

func TestBuildRewritesMarkdownLinks(t *testing.T) {
	cfg, siteDir := buildFixture(t, "", map[string]string{
		"index.md":       "[Setup](guide/setup.md)\n",
		"guide/setup.md": "[Back](../index.md)\n",
	})

	_, err := NewGenerator(cfg, Options{SiteDir: siteDir}).Build(context.Background())
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(siteDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="guide/setup/"`)

	setup, err := os.ReadFile(filepath.Join(siteDir, "guide", "setup", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(setup), `href="../../"`)
}

func TestBuildBrokenLinkWarns(t *testing.T) {
	cfg, siteDir := buildFixture(t, "", map[string]string{
		"index.md": "[gone](missing.md)\n",
	})

	report, err := NewGenerator(cfg, Options{SiteDir: siteDir}).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0].Message, "broken link in index.md")
	assert.Contains(t, report.Warnings[0].Message, "missing.md")
}

func TestBuildStrictPromotesWarnings(t *testing.T) {
	cfg, siteDir := buildFixture(t, "strict: true\n", map[string]string{
		"index.md": "[gone](missing.md)\n",
	})

	report, err := NewGenerator(cfg, Options{SiteDir: siteDir}).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStrictWarnings))
	require.NotNil(t, report)
	assert.NotEmpty(t, report.Warnings)
}

func TestBuildMissingDocsDir(t *testing.T) {
	root := t.TempDir()
	doc := fmt.Sprintf("site_name: Test Site\ndocs_dir: %s\n", filepath.Join(root, "nope"))
	cfg, err := config.Parse([]byte(doc), "test.yaml")
	require.NoError(t, err)

	_, err = NewGenerator(cfg, Options{SiteDir: filepath.Join(root, "site")}).Build(context.Background())
	assert.True(t, errors.Is(err, ErrDocsDirNotFound))
}

func TestBuildUnknownExtensionWarns(t *testing.T) {
	cfg, siteDir := buildFixture(t,
		"markdown_extensions:\n  - tables\n  - made_up_extension\n",
		map[string]string{"index.md": "# Home\n"})

	report, err := NewGenerator(cfg, Options{SiteDir: siteDir}).Build(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0].Message, "made_up_extension")
}

func TestBuildCanceledContext(t *testing.T) {
	cfg, siteDir := buildFixture(t, "", map[string]string{"index.md": "# Home\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGenerator(cfg, Options{SiteDir: siteDir}).Build(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
