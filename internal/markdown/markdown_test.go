package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

func newRenderer(t *testing.T, names ...string) *Markdown {
	t.Helper()
	specs := make([]config.ExtensionSpec, 0, len(names))
	for _, n := range names {
		specs = append(specs, config.ExtensionSpec{Name: n})
	}
	md, unknown := New(specs)
	require.Empty(t, unknown, "all extension names should resolve")
	return md
}

func TestRenderBasic(t *testing.T) {
	md := newRenderer(t)
	out, err := md.Render([]byte("# Title\n\nSome *emphasis*.\n"))
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<em>emphasis</em>")
}

func TestRenderTables(t *testing.T) {
	md := newRenderer(t, "tables")
	out, err := md.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<table>")
}

func TestTablesDisabledWithoutExtension(t *testing.T) {
	md := newRenderer(t)
	out, err := md.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<table>")
}

func TestTocAddsHeadingIDs(t *testing.T) {
	md := newRenderer(t, "toc")
	out, err := md.Render([]byte("## Getting Started\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `id="getting-started"`)
}

func TestHeadingIDsFoldDiacritics(t *testing.T) {
	md := newRenderer(t, "toc")
	out, err := md.Render([]byte("## Déjà Vu\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `id="deja-vu"`)
}

func TestHeadingIDsDeduplicated(t *testing.T) {
	md := newRenderer(t, "toc")
	out, err := md.Render([]byte("## Setup\n\ntext\n\n## Setup\n"))
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, `id="setup"`)
	assert.Contains(t, html, `id="setup-1"`)
}

func TestHeadingIDsResetPerDocument(t *testing.T) {
	md := newRenderer(t, "toc")
	for i := 0; i < 2; i++ {
		out, err := md.Render([]byte("## Setup\n"))
		require.NoError(t, err)
		assert.Contains(t, string(out), `id="setup"`)
		assert.NotContains(t, string(out), `id="setup-1"`)
	}
}

func TestRawHTMLPassesThrough(t *testing.T) {
	md := newRenderer(t)
	out, err := md.Render([]byte("before\n\n<div class=\"note\">hi</div>\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `<div class="note">hi</div>`)
}

func TestUnknownExtensionsReported(t *testing.T) {
	md, unknown := New([]config.ExtensionSpec{
		{Name: "tables"},
		{Name: "not_a_real_extension"},
		{Name: "also_bogus"},
	})
	require.NotNil(t, md)
	assert.Equal(t, []string{"not_a_real_extension", "also_bogus"}, unknown)
}

func TestFirstHeading(t *testing.T) {
	md := newRenderer(t)
	body := []byte("intro text\n\n# The Real Title\n\n# Second\n")
	assert.Equal(t, "The Real Title", md.FirstHeading(body))
}

func TestFirstHeadingAbsent(t *testing.T) {
	md := newRenderer(t)
	assert.Equal(t, "", md.FirstHeading([]byte("## only level two\n")))
}

func TestPlainText(t *testing.T) {
	md := newRenderer(t)
	body := []byte("# Install\n\nRun the `setup` command to *begin*.\n")
	text := md.PlainText(body)
	assert.Contains(t, text, "Install")
	assert.Contains(t, text, "Run the")
	assert.Contains(t, text, "begin")
	assert.NotContains(t, text, "#")
	assert.NotContains(t, text, "*")
}

func TestPlainTextIncludesCodeBlocks(t *testing.T) {
	md := newRenderer(t)
	body := []byte("```sh\nsitegen build\n```\n")
	assert.Contains(t, md.PlainText(body), "sitegen build")
}

func TestAdmonitionRender(t *testing.T) {
	md := newRenderer(t, "admonition")
	body := strings.Join([]string{
		`!!! note "Remember"`,
		"    Indented body line.",
		"",
		"after",
	}, "\n")
	out, err := md.Render([]byte(body))
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, `<div class="admonition note">`)
	assert.Contains(t, html, `<p class="admonition-title">Remember</p>`)
	assert.Contains(t, html, "Indented body line.")
	assert.Contains(t, html, "after")
}

func TestAdmonitionDefaultTitle(t *testing.T) {
	md := newRenderer(t, "admonition")
	out, err := md.Render([]byte("!!! warning\n    Careful now.\n"))
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, `<div class="admonition warning">`)
	assert.Contains(t, html, `<p class="admonition-title">Warning</p>`)
}
