package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

func extract(t *testing.T, body string) []Link {
	t.Helper()
	md, unknown := New([]config.ExtensionSpec{{Name: "linkify"}})
	require.Empty(t, unknown)
	return md.ExtractLinks([]byte(body))
}

func TestExtractInlineLink(t *testing.T) {
	links := extract(t, "see [the guide](guide.md) for details\n")
	require.Len(t, links, 1)
	assert.Equal(t, LinkKindInline, links[0].Kind)
	assert.Equal(t, "guide.md", links[0].Destination)
}

func TestExtractImage(t *testing.T) {
	links := extract(t, "![logo](img/logo.png)\n")
	require.Len(t, links, 1)
	assert.Equal(t, LinkKindImage, links[0].Kind)
	assert.Equal(t, "img/logo.png", links[0].Destination)
}

func TestExtractAutoLink(t *testing.T) {
	links := extract(t, "visit <https://example.com> now\n")
	require.NotEmpty(t, links)
	assert.Equal(t, LinkKindAuto, links[0].Kind)
	assert.Equal(t, "https://example.com", links[0].Destination)
}

func TestExtractReferenceDefinitions(t *testing.T) {
	body := "see [docs][d]\n\n[d]: reference.md\n[a]: another.md\n"
	links := extract(t, body)

	var defs []string
	for _, l := range links {
		if l.Kind == LinkKindReferenceDefinition {
			defs = append(defs, l.Destination)
		}
	}
	// Definitions are reported in label order.
	assert.Equal(t, []string{"another.md", "reference.md"}, defs)

	var inline []string
	for _, l := range links {
		if l.Kind == LinkKindInline {
			inline = append(inline, l.Destination)
		}
	}
	assert.Equal(t, []string{"reference.md"}, inline)
}

func TestExtractNoLinks(t *testing.T) {
	links := extract(t, "plain prose only\n")
	assert.Empty(t, links)
}
