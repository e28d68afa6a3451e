// Package markdown assembles a Goldmark renderer from the configuration's
// ordered extension specs and provides the AST analysis helpers the build
// pipeline needs (title fallback, link extraction, plain-text extraction).
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmext "github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// Markdown renders Markdown bodies to HTML with the configured extension set.
type Markdown struct {
	md goldmark.Markdown
}

// New builds a renderer from the ordered extension specs. List order
// determines registration precedence. Unknown extension names
// are returned for the caller to report (warning, or fatal in strict mode);
// the renderer is still usable with the extensions that did resolve.
func New(specs []config.ExtensionSpec) (*Markdown, []string) {
	var (
		exts       []goldmark.Extender
		parserOpts []parser.Option
		unknown    []string
	)

	for _, spec := range specs {
		switch spec.Name {
		case "toc":
			parserOpts = append(parserOpts, parser.WithAutoHeadingID())
		case "attr_list":
			parserOpts = append(parserOpts, parser.WithAttribute())
		case "tables":
			exts = append(exts, gmext.Table)
		case "footnotes":
			exts = append(exts, gmext.Footnote)
		case "def_list":
			exts = append(exts, gmext.DefinitionList)
		case "smarty", "smartsymbols":
			exts = append(exts, gmext.Typographer)
		case "linkify":
			exts = append(exts, gmext.Linkify)
		case "strikethrough", "pymdownx.tilde":
			exts = append(exts, gmext.Strikethrough)
		case "tasklist", "pymdownx.tasklist":
			exts = append(exts, gmext.TaskList)
		case "admonition":
			exts = append(exts, Admonition)
		case "pymdownx.superfences", "pymdownx.highlight", "pymdownx.inlinehilite":
			// Fenced code with language classes is core CommonMark behavior
			// here; these names are accepted for config compatibility.
		default:
			unknown = append(unknown, spec.Name)
		}
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOpts...),
		// Documentation sources routinely embed raw HTML snippets.
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &Markdown{md: md}, unknown
}

// Render converts a Markdown body (frontmatter already removed) to HTML.
// Heading ids are generated per document through the slug rules.
func (m *Markdown) Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(newSlugIDs()))
	if err := m.md.Convert(body, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// FirstHeading returns the text of the first level-1 heading, or "" when the
// document has none. Used as the page title fallback when frontmatter does
// not set one.
func (m *Markdown) FirstHeading(body []byte) string {
	root := m.md.Parser().Parse(text.NewReader(body))
	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok && h.Level == 1 {
			title = string(textOf(h, body))
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return title
}

// PlainText extracts the rendered-order text content of a document, used by
// the search index. Code block contents are included; markup is not.
func (m *Markdown) PlainText(body []byte) string {
	root := m.md.Parser().Parse(text.NewReader(body))
	var buf bytes.Buffer
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Text:
			buf.Write(node.Segment.Value(body))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.FencedCodeBlock, *gmast.CodeBlock:
			writeLines(&buf, n, body)
		case *gmast.Paragraph, *gmast.Heading:
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
		}
		return gmast.WalkContinue, nil
	})
	return string(bytes.Join(bytes.Fields(buf.Bytes()), []byte(" ")))
}

func writeLines(buf *bytes.Buffer, n gmast.Node, source []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
		buf.WriteByte(' ')
	}
}

func textOf(n gmast.Node, source []byte) []byte {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*gmast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return gmast.WalkContinue, nil
	})
	return bytes.TrimSpace(buf.Bytes())
}
