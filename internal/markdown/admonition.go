package markdown

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Admonition implements the `!!! note "Title"` callout block syntax used by
// Python-Markdown configurations. The body is the following 4-space indented
// block; the rendered form is a <div class="admonition TYPE"> with a title
// paragraph.
var Admonition goldmark.Extender = &admonitionExtender{}

// KindAdmonition is the node kind of admonition blocks.
var KindAdmonition = gmast.NewNodeKind("Admonition")

// AdmonitionNode is an admonition block in the parsed AST.
type AdmonitionNode struct {
	gmast.BaseBlock
	AdmonitionType string
	Title          string
}

// Kind implements ast.Node.
func (n *AdmonitionNode) Kind() gmast.NodeKind { return KindAdmonition }

// Dump implements ast.Node.
func (n *AdmonitionNode) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{
		"Type":  n.AdmonitionType,
		"Title": n.Title,
	}, nil)
}

type admonitionExtender struct{}

func (e *admonitionExtender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&admonitionParser{}, 799),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&admonitionHTMLRenderer{}, 500),
	))
}

var admonitionMarker = regexp.MustCompile(`^!!!\s+([A-Za-z0-9_-]+)(?:\s+"([^"]*)")?\s*$`)

const admonitionIndent = 4

type admonitionParser struct{}

func (p *admonitionParser) Trigger() []byte { return []byte{'!'} }

func (p *admonitionParser) Open(parent gmast.Node, reader text.Reader, pc parser.Context) (gmast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || line[pos] != '!' {
		return nil, parser.NoChildren
	}
	m := admonitionMarker.FindSubmatch(bytes.TrimRight(line[pos:], "\r\n"))
	if m == nil {
		return nil, parser.NoChildren
	}
	node := &AdmonitionNode{
		AdmonitionType: string(bytes.ToLower(m[1])),
		Title:          string(m[2]),
	}
	reader.Advance(len(line) - 1)
	return node, parser.HasChildren
}

func (p *admonitionParser) Continue(node gmast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, _ := reader.PeekLine()
	if util.IsBlank(line) {
		return parser.Continue | parser.HasChildren
	}
	pos, padding := util.IndentPosition(line, reader.LineOffset(), admonitionIndent)
	if pos < 0 {
		return parser.Close
	}
	reader.AdvanceAndSetPadding(pos, padding)
	return parser.Continue | parser.HasChildren
}

func (p *admonitionParser) Close(node gmast.Node, reader text.Reader, pc parser.Context) {}

func (p *admonitionParser) CanInterruptParagraph() bool { return false }

func (p *admonitionParser) CanAcceptIndentedLine() bool { return false }

type admonitionHTMLRenderer struct{}

func (r *admonitionHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindAdmonition, r.render)
}

func (r *admonitionHTMLRenderer) render(w util.BufWriter, source []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	n := node.(*AdmonitionNode)
	if entering {
		_, _ = w.WriteString(`<div class="admonition `)
		_, _ = w.Write(util.EscapeHTML([]byte(n.AdmonitionType)))
		_, _ = w.WriteString("\">\n")
		title := n.Title
		if title == "" {
			title = defaultAdmonitionTitle(n.AdmonitionType)
		}
		_, _ = w.WriteString(`<p class="admonition-title">`)
		_, _ = w.Write(util.EscapeHTML([]byte(title)))
		_, _ = w.WriteString("</p>\n")
	} else {
		_, _ = w.WriteString("</div>\n")
	}
	return gmast.WalkContinue, nil
}

func defaultAdmonitionTitle(typ string) string {
	if typ == "" {
		return "Note"
	}
	return string(bytes.ToUpper([]byte{typ[0]})) + typ[1:]
}
