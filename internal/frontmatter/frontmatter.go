// Package frontmatter separates `---` delimited YAML page metadata from
// Markdown bodies and decodes the fields the renderer cares about.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates a document opens a frontmatter block
// that is never closed.
var ErrMissingClosingDelimiter = errors.New("frontmatter: missing closing delimiter")

var delim = []byte("---")

// Meta is the decoded page metadata. Fields beyond the known set are kept in
// Extra so themes and plugins can reach them.
type Meta struct {
	Title       string         `yaml:"title,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Hidden      bool           `yaml:"hidden,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

// Split separates YAML frontmatter from the Markdown body. If the document
// does not start with a frontmatter delimiter, had is false and body is the
// full input.
func Split(content []byte) (meta []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := append(append([]byte{}, delim...), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		// Empty frontmatter block.
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := append(append(append([]byte{}, nl...), delim...), nl...)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes its frontmatter into Meta. Documents
// without frontmatter yield a zero Meta.
func Parse(content []byte) (Meta, []byte, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return Meta{}, nil, err
	}
	if !had || len(bytes.TrimSpace(raw)) == 0 {
		return Meta{}, body, nil
	}
	var m Meta
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Meta{}, nil, fmt.Errorf("frontmatter: decode: %w", err)
	}
	return m, body, nil
}

func detectNewline(content []byte) []byte {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return []byte("\r\n")
	}
	return []byte("\n")
}
