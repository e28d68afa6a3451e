// Package nav models the navigation tree of a documentation site: an ordered,
// acyclic mapping from display titles to content pages or further sub-groups.
package nav

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrBrokenLink indicates a navigation leaf references a content file that
	// does not exist under the content root.
	ErrBrokenLink = errors.New("navigation entry references nonexistent content")

	// ErrMalformedNav indicates a nav entry is not one of the recognized shapes.
	ErrMalformedNav = errors.New("malformed navigation entry")
)

// BrokenLinkError reports the offending navigation title and leaf path.
type BrokenLinkError struct {
	Title string
	Path  string
}

func (e *BrokenLinkError) Error() string {
	return fmt.Sprintf("broken navigation link %q: %s does not exist", e.Title, e.Path)
}
func (e *BrokenLinkError) Unwrap() error { return ErrBrokenLink }

// Node is one entry in the navigation tree. A node is either a leaf
// (Path set, Children nil) or a section (Children set, Path empty).
type Node struct {
	Title    string
	Path     string
	Children []*Node
}

// IsLeaf reports whether the node targets a single content document.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is an ordered sequence of top-level navigation nodes.
type Tree []*Node

// UnmarshalYAML decodes the three nav entry shapes the config dialect allows:
//
//	- page.md                     (bare path, title derived later)
//	- Title: page.md              (titled leaf)
//	- Title: [entry, entry, ...]  (titled section)
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var p string
		if err := value.Decode(&p); err != nil {
			return err
		}
		n.Path = p
		n.Title = TitleFromPath(p)
		return nil
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("%w: nav mapping must have exactly one key (line %d)", ErrMalformedNav, value.Line)
		}
		key, val := value.Content[0], value.Content[1]
		if err := key.Decode(&n.Title); err != nil {
			return err
		}
		switch val.Kind {
		case yaml.ScalarNode:
			return val.Decode(&n.Path)
		case yaml.SequenceNode:
			return val.Decode(&n.Children)
		default:
			return fmt.Errorf("%w: %q must map to a path or a list (line %d)", ErrMalformedNav, n.Title, val.Line)
		}
	default:
		return fmt.Errorf("%w: expected scalar or mapping (line %d)", ErrMalformedNav, value.Line)
	}
}

// Resolve walks the tree and confirms every leaf path exists under docsDir.
// The walk is finite (the tree is acyclic by construction) and the tree is
// returned to the caller unchanged; the first missing leaf aborts with a
// BrokenLinkError naming the entry's title and path.
func Resolve(tree Tree, docsDir string) error {
	for _, node := range tree {
		if err := resolveNode(node, docsDir); err != nil {
			return err
		}
	}
	return nil
}

func resolveNode(n *Node, docsDir string) error {
	if n.IsLeaf() {
		target := filepath.Join(docsDir, filepath.FromSlash(n.Path))
		if st, err := os.Stat(target); err != nil || st.IsDir() {
			return &BrokenLinkError{Title: n.Title, Path: n.Path}
		}
		return nil
	}
	for _, c := range n.Children {
		if err := resolveNode(c, docsDir); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits every node in depth-first declaration order. Returning a
// non-nil error from fn stops the walk.
func Walk(tree Tree, fn func(n *Node, depth int) error) error {
	var walk func(nodes []*Node, depth int) error
	walk = func(nodes []*Node, depth int) error {
		for _, n := range nodes {
			if err := fn(n, depth); err != nil {
				return err
			}
			if err := walk(n.Children, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(tree, 0)
}

// Pages returns every leaf node in declaration order.
func Pages(tree Tree) []*Node {
	var pages []*Node
	_ = Walk(tree, func(n *Node, _ int) error {
		if n.IsLeaf() {
			pages = append(pages, n)
		}
		return nil
	})
	return pages
}

// DuplicateSiblingTitles returns the titles that appear more than once within
// a sibling group anywhere in the tree. Duplicates are legal but consumers
// assume uniqueness, so callers surface these as warnings.
func DuplicateSiblingTitles(tree Tree) []string {
	var dups []string
	var inspect func(nodes []*Node)
	inspect = func(nodes []*Node) {
		seen := make(map[string]bool, len(nodes))
		for _, n := range nodes {
			if seen[n.Title] {
				dups = append(dups, n.Title)
			}
			seen[n.Title] = true
			inspect(n.Children)
		}
	}
	inspect(tree)
	return dups
}

// TitleFromPath derives a display title from a content path: the file stem
// with separators replaced by spaces and the first letter of each word
// upper-cased. index files title as "Index"; callers usually override from
// page frontmatter or the first heading.
func TitleFromPath(p string) string {
	base := filepath.Base(filepath.FromSlash(p))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	words := strings.Fields(stem)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
