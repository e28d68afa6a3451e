package markdown

import (
	"fmt"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"

	"git.home.luguber.info/inful/sitegen/internal/slug"
)

// slugIDs generates heading anchor ids from heading text with the same slug
// rules used elsewhere in the site, so anchors fold diacritics and stay
// URL-safe. Duplicate headings get a numeric suffix.
type slugIDs struct {
	used map[string]bool
}

func newSlugIDs() parser.IDs {
	return &slugIDs{used: make(map[string]bool)}
}

func (s *slugIDs) Generate(value []byte, _ gmast.NodeKind) []byte {
	id := slug.Make(string(value))
	unique := id
	for i := 1; s.used[unique]; i++ {
		unique = fmt.Sprintf("%s-%d", id, i)
	}
	s.used[unique] = true
	return []byte(unique)
}

// Put records an explicitly assigned id (attr_list syntax) so generated ids
// never collide with it.
func (s *slugIDs) Put(value []byte) {
	s.used[string(value)] = true
}
