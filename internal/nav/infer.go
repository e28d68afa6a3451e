package nav

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Infer builds a navigation tree from the content directory listing when the
// configuration omits nav. Ordering: index.md first within each directory,
// then files alphabetically, then subdirectories alphabetically. Directories
// without any Markdown content (directly or transitively) are skipped.
func Infer(docsDir string) (Tree, error) {
	root, err := inferDir(docsDir, "")
	if err != nil {
		return nil, err
	}
	return root, nil
}

func inferDir(docsDir, rel string) ([]*Node, error) {
	entries, err := os.ReadDir(filepath.Join(docsDir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("list content directory: %w", err)
	}

	var files, dirs []fs.DirEntry
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, e)
		} else if isMarkdown(e.Name()) {
			files = append(files, e)
		}
	}
	sort.Slice(files, func(i, j int) bool { return lessIndexFirst(files[i].Name(), files[j].Name()) })
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name() < dirs[j].Name() })

	var nodes []*Node
	for _, f := range files {
		p := joinRel(rel, f.Name())
		nodes = append(nodes, &Node{Title: TitleFromPath(p), Path: p})
	}
	for _, d := range dirs {
		children, err := inferDir(docsDir, joinRel(rel, d.Name()))
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			continue
		}
		nodes = append(nodes, &Node{Title: TitleFromPath(d.Name()), Children: children})
	}
	return nodes, nil
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

func lessIndexFirst(a, b string) bool {
	ai, bi := isIndex(a), isIndex(b)
	if ai != bi {
		return ai
	}
	return a < b
}

func isIndex(name string) bool {
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	return stem == "index" || stem == "readme"
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}
