package nav

import "testing"

func TestInferOrdering(t *testing.T) {
	root := contentRoot(t,
		"index.md",
		"about.md",
		"guides/index.md",
		"guides/zeta.md",
		"guides/alpha.md",
	)

	tree, err := Infer(root)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if len(tree) != 3 {
		t.Fatalf("top-level entries = %d: %+v", len(tree), tree)
	}
	// index first, then files alphabetically, then directories.
	if tree[0].Path != "index.md" || tree[1].Path != "about.md" {
		t.Fatalf("file order wrong: %+v", tree)
	}
	section := tree[2]
	if section.Title != "Guides" || len(section.Children) != 3 {
		t.Fatalf("section = %+v", section)
	}
	if section.Children[0].Path != "guides/index.md" ||
		section.Children[1].Path != "guides/alpha.md" ||
		section.Children[2].Path != "guides/zeta.md" {
		t.Fatalf("section child order: %+v", section.Children)
	}
}

func TestInferSkipsEmptyAndHidden(t *testing.T) {
	root := contentRoot(t,
		"index.md",
		"assets/logo.txt",
		".hidden/secret.md",
	)

	tree, err := Infer(root)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if len(tree) != 1 || tree[0].Path != "index.md" {
		t.Fatalf("tree = %+v", tree)
	}
}

func TestInferResolves(t *testing.T) {
	root := contentRoot(t, "index.md", "a/b.md")
	tree, err := Infer(root)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if err := Resolve(tree, root); err != nil {
		t.Fatalf("inferred tree must resolve: %v", err)
	}
}
