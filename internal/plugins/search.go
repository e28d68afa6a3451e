package plugins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitegen/internal/search"
)

// searchPlugin writes search/search_index.json from the rendered pages.
type searchPlugin struct{}

func (p *searchPlugin) Name() string { return "search" }

func (p *searchPlugin) Run(_ context.Context, b *BuildContext) error {
	docs := make([]search.Document, 0, len(b.Pages))
	for _, page := range b.Pages {
		docs = append(docs, search.Document{
			Location: page.Location,
			Title:    page.Title,
			Text:     page.Text,
		})
	}
	data, err := search.Build(docs)
	if err != nil {
		return err
	}

	dir := filepath.Join(b.SiteDir, "search")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create search directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "search_index.json"), data, 0o644); err != nil {
		return fmt.Errorf("write search index: %w", err)
	}
	return nil
}
