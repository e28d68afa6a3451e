// Package search builds the client-side search index emitted alongside the
// generated site.
package search

import (
	"encoding/json"
	"fmt"
)

// Document is one searchable page.
type Document struct {
	Location string `json:"location"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}

// Index is the serialized search index shape consumed by the theme's search
// frontend.
type Index struct {
	Docs []Document `json:"docs"`
}

// Build serializes the documents into the search index payload. Document
// order follows page render order so results are stable across builds of the
// same input.
func Build(docs []Document) ([]byte, error) {
	data, err := json.MarshalIndent(Index{Docs: docs}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal search index: %w", err)
	}
	return data, nil
}
