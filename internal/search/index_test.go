package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOrderStable(t *testing.T) {
	docs := []Document{
		{Location: "", Title: "Home", Text: "welcome"},
		{Location: "guide/", Title: "Guide", Text: "how to"},
	}
	data, err := Build(docs)
	require.NoError(t, err)

	var idx Index
	require.NoError(t, json.Unmarshal(data, &idx))
	require.Len(t, idx.Docs, 2)
	assert.Equal(t, "Home", idx.Docs[0].Title)
	assert.Equal(t, "guide/", idx.Docs[1].Location)
}

func TestBuildEmpty(t *testing.T) {
	data, err := Build(nil)
	require.NoError(t, err)

	var idx Index
	require.NoError(t, json.Unmarshal(data, &idx))
	assert.Empty(t, idx.Docs)
}
