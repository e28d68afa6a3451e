package eventstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndGetByBuildID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "build-1", EventBuildStarted, []byte(`{"site_name":"Test"}`), nil))
	require.NoError(t, store.Append(ctx, "build-1", EventStageCompleted, nil, map[string]string{"stage": "render_pages"}))
	require.NoError(t, store.Append(ctx, "build-2", EventBuildStarted, nil, nil))
	require.NoError(t, store.Append(ctx, "build-1", EventBuildFinished, nil, map[string]string{"pages": "3"}))

	events, err := store.GetByBuildID(ctx, "build-1")
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, EventBuildStarted, events[0].EventType)
	assert.Equal(t, EventStageCompleted, events[1].EventType)
	assert.Equal(t, EventBuildFinished, events[2].EventType)
	assert.Equal(t, "render_pages", events[1].Metadata["stage"])
	assert.Equal(t, []byte(`{"site_name":"Test"}`), events[0].Payload)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestGetByBuildIDUnknown(t *testing.T) {
	store := newTestStore(t)
	events, err := store.GetByBuildID(context.Background(), "no-such-build")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRecentBuilds(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"build-a", "build-b", "build-c"} {
		require.NoError(t, store.Append(ctx, id, EventBuildStarted, nil, nil))
		require.NoError(t, store.Append(ctx, id, EventBuildFinished, nil, nil))
	}

	ids, err := store.RecentBuilds(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"build-c", "build-b"}, ids)
}
