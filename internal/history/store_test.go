package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Type: "file", Target: "/tmp/a.txt", Name: "A", LaunchedAt: base},
		{Type: "url", Target: "https://example.com", Name: "Example", LaunchedAt: base.Add(time.Minute)},
		{Type: "tool", Target: "counter", Name: "Counter", LaunchedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, store.Record(ctx, e))
	}

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Newest first.
	assert.Equal(t, "counter", recent[0].Target)
	assert.Equal(t, "https://example.com", recent[1].Target)
	assert.Equal(t, "/tmp/a.txt", recent[2].Target)
}

func TestRecentDeduplicatesByTarget(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, Entry{Type: "file", Target: "/tmp/a", Name: "A", LaunchedAt: base}))
	require.NoError(t, store.Record(ctx, Entry{Type: "file", Target: "/tmp/b", Name: "B", LaunchedAt: base.Add(time.Minute)}))
	require.NoError(t, store.Record(ctx, Entry{Type: "file", Target: "/tmp/a", Name: "A", LaunchedAt: base.Add(2 * time.Minute)}))

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// The re-launched item moves to the front.
	assert.Equal(t, "/tmp/a", recent[0].Target)
	assert.Equal(t, "/tmp/b", recent[1].Target)
}

func TestRecentLimit(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, Entry{
			Type:       "url",
			Target:     "https://example.com/" + string(rune('a'+i)),
			Name:       "E",
			LaunchedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestPrune(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		require.NoError(t, store.Record(ctx, Entry{
			Type:       "file",
			Target:     "/tmp/f" + string(rune('0'+i)),
			Name:       "F",
			LaunchedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	require.NoError(t, store.Prune(ctx, 3))

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
	assert.Equal(t, "/tmp/f9", recent[0].Target)
}

func TestRecordFillsTimestamp(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, Entry{Type: "url", Target: "https://x", Name: "X"}))

	recent, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.False(t, recent[0].LaunchedAt.IsZero())
}
