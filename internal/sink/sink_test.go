package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSaveWritesSnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "runs", "headlines.json")
	fixed := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	s := NewFileSink(path, zap.NewNop())
	s.now = func() time.Time { return fixed }

	err := s.Save(context.Background(), Snapshot{
		RunID:     "run-1",
		StartDate: "2025-02-01",
		EndDate:   "2025-02-02",
		Headlines: []string{"A", "B"},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Snapshot
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, "run-1", got.RunID)
	require.Equal(t, "2025-02-01", got.StartDate)
	require.Equal(t, "2025-02-02", got.EndDate)
	require.Equal(t, fixed, got.FetchedAt)
	require.Equal(t, 2, got.Count)
	require.Equal(t, []string{"A", "B"}, got.Headlines)
}

func TestSaveKeepsExplicitFetchedAt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "headlines.json")
	stamped := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	s := NewFileSink(path, zap.NewNop())
	s.now = func() time.Time { t.Fatal("now should not be called"); return time.Time{} }

	require.NoError(t, s.Save(context.Background(), Snapshot{FetchedAt: stamped}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Snapshot
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, stamped, got.FetchedAt)
}

func TestSaveCountFollowsHeadlines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "headlines.json")
	s := NewFileSink(path, zap.NewNop())

	// A stale Count on the way in gets recomputed.
	require.NoError(t, s.Save(context.Background(), Snapshot{Count: 99, Headlines: []string{"only"}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Snapshot
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, 1, got.Count)
}

func TestSaveCanceledContext(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "headlines.json")
	s := NewFileSink(path, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, s.Save(ctx, Snapshot{}))
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
