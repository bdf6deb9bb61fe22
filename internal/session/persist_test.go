package session

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/routined/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func repos(t *testing.T) map[string]storage.Repository {
	t.Helper()
	dir := t.TempDir()
	sqliteRepo, err := storage.OpenSQLite(filepath.Join(dir, "routined.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteRepo.Close() })
	fileRepo, err := storage.NewFileRepository(filepath.Join(dir, "routined.json"))
	require.NoError(t, err)
	return map[string]storage.Repository{"sqlite": sqliteRepo, "file": fileRepo}
}

func TestSaveThenLoadRehydrates(t *testing.T) {
	for name, repo := range repos(t) {
		ctx := context.Background()
		require.NoError(t, Save(ctx, repo, trackingState(t), t0), name)

		entries, err := repo.GetMany(ctx, KeyState, KeyLastClosedAt)
		require.NoError(t, err, name)
		assert.Len(t, entries, 2, name)
		assert.Equal(t, "2026-02-09T12:00:00Z", entries[KeyLastClosedAt].Value, name)

		got, found, err := Load(ctx, repo, t0.Add(30*time.Minute))
		require.NoError(t, err, name)
		assert.True(t, found, name)
		assert.Equal(t, "01:00:30.500", got.Routines[0].TimeLeft.String(), name)
		assert.True(t, got.Routines[0].IsTracking, name)
	}
}

func TestLoadNothingSaved(t *testing.T) {
	for name, repo := range repos(t) {
		_, found, err := Load(context.Background(), repo, t0)
		require.NoError(t, err, name)
		assert.False(t, found, name)
	}
}

func TestLoadMissingTimestampMeansNoElapsed(t *testing.T) {
	for name, repo := range repos(t) {
		raw, err := Encode(trackingState(t))
		require.NoError(t, err)
		require.NoError(t, repo.Set(context.Background(), KeyState, raw), name)

		got, found, err := Load(context.Background(), repo, t0.Add(time.Hour))
		require.NoError(t, err, name)
		assert.True(t, found, name)
		assert.Equal(t, trackingState(t), got, name)
	}
}

func TestRestoreFallsBackOnMalformed(t *testing.T) {
	for name, repo := range repos(t) {
		require.NoError(t, repo.Set(context.Background(), KeyState, "{garbage"), name)
		_, _, err := Load(context.Background(), repo, t0)
		assert.ErrorIs(t, err, ErrMalformedState, name)

		s, err := Restore(context.Background(), repo, t0, quiet())
		require.NoError(t, err, name)
		assert.Len(t, s.Routines, len(DefaultRoutines()), name)
		assert.NoError(t, s.Validate(), name)
	}
}

func TestRestoreEmptyUsesDefaults(t *testing.T) {
	for name, repo := range repos(t) {
		s, err := Restore(context.Background(), repo, t0, nil)
		require.NoError(t, err, name)
		assert.NotEmpty(t, s.Routines, name)
	}
}
