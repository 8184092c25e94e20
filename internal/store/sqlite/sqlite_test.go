package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lyricflow/lyricflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestSaveAndGetLyrics(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveLyrics(ctx, store.SaveLyricsParams{
		Artist:       "米津玄師",
		Title:        "Lemon",
		Album:        nullStr("Lemon"),
		Source:       "lrclib",
		SyncedLyrics: nullStr("[00:12.00]夢ならば"),
	})
	require.NoError(t, err)
	assert.Equal(t, "米津玄師", saved.Artist)
	assert.Equal(t, "[00:12.00]夢ならば", saved.Lyrics())
	assert.False(t, saved.Romanization.Valid)

	got, err := repo.GetLyrics(ctx, store.GetLyricsParams{Artist: "米津玄師", Title: "Lemon"})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "lrclib", got.Source)
}

func TestGetLyricsMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetLyrics(context.Background(), store.GetLyricsParams{Artist: "x", Title: "y"})
	assert.ErrorIs(t, err, store.ErrNoRows)
	assert.True(t, store.IsNoRows(err))
}

func TestSaveLyricsUpserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.SaveLyrics(ctx, store.SaveLyricsParams{
		Artist:      "a",
		Title:       "t",
		Source:      "lrclib",
		PlainLyrics: nullStr("old body"),
	})
	require.NoError(t, err)

	second, err := repo.SaveLyrics(ctx, store.SaveLyricsParams{
		Artist:       "a",
		Title:        "t",
		Source:       "musixmatch",
		SyncedLyrics: nullStr("[00:01.00]new body"),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "musixmatch", second.Source)
	assert.Equal(t, "[00:01.00]new body", second.Lyrics())
}

func TestSaveRomanization(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.SaveLyrics(ctx, store.SaveLyricsParams{
		Artist:       "a",
		Title:        "t",
		Source:       "lrclib",
		SyncedLyrics: nullStr("[00:01.00]夢"),
	})
	require.NoError(t, err)

	err = repo.SaveRomanization(ctx, store.SaveRomanizationParams{
		Artist:       "a",
		Title:        "t",
		Romanization: "[00:01.00]Yume",
		Method:       "local",
	})
	require.NoError(t, err)

	got, err := repo.GetLyrics(ctx, store.GetLyricsParams{Artist: "a", Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, "[00:01.00]Yume", got.Romanization.String)
	assert.Equal(t, "local", got.Method.String)
}

func TestSaveRomanizationMissingTrack(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.SaveRomanization(context.Background(), store.SaveRomanizationParams{
		Artist:       "nobody",
		Title:        "nothing",
		Romanization: "x",
		Method:       "local",
	})
	assert.ErrorIs(t, err, store.ErrNoRows)
}

func TestPurgeExpired(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.SaveLyrics(ctx, store.SaveLyricsParams{
		Artist:      "a",
		Title:       "t",
		Source:      "lrclib",
		PlainLyrics: nullStr("body"),
	})
	require.NoError(t, err)

	// Fresh rows survive a purge with the default TTL.
	n, err := repo.PurgeExpired(ctx, store.DefaultTTL)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	// Backdate the row past the TTL and purge again.
	_, err = repo.db.ExecContext(ctx, `UPDATE lyrics SET updated_at = '2000-01-01 00:00:00'`)
	require.NoError(t, err)

	n, err = repo.PurgeExpired(ctx, store.DefaultTTL)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.GetLyrics(ctx, store.GetLyricsParams{Artist: "a", Title: "t"})
	assert.ErrorIs(t, err, store.ErrNoRows)
}
