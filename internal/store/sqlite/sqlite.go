package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lyricflow/lyricflow/internal/store"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements store.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(ctx context.Context, dbPath string) (*Repository, error) {
	// Strip sqlite:// prefix if present
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	isNew := dbPath == ":memory:"
	if !isNew {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			isNew = true
		}
	}

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	repo := &Repository{db: sqliteDB}

	if isNew {
		if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
			sqliteDB.Close()
			return nil, fmt.Errorf("initializing schema: %w", err)
		}
		slog.Info("created new SQLite database", "path", dbPath)
	}

	return repo, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) SaveLyrics(ctx context.Context, arg store.SaveLyricsParams) (store.CachedLyrics, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lyrics (artist, title, album, source, synced_lyrics, plain_lyrics)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (artist, title) DO UPDATE SET
			album = excluded.album,
			source = excluded.source,
			synced_lyrics = excluded.synced_lyrics,
			plain_lyrics = excluded.plain_lyrics,
			updated_at = CURRENT_TIMESTAMP
	`, arg.Artist, arg.Title, arg.Album, arg.Source, arg.SyncedLyrics, arg.PlainLyrics)
	if err != nil {
		return store.CachedLyrics{}, err
	}

	return r.GetLyrics(ctx, store.GetLyricsParams{Artist: arg.Artist, Title: arg.Title})
}

func (r *Repository) GetLyrics(ctx context.Context, arg store.GetLyricsParams) (store.CachedLyrics, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, artist, title, album, source, synced_lyrics, plain_lyrics, romanization, method, created_at, updated_at
		FROM lyrics
		WHERE artist = ? AND title = ?
	`, arg.Artist, arg.Title)

	var c store.CachedLyrics
	err := row.Scan(&c.ID, &c.Artist, &c.Title, &c.Album, &c.Source,
		&c.SyncedLyrics, &c.PlainLyrics, &c.Romanization, &c.Method,
		&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.CachedLyrics{}, store.ErrNoRows
	}
	if err != nil {
		return store.CachedLyrics{}, err
	}
	return c, nil
}

func (r *Repository) SaveRomanization(ctx context.Context, arg store.SaveRomanizationParams) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE lyrics
		SET romanization = ?, method = ?, updated_at = CURRENT_TIMESTAMP
		WHERE artist = ? AND title = ?
	`, arg.Romanization, arg.Method, arg.Artist, arg.Title)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrNoRows
	}
	return nil
}

func (r *Repository) PurgeExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	// CURRENT_TIMESTAMP stores "YYYY-MM-DD HH:MM:SS" text; compare in
	// the same format.
	cutoff := time.Now().Add(-ttl).UTC().Format("2006-01-02 15:04:05")
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM lyrics WHERE updated_at < ?
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
