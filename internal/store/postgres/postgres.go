package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lyricflow/lyricflow/internal/store"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS lyrics (
    id BIGSERIAL PRIMARY KEY,
    artist TEXT NOT NULL,
    title TEXT NOT NULL,
    album TEXT,
    source TEXT NOT NULL,
    synced_lyrics TEXT,
    plain_lyrics TEXT,
    romanization TEXT,
    method TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (artist, title)
);

CREATE INDEX IF NOT EXISTS idx_lyrics_updated_at ON lyrics (updated_at);
`

// Repository implements store.Repository using PostgreSQL
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a connection pool and ensures the schema exists.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	// The cache sees little concurrency; keep the pool small.
	config.MaxConns = 5
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 30 * time.Second
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) SaveLyrics(ctx context.Context, arg store.SaveLyricsParams) (store.CachedLyrics, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO lyrics (artist, title, album, source, synced_lyrics, plain_lyrics)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (artist, title) DO UPDATE SET
			album = excluded.album,
			source = excluded.source,
			synced_lyrics = excluded.synced_lyrics,
			plain_lyrics = excluded.plain_lyrics,
			updated_at = now()
		RETURNING id, artist, title, album, source, synced_lyrics, plain_lyrics, romanization, method, created_at, updated_at
	`, arg.Artist, arg.Title, arg.Album, arg.Source, arg.SyncedLyrics, arg.PlainLyrics)

	return scanCachedLyrics(row)
}

func (r *Repository) GetLyrics(ctx context.Context, arg store.GetLyricsParams) (store.CachedLyrics, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, artist, title, album, source, synced_lyrics, plain_lyrics, romanization, method, created_at, updated_at
		FROM lyrics
		WHERE artist = $1 AND title = $2
	`, arg.Artist, arg.Title)

	return scanCachedLyrics(row)
}

func (r *Repository) SaveRomanization(ctx context.Context, arg store.SaveRomanizationParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE lyrics
		SET romanization = $1, method = $2, updated_at = now()
		WHERE artist = $3 AND title = $4
	`, arg.Romanization, arg.Method, arg.Artist, arg.Title)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNoRows
	}
	return nil
}

func (r *Repository) PurgeExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM lyrics WHERE updated_at < now() - ($1 * interval '1 second')
	`, int64(ttl.Seconds()))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanCachedLyrics(row pgx.Row) (store.CachedLyrics, error) {
	var c store.CachedLyrics
	err := row.Scan(&c.ID, &c.Artist, &c.Title, &c.Album, &c.Source,
		&c.SyncedLyrics, &c.PlainLyrics, &c.Romanization, &c.Method,
		&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.CachedLyrics{}, store.ErrNoRows
	}
	if err != nil {
		return store.CachedLyrics{}, err
	}
	return c, nil
}
