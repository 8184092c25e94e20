package store

import (
	"context"
	"database/sql"
	"time"
)

// DefaultTTL is how long cached lyrics stay valid before PurgeExpired
// removes them.
const DefaultTTL = 30 * 24 * time.Hour

// CachedLyrics is one cached track: the fetched lyrics plus the
// romanization once one has been produced.
type CachedLyrics struct {
	ID           int64
	Artist       string
	Title        string
	Album        sql.NullString
	Source       string
	SyncedLyrics sql.NullString
	PlainLyrics  sql.NullString
	Romanization sql.NullString
	// Method records how the romanization was produced (local, ai,
	// ai-fallback-local). Empty until SaveRomanization runs.
	Method    sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Lyrics returns the cached body, preferring synced.
func (c CachedLyrics) Lyrics() string {
	if c.SyncedLyrics.Valid && c.SyncedLyrics.String != "" {
		return c.SyncedLyrics.String
	}
	return c.PlainLyrics.String
}

type SaveLyricsParams struct {
	Artist       string
	Title        string
	Album        sql.NullString
	Source       string
	SyncedLyrics sql.NullString
	PlainLyrics  sql.NullString
}

type GetLyricsParams struct {
	Artist string
	Title  string
}

type SaveRomanizationParams struct {
	Artist       string
	Title        string
	Romanization string
	Method       string
}

// Repository is the lyrics cache. Lookups are keyed by (artist, title);
// SaveLyrics upserts on that key.
type Repository interface {
	SaveLyrics(ctx context.Context, arg SaveLyricsParams) (CachedLyrics, error)
	GetLyrics(ctx context.Context, arg GetLyricsParams) (CachedLyrics, error)
	SaveRomanization(ctx context.Context, arg SaveRomanizationParams) error
	PurgeExpired(ctx context.Context, ttl time.Duration) (int64, error)
	Close() error
}
