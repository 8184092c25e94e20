package lyrics

import (
	"context"
	"errors"
	"html"
	"regexp"
	"strings"
)

var ErrNotFound = errors.New("lyrics not found")

// Request identifies a track to look up.
type Request struct {
	Artist   string
	Title    string
	Album    string
	Duration int // seconds, 0 when unknown
}

// Result is one provider hit. SyncedLyrics is LRC text when the
// provider has it; PlainLyrics is the unsynced fallback.
type Result struct {
	ID           string
	Title        string
	Artist       string
	Album        string
	Duration     int
	SyncedLyrics string
	PlainLyrics  string
	Instrumental bool
	Source       string
}

// Lyrics returns whichever body the result carries, preferring synced.
func (r Result) Lyrics() string {
	if r.SyncedLyrics != "" {
		return r.SyncedLyrics
	}
	return r.PlainLyrics
}

// Provider is a lyrics source. Implementations return ErrNotFound when
// the track has no match so callers can fall through to the next one.
type Provider interface {
	Name() string
	Get(ctx context.Context, req Request) (*Result, error)
	Search(ctx context.Context, query string) ([]Result, error)
}

var bracketedRe = regexp.MustCompile(`\(.*?\)|\{.*?\}|\[.*?\]|【.*?】`)

// CleanMeta strips bracketed qualifiers like "(feat. X)" or "[Remix]"
// from artist/title strings before querying providers.
func CleanMeta(s string) string {
	s = bracketedRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "@", "at")
	s = strings.ReplaceAll(s, "&", "and")
	return strings.TrimSpace(s)
}

var lyricsReplacer = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"“", `"`,
	"”", `"`,
	" ", " ",
	"　", " ",
	"\r\n", "\n",
	"\r", "\n",
)

// CleanLyrics normalizes provider output: HTML entities, curly quotes,
// and non-breaking or full-width spaces.
func CleanLyrics(s string) string {
	s = html.UnescapeString(s)
	s = lyricsReplacer.Replace(s)
	return strings.TrimSpace(s)
}
