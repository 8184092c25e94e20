// Package lyricsync walks a music library, fetches lyrics for each
// track, romanizes them, and writes romanized .lrc sidecars.
package lyricsync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/lyricflow/lyricflow/internal/audiotag"
	"github.com/lyricflow/lyricflow/internal/lyrics"
	"github.com/lyricflow/lyricflow/internal/metrics"
	"github.com/lyricflow/lyricflow/internal/romanize"
	"github.com/lyricflow/lyricflow/internal/store"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Status classifies the outcome for one file.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusSkipped  Status = "skipped"
	StatusNoLyrics Status = "no_lyrics"
	StatusError    Status = "error"
)

// FileResult reports what happened to one audio file.
type FileResult struct {
	File   string
	Status Status
	// Steps is the human-readable trail: where lyrics came from, which
	// romanization method ran, where the sidecar landed.
	Steps []string
	Err   error
}

// Options control a sync run.
type Options struct {
	UseAI     bool
	Overwrite bool
	// WriteSidecar can be disabled for cache-only runs.
	WriteSidecar bool
	Recursive    bool
	Workers      int
}

// Syncer runs the lookup-romanize-write pipeline. repo may be nil to
// run without a cache.
type Syncer struct {
	romanizer *romanize.Romanizer
	providers []lyrics.Provider
	repo      store.Repository
	log       *slog.Logger
	opts      Options
}

func New(r *romanize.Romanizer, providers []lyrics.Provider, repo store.Repository, log *slog.Logger, opts Options) *Syncer {
	if log == nil {
		log = slog.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Syncer{
		romanizer: r,
		providers: providers,
		repo:      repo,
		log:       log,
		opts:      opts,
	}
}

// ProcessFile handles one audio file end to end.
func (s *Syncer) ProcessFile(ctx context.Context, path string) FileResult {
	res := FileResult{File: path}

	meta, err := audiotag.ReadMetadata(path)
	if err != nil {
		res.Status, res.Err = StatusError, err
		return res
	}
	res.Steps = append(res.Steps, fmt.Sprintf("tagged %q by %q", meta.Title, meta.Artist))

	if !s.opts.Overwrite {
		if _, err := os.Stat(audiotag.RomajiPath(path)); err == nil {
			res.Status = StatusSkipped
			res.Steps = append(res.Steps, "romanized sidecar already exists")
			return res
		}
	}

	text, source, err := s.lookupLyrics(ctx, path, meta)
	if err != nil {
		if errors.Is(err, lyrics.ErrNotFound) {
			res.Status = StatusNoLyrics
			return res
		}
		res.Status, res.Err = StatusError, err
		return res
	}
	res.Steps = append(res.Steps, "lyrics from "+source)

	out, err := s.romanizer.Romanize(ctx, text, s.opts.UseAI)
	if err != nil {
		res.Status, res.Err = StatusError, err
		return res
	}
	res.Steps = append(res.Steps, "romanized via "+string(out.Method))
	metrics.RomanizationsTotal.WithLabelValues(string(out.Method), "success").Inc()

	if s.repo != nil && meta.Artist != "" {
		err := s.repo.SaveRomanization(ctx, store.SaveRomanizationParams{
			Artist:       meta.Artist,
			Title:        meta.Title,
			Romanization: out.Text,
			Method:       string(out.Method),
		})
		if err != nil && !store.IsNoRows(err) {
			s.log.Warn("caching romanization failed", "file", path, "error", err)
		}
	}

	if s.opts.WriteSidecar {
		sidecar, err := audiotag.WriteRomajiLRC(path, out.Text)
		if err != nil {
			res.Status, res.Err = StatusError, err
			return res
		}
		res.Steps = append(res.Steps, "wrote "+sidecar)
	}

	res.Status = StatusSuccess
	return res
}

// lookupLyrics resolves lyrics in priority order: local sidecar,
// cache, then each provider in turn.
func (s *Syncer) lookupLyrics(ctx context.Context, path string, meta audiotag.Metadata) (text, source string, err error) {
	if lrc, ok := audiotag.FindLRC(path); ok {
		data, err := os.ReadFile(lrc)
		if err != nil {
			return "", "", fmt.Errorf("reading local lyrics: %w", err)
		}
		return lyrics.CleanLyrics(string(data)), "local file", nil
	}

	if meta.Artist == "" || meta.Title == "" {
		return "", "", lyrics.ErrNotFound
	}

	if s.repo != nil {
		cached, err := s.repo.GetLyrics(ctx, store.GetLyricsParams{Artist: meta.Artist, Title: meta.Title})
		if err == nil && cached.Lyrics() != "" {
			metrics.CacheHitsTotal.Inc()
			return cached.Lyrics(), "cache", nil
		}
		if err != nil && !store.IsNoRows(err) {
			s.log.Warn("cache lookup failed", "file", path, "error", err)
		}
	}

	req := lyrics.Request{Artist: meta.Artist, Title: meta.Title, Album: meta.Album}
	for _, p := range s.providers {
		timer := metrics.NewProviderTimer(p.Name())
		result, err := p.Get(ctx, req)
		timer.Done(err)
		if errors.Is(err, lyrics.ErrNotFound) {
			continue
		}
		if err != nil {
			s.log.Warn("provider lookup failed", "provider", p.Name(), "file", path, "error", err)
			continue
		}
		if result.Instrumental || result.Lyrics() == "" {
			continue
		}
		s.cacheLyrics(ctx, meta, result)
		return result.Lyrics(), p.Name(), nil
	}
	return "", "", lyrics.ErrNotFound
}

func (s *Syncer) cacheLyrics(ctx context.Context, meta audiotag.Metadata, result *lyrics.Result) {
	if s.repo == nil {
		return
	}
	_, err := s.repo.SaveLyrics(ctx, store.SaveLyricsParams{
		Artist:       meta.Artist,
		Title:        meta.Title,
		Album:        sql.NullString{String: meta.Album, Valid: meta.Album != ""},
		Source:       result.Source,
		SyncedLyrics: sql.NullString{String: result.SyncedLyrics, Valid: result.SyncedLyrics != ""},
		PlainLyrics:  sql.NullString{String: result.PlainLyrics, Valid: result.PlainLyrics != ""},
	})
	if err != nil {
		s.log.Warn("caching lyrics failed", "artist", meta.Artist, "title", meta.Title, "error", err)
	}
}

// ProcessDirectory finds audio files under root and processes them
// with a bounded worker pool. Results come back in path order.
func (s *Syncer) ProcessDirectory(ctx context.Context, root string) ([]FileResult, error) {
	files, err := s.collectFiles(root)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, f := range files {
		g.Go(func() error {
			results[i] = s.ProcessFile(gctx, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summarize counts results per status.
func Summarize(results []FileResult) map[Status]int {
	return lo.CountValuesBy(results, func(r FileResult) Status { return r.Status })
}

func (s *Syncer) collectFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !audiotag.IsAudioFile(root) {
			return nil, fmt.Errorf("not an audio file: %s", root)
		}
		return []string{root}, nil
	}

	var files []string
	if s.opts.Recursive {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && audiotag.IsAudioFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		files = lo.FilterMap(entries, func(e fs.DirEntry, _ int) (string, bool) {
			if e.IsDir() || !audiotag.IsAudioFile(e.Name()) {
				return "", false
			}
			return filepath.Join(root, e.Name()), true
		})
	}
	sort.Strings(files)
	return files, nil
}
