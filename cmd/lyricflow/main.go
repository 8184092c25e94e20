package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lyricflow/lyricflow/internal/anthropic"
	"github.com/lyricflow/lyricflow/internal/envsetup"
	"github.com/lyricflow/lyricflow/internal/google"
	"github.com/lyricflow/lyricflow/internal/llm"
	"github.com/lyricflow/lyricflow/internal/logger"
	"github.com/lyricflow/lyricflow/internal/lyrics"
	"github.com/lyricflow/lyricflow/internal/lyricsync"
	"github.com/lyricflow/lyricflow/internal/romanize"
	"github.com/lyricflow/lyricflow/internal/store"
	"github.com/lyricflow/lyricflow/internal/store/postgres"
	"github.com/lyricflow/lyricflow/internal/store/sqlite"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("lyricflow")

	var (
		text            = fs.StringLong("text", "", "Romanize this text and print the result instead of processing files")
		useAI           = fs.BoolLong("use-ai", "Prefer the AI romanizer over the local pipeline")
		recursive       = fs.Bool('r', "recursive", "Recurse into subdirectories")
		overwrite       = fs.BoolLong("overwrite", "Regenerate sidecars that already exist")
		noSidecar       = fs.BoolLong("no-sidecar", "Fetch and cache lyrics without writing sidecar files")
		workers         = fs.IntLong("workers", 4, "Concurrent files to process")
		databaseURL     = fs.StringLong("database-url", "", "Lyrics cache: SQLite path or postgres:// URL (empty disables caching)")
		llmProvider     = fs.StringEnumLong("llm-provider", "LLM provider for AI romanization", "anthropic", "google")
		llmModel        = fs.StringLong("llm-model", "", "LLM model name")
		anthropicAPIKey = fs.StringLong("anthropic-api-key", "", "Anthropic API key")
		googleAPIKey    = fs.StringLong("google-api-key", "", "Google API key")
		musixmatchToken = fs.StringLong("musixmatch-token", "", "Musixmatch token for the extra lyrics source")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	paths := fs.GetArgs()
	if *text == "" && len(paths) == 0 {
		if envsetup.NeedsSetup() {
			done, err := envsetup.Run()
			if err != nil || !done {
				return err
			}
			return nil
		}
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return errors.New("give me --text or at least one audio file or directory")
	}

	log := logger.New()

	romanizer, err := buildRomanizer(*llmProvider, *llmModel, *anthropicAPIKey, *googleAPIKey, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *text != "" {
		result, err := romanizer.Romanize(ctx, *text, *useAI)
		if err != nil {
			return err
		}
		fmt.Println(result.Text)
		return nil
	}

	var repo store.Repository
	if *databaseURL != "" {
		repo, err = openStore(ctx, *databaseURL)
		if err != nil {
			return fmt.Errorf("opening lyrics cache: %w", err)
		}
		defer repo.Close()
		if n, err := repo.PurgeExpired(ctx, store.DefaultTTL); err != nil {
			log.Warn("purging expired cache entries failed", "error", err)
		} else if n > 0 {
			log.Info("purged expired cache entries", "count", n)
		}
	}

	providers := []lyrics.Provider{lyrics.NewLrclibClient()}
	if *musixmatchToken != "" {
		providers = append(providers, lyrics.NewMusixmatchClient(*musixmatchToken))
	}

	syncer := lyricsync.New(romanizer, providers, repo, log, lyricsync.Options{
		UseAI:        *useAI,
		Overwrite:    *overwrite,
		WriteSidecar: !*noSidecar,
		Recursive:    *recursive,
		Workers:      *workers,
	})

	var all []lyricsync.FileResult
	for _, path := range paths {
		results, err := syncer.ProcessDirectory(ctx, path)
		if err != nil {
			return err
		}
		all = append(all, results...)
	}

	for _, r := range all {
		switch r.Status {
		case lyricsync.StatusError:
			log.Error("failed", "file", r.File, "error", r.Err)
		case lyricsync.StatusNoLyrics:
			log.Warn("no lyrics found", "file", r.File)
		default:
			log.Info(string(r.Status), "file", r.File)
		}
	}

	counts := lyricsync.Summarize(all)
	log.Info("done",
		"success", counts[lyricsync.StatusSuccess],
		"skipped", counts[lyricsync.StatusSkipped],
		"no_lyrics", counts[lyricsync.StatusNoLyrics],
		"errors", counts[lyricsync.StatusError],
	)
	if counts[lyricsync.StatusError] > 0 {
		return errors.New("some files failed")
	}
	return nil
}

func buildRomanizer(provider, model, anthropicKey, googleKey string, log *slog.Logger) (*romanize.Romanizer, error) {
	local, err := romanize.NewLocal()
	if err != nil {
		return nil, fmt.Errorf("building local romanizer: %w", err)
	}

	var client llm.Client
	switch provider {
	case "anthropic":
		if anthropicKey != "" {
			if model == "" {
				model = string(anthropic.DefaultModel)
			}
			client = anthropic.NewClient(anthropicKey, anthropic.Model(model))
		}
	case "google":
		if googleKey != "" {
			if model == "" {
				model = string(google.DefaultModel)
			}
			client, err = google.NewClient(context.Background(), googleKey, google.Model(model))
			if err != nil {
				return nil, fmt.Errorf("creating Google client: %w", err)
			}
		}
	}

	var ai *romanize.AI
	if client != nil {
		ai = romanize.NewAI(client)
	}
	return romanize.New(local, ai, log), nil
}

func openStore(ctx context.Context, databaseURL string) (store.Repository, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.New(ctx, databaseURL)
	}
	return sqlite.New(ctx, databaseURL)
}
