package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lyricflow/lyricflow/internal/anthropic"
	"github.com/lyricflow/lyricflow/internal/google"
	"github.com/lyricflow/lyricflow/internal/llm"
	"github.com/lyricflow/lyricflow/internal/logger"
	"github.com/lyricflow/lyricflow/internal/lyrics"
	"github.com/lyricflow/lyricflow/internal/romanize"
	"github.com/lyricflow/lyricflow/internal/web"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("lyricflow-web")

	var (
		port            = fs.Int64Long("port", 3000, "HTTP server port")
		metricsPort     = fs.Int64Long("metrics-port", 9090, "Prometheus metrics port")
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

	log := logger.New()

	local, err := romanize.NewLocal()
	if err != nil {
		return fmt.Errorf("building local romanizer: %w", err)
	}

	var client llm.Client
	switch *llmProvider {
	case "anthropic":
		if *anthropicAPIKey != "" {
			model := anthropic.Model(*llmModel)
			if *llmModel == "" {
				model = anthropic.DefaultModel
			}
			client = anthropic.NewClient(*anthropicAPIKey, model)
		}
	case "google":
		if *googleAPIKey != "" {
			model := google.Model(*llmModel)
			if *llmModel == "" {
				model = google.DefaultModel
			}
			client, err = google.NewClient(context.Background(), *googleAPIKey, model)
			if err != nil {
				return fmt.Errorf("creating Google client: %w", err)
			}
		}
	}

	var ai *romanize.AI
	if client != nil {
		ai = romanize.NewAI(client)
	}
	romanizer := romanize.New(local, ai, log)

	providers := []lyrics.Provider{lyrics.NewLrclibClient()}
	if *musixmatchToken != "" {
		providers = append(providers, lyrics.NewMusixmatchClient(*musixmatchToken))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := web.NewRouter(romanizer, providers, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", *metricsPort),
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("web server listening", "addr", server.Addr, "ai_enabled", romanizer.HasAI())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("web server: %w", err)
		}
	}()
	go func() {
		log.Info("metrics server listening", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down metrics server: %w", err)
	}
	return nil
}
