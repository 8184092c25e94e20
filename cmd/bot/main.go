package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/lyricflow/lyricflow/internal/anthropic"
	"github.com/lyricflow/lyricflow/internal/bot"
	"github.com/lyricflow/lyricflow/internal/google"
	"github.com/lyricflow/lyricflow/internal/health"
	"github.com/lyricflow/lyricflow/internal/llm"
	"github.com/lyricflow/lyricflow/internal/logger"
	"github.com/lyricflow/lyricflow/internal/romanize"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
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

	fs := ff.NewFlagSet("lyricflow-bot")

	var (
		discordToken    = fs.StringLong("discord-token", "", "Discord bot token")
		guildID         = fs.StringLong("discord-guild-id", "", "Register commands to this guild only (empty for global)")
		healthPort      = fs.Int64Long("health-port", 8081, "Health check port")
		llmProvider     = fs.StringEnumLong("llm-provider", "LLM provider for AI romanization", "anthropic", "google")
		llmModel        = fs.StringLong("llm-model", "", "LLM model name")
		anthropicAPIKey = fs.StringLong("anthropic-api-key", "", "Anthropic API key")
		googleAPIKey    = fs.StringLong("google-api-key", "", "Google API key")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *discordToken == "" {
		return errors.New("discord-token is required")
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

	session, err := discordgo.New("Bot " + *discordToken)
	if err != nil {
		return fmt.Errorf("creating Discord session: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthServer := health.New(int(*healthPort), romanizer.HasLocal(), romanizer.HasAI())
	go func() {
		if err := healthServer.Start(); err != nil {
			log.Error("health server failed", "error", err)
		}
	}()
	defer healthServer.Shutdown(context.Background())

	b := bot.New(log, bot.NewDiscordSession(session), romanizer, bot.Config{GuildID: *guildID})
	return b.Run(ctx)
}
