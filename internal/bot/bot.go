package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/lyricflow/lyricflow/internal/romanize"
)

const (
	maxInputChars  = 1500
	commandTimeout = 1 * time.Minute
	// Discord caps message content at 2000 characters.
	maxResponseChars = 1900
)

type Config struct {
	GuildID string
}

type Bot struct {
	log         *slog.Logger
	session     DiscordSession
	romanizer   Romanizer
	rateLimiter *RateLimiter
	config      Config
}

func New(log *slog.Logger, session DiscordSession, romanizer Romanizer, config Config) *Bot {
	return &Bot{
		log:         log,
		session:     session,
		romanizer:   romanizer,
		rateLimiter: NewRateLimiter(rateLimitMaxCommands, rateLimitWindow),
		config:      config,
	}
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "romanize",
		Description: "Convert Japanese lyrics to romaji",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "Japanese text or LRC lines to romanize",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "ai",
				Description: "Use the AI romanizer instead of the local one",
				Required:    false,
			},
		},
	},
}

func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.log.InfoContext(ctx, "connected to Discord", "username", r.User.Username)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening Discord connection: %w", err)
	}

	if err := b.registerCommands(ctx); err != nil {
		return fmt.Errorf("registering commands: %w", err)
	}

	b.log.InfoContext(ctx, "bot is running, press Ctrl+C to stop")
	<-ctx.Done()
	b.log.Info("shutdown signal received")
	b.session.Close()
	b.log.InfoContext(ctx, "shut down complete")
	return nil
}

func (b *Bot) registerCommands(ctx context.Context) error {
	guildID := b.config.GuildID
	if guildID == "" {
		b.log.InfoContext(ctx, "registering commands globally (may take up to 1 hour to propagate)")
	} else {
		b.log.InfoContext(ctx, "registering commands to guild", "guild_id", guildID)
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.GetUserID(), guildID, commands)
	if err != nil {
		return fmt.Errorf("bulk overwrite commands: %w", err)
	}
	b.log.InfoContext(ctx, "registered commands", "count", len(commands))
	return nil
}

type handlerResult struct {
	Response string
	Err      error
}

func (b *Bot) handleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var result handlerResult
	cmd := i.ApplicationCommandData().Name
	switch cmd {
	case "romanize":
		result = b.handleRomanize(ctx, i)
	default:
		return
	}

	b.respond(i, result.Response)

	if result.Err == nil {
		return
	}
	var uerr *userError
	if errors.As(result.Err, &uerr) {
		b.log.WarnContext(ctx, "user error", "command", cmd, "error", result.Err, "channel_id", i.ChannelID)
	} else {
		b.log.ErrorContext(ctx, "command failed", "command", cmd, "error", result.Err, "channel_id", i.ChannelID)
	}
}

func (b *Bot) handleRomanize(ctx context.Context, i *discordgo.InteractionCreate) handlerResult {
	userID := interactionUserID(i)
	if !b.rateLimiter.Allow(userID) {
		err := &userError{Err: errors.New("rate limited")}
		return handlerResult{Response: "You're sending commands too fast. Try again in a minute.", Err: err}
	}

	var text string
	var useAI bool
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "text":
			text = opt.StringValue()
		case "ai":
			useAI = opt.BoolValue()
		}
	}

	if text == "" {
		return handlerResult{Response: "Give me some Japanese text to romanize.", Err: &userError{Err: errors.New("empty text")}}
	}
	if len(text) > maxInputChars {
		return handlerResult{Response: fmt.Sprintf("That's too long for me, keep it under %d characters.", maxInputChars), Err: &userError{Err: errors.New("text too long")}}
	}

	result, err := b.romanizer.Romanize(ctx, text, useAI)
	if err != nil {
		if errors.Is(err, romanize.ErrNoRomanizer) {
			return handlerResult{Response: "No romanization backend is configured.", Err: err}
		}
		return handlerResult{Response: "Something went wrong romanizing that. Try again later.", Err: err}
	}

	response := result.Text
	if len(response) > maxResponseChars {
		cut := maxResponseChars
		for cut > 0 && !utf8.RuneStart(response[cut]) {
			cut--
		}
		response = response[:cut] + "…"
	}
	if result.Method == romanize.MethodAIFallback {
		response += "\n-# AI was unavailable, used the local romanizer instead."
	}
	return handlerResult{Response: response}
}

func (b *Bot) respond(i *discordgo.InteractionCreate, content string) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		b.log.Error("failed to respond to interaction", "error", err)
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

type userError struct {
	Err error
}

func (e *userError) Error() string {
	return e.Err.Error()
}

func (e *userError) Unwrap() error {
	return e.Err
}
