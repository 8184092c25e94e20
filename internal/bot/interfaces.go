package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/lyricflow/lyricflow/internal/romanize"
)

// DiscordSession is the slice of *discordgo.Session the bot uses, so
// tests can fake the Discord side.
type DiscordSession interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	// GetUserID returns the bot's user ID
	GetUserID() string
}

// Romanizer is the romanization interface the bot depends on.
type Romanizer interface {
	Romanize(ctx context.Context, text string, useAI bool) (romanize.Result, error)
}

// discordSessionAdapter wraps *discordgo.Session to implement DiscordSession
type discordSessionAdapter struct {
	*discordgo.Session
}

func (s *discordSessionAdapter) GetUserID() string {
	return s.State.User.ID
}

// NewDiscordSession wraps a *discordgo.Session to implement the DiscordSession interface
func NewDiscordSession(session *discordgo.Session) DiscordSession {
	return &discordSessionAdapter{Session: session}
}
