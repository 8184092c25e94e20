// envsetup provides a lightweight .env configuration wizard.
// It runs on first startup when no .env file exists, collecting the
// LLM, Musixmatch, and Discord credentials the tools can use.
package envsetup

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type step int

const (
	stepWelcome step = iota
	stepLLMProvider
	stepLLMKey
	stepMusixmatch
	stepDiscord
	stepDatabase
	stepConfirm
	stepDone
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type model struct {
	step            step
	llmProvider     string
	llmAPIKey       string
	musixmatchToken string
	discordToken    string
	databasePath    string
	input           textinput.Model
	err             error
	width           int
	height          int
}

func New() model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	return model{
		step:  stepWelcome,
		input: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// secret steps echo asterisks instead of the typed key.
func (m *model) setEcho() {
	switch m.step {
	case stepLLMKey, stepMusixmatch, stepDiscord:
		m.input.EchoMode = textinput.EchoPassword
		m.input.EchoCharacter = '*'
	default:
		m.input.EchoMode = textinput.EchoNormal
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	m.err = nil
	value := strings.TrimSpace(m.input.Value())

	switch m.step {
	case stepWelcome:
		m.step = stepLLMProvider

	case stepLLMProvider:
		switch strings.ToLower(value) {
		case "1", "anthropic":
			m.llmProvider = "anthropic"
			m.step = stepLLMKey
		case "2", "google":
			m.llmProvider = "google"
			m.step = stepLLMKey
		case "3", "none", "":
			m.llmProvider = ""
			m.step = stepMusixmatch
		default:
			m.err = fmt.Errorf("Please enter 1, 2, or 3")
			return m, nil
		}

	case stepLLMKey:
		if value == "" {
			m.err = fmt.Errorf("API key is required")
			return m, nil
		}
		m.llmAPIKey = value
		m.step = stepMusixmatch

	case stepMusixmatch:
		m.musixmatchToken = value
		m.step = stepDiscord

	case stepDiscord:
		m.discordToken = value
		m.step = stepDatabase

	case stepDatabase:
		if value == "" {
			value = "./lyricflow.db"
		}
		m.databasePath = value
		m.step = stepConfirm

	case stepConfirm:
		choice := strings.ToLower(value)
		if choice == "y" || choice == "yes" || choice == "" {
			if err := m.writeEnvFile(); err != nil {
				m.err = err
				return m, nil
			}
			m.step = stepDone
			return m, tea.Quit
		} else if choice == "n" || choice == "no" {
			m = New()
			return m, nil
		}
	}

	m.input.SetValue("")
	m.setEcho()
	return m, nil
}

func (m model) writeEnvFile() error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DATABASE_URL=%s\n", m.databasePath)

	if m.llmProvider != "" {
		var llmModel, llmKeyName string
		if m.llmProvider == "anthropic" {
			llmModel = "claude-haiku-4-5"
			llmKeyName = "ANTHROPIC_API_KEY"
		} else {
			llmModel = "gemini-2.5-flash"
			llmKeyName = "GOOGLE_API_KEY"
		}
		fmt.Fprintf(&sb, "LLM_PROVIDER=%s\nLLM_MODEL=%s\n%s=%s\n", m.llmProvider, llmModel, llmKeyName, m.llmAPIKey)
	}
	if m.musixmatchToken != "" {
		fmt.Fprintf(&sb, "MUSIXMATCH_TOKEN=%s\n", m.musixmatchToken)
	}
	if m.discordToken != "" {
		fmt.Fprintf(&sb, "DISCORD_TOKEN=%s\n", m.discordToken)
	}

	return os.WriteFile(".env", []byte(sb.String()), 0600)
}

func (m model) View() string {
	var s strings.Builder

	switch m.step {
	case stepWelcome:
		s.WriteString(titleStyle.Render("LyricFlow - Env Setup"))
		s.WriteString("\n\n")
		s.WriteString("This wizard will help you configure LyricFlow.\n")
		s.WriteString("Everything here is optional except the database path:\n\n")
		s.WriteString("  - An LLM API key (Anthropic or Google) for AI romanization\n")
		s.WriteString("  - A Musixmatch token for an extra lyrics source\n")
		s.WriteString("  - A Discord bot token if you want to run the bot\n")
		s.WriteString("\n")
		s.WriteString(dimStyle.Render("Press Enter to continue, Ctrl+C to exit"))

	case stepLLMProvider:
		s.WriteString(titleStyle.Render("Step 1: AI Romanization (optional)"))
		s.WriteString("\n\n")
		s.WriteString("The local romanizer works without any keys. An LLM gives\n")
		s.WriteString("better results for slang and unusual readings.\n\n")
		s.WriteString("  1. Anthropic (Claude)\n")
		s.WriteString("  2. Google (Gemini)\n")
		s.WriteString("  3. None, local only\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Enter 1, 2, or 3:"))
		s.WriteString("\n")
		s.WriteString(m.input.View())
		if m.err != nil {
			s.WriteString("\n" + errorStyle.Render(m.err.Error()))
		}

	case stepLLMKey:
		s.WriteString(titleStyle.Render("Step 2: LLM API Key"))
		s.WriteString("\n\n")
		if m.llmProvider == "anthropic" {
			s.WriteString("To get your Anthropic API key:\n\n")
			s.WriteString("  1. Go to " + linkStyle.Render("https://console.anthropic.com") + "\n")
			s.WriteString("  2. Sign up or log in\n")
			s.WriteString("  3. Go to API Keys and create a new key\n")
		} else {
			s.WriteString("To get your Google AI API key:\n\n")
			s.WriteString("  1. Go to " + linkStyle.Render("https://aistudio.google.com/apikey") + "\n")
			s.WriteString("  2. Sign in with your Google account\n")
			s.WriteString("  3. Create an API key\n")
		}
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Paste your API key here:"))
		s.WriteString("\n")
		s.WriteString(m.input.View())
		if m.err != nil {
			s.WriteString("\n" + errorStyle.Render(m.err.Error()))
		}

	case stepMusixmatch:
		s.WriteString(titleStyle.Render("Step 3: Musixmatch Token (optional)"))
		s.WriteString("\n\n")
		s.WriteString("lrclib.net works without a token. Musixmatch adds another\n")
		s.WriteString("source for synced lyrics.\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Paste your token, or press Enter to skip:"))
		s.WriteString("\n")
		s.WriteString(m.input.View())

	case stepDiscord:
		s.WriteString(titleStyle.Render("Step 4: Discord Bot Token (optional)"))
		s.WriteString("\n\n")
		s.WriteString("Only needed if you want to run the /romanize bot:\n\n")
		s.WriteString("  1. Go to " + linkStyle.Render("https://discord.com/developers/applications") + "\n")
		s.WriteString("  2. Create a new application (or select existing)\n")
		s.WriteString("  3. Go to the Bot section and click 'Reset Token'\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Paste your Discord token, or press Enter to skip:"))
		s.WriteString("\n")
		s.WriteString(m.input.View())

	case stepDatabase:
		s.WriteString(titleStyle.Render("Step 5: Lyrics Cache Database"))
		s.WriteString("\n\n")
		s.WriteString("A SQLite path (./lyricflow.db) or a postgres:// URL.\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Enter a path, or press Enter for ./lyricflow.db:"))
		s.WriteString("\n")
		s.WriteString(m.input.View())

	case stepConfirm, stepDone:
		llm := m.llmProvider
		if llm == "" {
			llm = "local only"
		}
		s.WriteString(titleStyle.Render("Configuration Complete"))
		s.WriteString("\n\n")
		s.WriteString("Your configuration:\n\n")
		s.WriteString("  Database:     " + successStyle.Render(m.databasePath) + "\n")
		s.WriteString("  Romanization: " + successStyle.Render(llm) + "\n")
		if m.llmAPIKey != "" {
			s.WriteString("  LLM API Key:  " + successStyle.Render(maskToken(m.llmAPIKey)) + "\n")
		}
		if m.musixmatchToken != "" {
			s.WriteString("  Musixmatch:   " + successStyle.Render(maskToken(m.musixmatchToken)) + "\n")
		}
		if m.discordToken != "" {
			s.WriteString("  Discord:      " + successStyle.Render(maskToken(m.discordToken)) + "\n")
		}
		s.WriteString("\n")
		if m.step == stepConfirm {
			s.WriteString(labelStyle.Render("Save this configuration? [Y/n]:"))
			s.WriteString("\n")
			s.WriteString(m.input.View())
		} else {
			s.WriteString(successStyle.Render("Saved to .env"))
		}
		if m.err != nil {
			s.WriteString("\n" + errorStyle.Render(m.err.Error()))
		}
	}

	s.WriteString("\n")
	return s.String()
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// Run starts the setup wizard and returns true if setup was completed successfully
func Run() (bool, error) {
	p := tea.NewProgram(New())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m := finalModel.(model)
	return m.step == stepDone && m.err == nil, nil
}

// NeedsSetup checks if .env file exists
func NeedsSetup() bool {
	_, err := os.Stat(".env")
	return os.IsNotExist(err)
}
