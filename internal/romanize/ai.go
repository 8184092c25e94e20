package romanize

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/lyricflow/lyricflow/internal/llm"
)

const (
	aiMaxAttempts = 3
	aiBaseDelay   = 2 * time.Second
)

var timestampAnywhereRe = regexp.MustCompile(`\[\d+:\d+[.,]\d+\]`)

const lrcSystemPrompt = `You romanize Japanese lyrics in LRC format using accurate Hepburn romanization.

IMPORTANT:
- Preserve the exact timestamp format [mm:ss.xx]
- Keep each line on a separate line (preserve newlines)
- Only romanize the lyrics text, not the timestamps
- Use proper spacing between words
- Convert particles correctly (は→wa, を→o, へ→e)

Provide only the romanized text with timestamps, no explanations.`

const plainSystemPrompt = `You romanize Japanese text using accurate Hepburn romanization.

Rules:
- Use proper spacing between words
- Convert particles correctly (は→wa, を→o, へ→e)
- Use macrons for long vowels where appropriate
- Keep natural word boundaries

Provide only the romanized text, no explanations.`

// AI romanizes through an LLM provider. Retryable failures (rate
// limits, transient outages) back off exponentially for a bounded
// number of attempts; fatal errors propagate immediately.
type AI struct {
	client  llm.Client
	backoff func(attempt int) time.Duration
}

func NewAI(client llm.Client) *AI {
	return &AI{
		client: client,
		backoff: func(attempt int) time.Duration {
			return aiBaseDelay << attempt
		},
	}
}

func (a *AI) Romanize(ctx context.Context, text string) (string, error) {
	system := plainSystemPrompt
	if timestampAnywhereRe.MatchString(text) {
		system = lrcSystemPrompt
	}

	var lastErr error
	for attempt := 0; attempt < aiMaxAttempts; attempt++ {
		out, err := a.client.Complete(ctx, system, text)
		if err == nil {
			return CleanTimestamps(llm.StripMarkdownCodeBlocks(out)), nil
		}
		lastErr = err
		if !llm.Retryable(err) || attempt == aiMaxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(a.backoff(attempt)):
		}
	}
	return "", fmt.Errorf("ai romanization: %w", lastErr)
}
