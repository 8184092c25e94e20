package llm

import (
	"context"
	"errors"
	"strings"
)

// Client is the minimal completion surface a provider must offer.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Provider error classification. Clients wrap their SDK errors with
// these sentinels so retry logic stays provider-agnostic.
var (
	// ErrRateLimited marks a 429; retried with backoff.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnavailable marks transport failures and 5xx responses;
	// retried with backoff.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrBadModel marks an unknown or inaccessible model; never
	// retried.
	ErrBadModel = errors.New("unknown model")
)

// Retryable reports whether err is worth retrying with backoff.
func Retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable)
}

// StripMarkdownCodeBlocks removes ```...``` wrappers from LLM responses
func StripMarkdownCodeBlocks(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}
