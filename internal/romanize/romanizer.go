package romanize

import (
	"context"
	"log/slog"
)

// Method identifies which strategy produced a result.
type Method string

const (
	MethodLocal Method = "local"
	MethodAI    Method = "ai"
	// MethodAIFallback means AI was requested, failed, and the local
	// pipeline produced the result instead.
	MethodAIFallback Method = "ai-fallback-local"
)

// Result is a romanization outcome together with the strategy that
// produced it, so callers can see the fallback decision instead of
// inferring it from error flow.
type Result struct {
	Text   string
	Method Method
}

// Romanizer arbitrates between the AI strategy and the local pipeline.
// Either may be nil; with both missing every call fails with
// ErrNoRomanizer.
type Romanizer struct {
	local *Local
	ai    *AI
	log   *slog.Logger
}

func New(local *Local, ai *AI, log *slog.Logger) *Romanizer {
	if log == nil {
		log = slog.Default()
	}
	return &Romanizer{local: local, ai: ai, log: log}
}

// HasLocal reports whether the local pipeline is configured.
func (r *Romanizer) HasLocal() bool { return r.local != nil }

// HasAI reports whether an AI provider is configured.
func (r *Romanizer) HasAI() bool { return r.ai != nil }

// Romanize converts text with automatic fallback: AI first when
// requested and configured, local otherwise, AI as a last resort when
// local is missing.
func (r *Romanizer) Romanize(ctx context.Context, text string, useAI bool) (Result, error) {
	if r.local == nil && r.ai == nil {
		return Result{}, ErrNoRomanizer
	}
	if text == "" {
		return Result{Method: MethodLocal}, nil
	}

	if useAI && r.ai != nil {
		out, err := r.ai.Romanize(ctx, text)
		if err == nil {
			return Result{Text: out, Method: MethodAI}, nil
		}
		if r.local == nil {
			return Result{}, err
		}
		r.log.Warn("ai romanization failed, falling back to local", "error", err)
		local, lerr := r.local.Romanize(text)
		if lerr != nil {
			return Result{}, lerr
		}
		return Result{Text: local, Method: MethodAIFallback}, nil
	}

	if r.local != nil {
		out, err := r.local.Romanize(text)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: out, Method: MethodLocal}, nil
	}

	// AI not requested, but it is the only strategy available.
	out, err := r.ai.Romanize(ctx, text)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: out, Method: MethodAI}, nil
}
