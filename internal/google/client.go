package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lyricflow/lyricflow/internal/llm"
	"google.golang.org/genai"
)

// Model represents a Google AI model identifier
type Model string

const (
	ModelGemini2Flash   Model = "gemini-2.0-flash"
	ModelGemini2_5Flash Model = "gemini-2.5-flash"
	ModelGemini2_5Pro   Model = "gemini-2.5-pro"
)

var DefaultModel Model = ModelGemini2_5Flash

type Client struct {
	client *genai.Client
	model  Model
}

func NewClient(ctx context.Context, apiKey string, model Model) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create google client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	// Not every Gemini model supports system instructions natively,
	// so prepend to the user message.
	fullPrompt := system + "\n\n" + prompt

	result, err := c.client.Models.GenerateContent(ctx, string(c.model),
		[]*genai.Content{{Parts: []*genai.Part{{Text: fullPrompt}}}},
		nil,
	)
	if err != nil {
		return "", classify(err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from google")
	}

	text := result.Candidates[0].Content.Parts[0].Text

	return llm.StripMarkdownCodeBlocks(text), nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", llm.ErrRateLimited, err)
		case apiErr.Code == http.StatusNotFound:
			return fmt.Errorf("%w: %v", llm.ErrBadModel, err)
		case apiErr.Code >= 500:
			return fmt.Errorf("%w: %v", llm.ErrUnavailable, err)
		}
		return fmt.Errorf("google API call failed: %w", err)
	}
	return fmt.Errorf("%w: %v", llm.ErrUnavailable, err)
}
