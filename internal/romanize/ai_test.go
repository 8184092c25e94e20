package romanize

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lyricflow/lyricflow/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns canned responses in order.
type scriptedClient struct {
	calls     int
	responses []string
	errs      []error
	systems   []string
}

func (c *scriptedClient) Complete(_ context.Context, system, _ string) (string, error) {
	i := c.calls
	c.calls++
	c.systems = append(c.systems, system)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func newTestAI(client llm.Client) *AI {
	ai := NewAI(client)
	ai.backoff = func(int) time.Duration { return 0 }
	return ai
}

func TestAIRetriesRateLimit(t *testing.T) {
	client := &scriptedClient{
		errs:      []error{fmt.Errorf("%w: 429", llm.ErrRateLimited), fmt.Errorf("%w: 429", llm.ErrRateLimited), nil},
		responses: []string{"", "", "Konnichiwa sekai"},
	}
	ai := newTestAI(client)

	out, err := ai.Romanize(context.Background(), "こんにちは世界")
	require.NoError(t, err)
	assert.Equal(t, "Konnichiwa sekai", out)
	assert.Equal(t, 3, client.calls)
}

func TestAIRateLimitExhausted(t *testing.T) {
	rateLimited := fmt.Errorf("%w: 429", llm.ErrRateLimited)
	client := &scriptedClient{errs: []error{rateLimited, rateLimited, rateLimited}}
	ai := newTestAI(client)

	_, err := ai.Romanize(context.Background(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrRateLimited)
	assert.Equal(t, aiMaxAttempts, client.calls)
}

func TestAIFatalErrorNotRetried(t *testing.T) {
	client := &scriptedClient{errs: []error{fmt.Errorf("%w: no-such-model", llm.ErrBadModel)}}
	ai := newTestAI(client)

	_, err := ai.Romanize(context.Background(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrBadModel)
	assert.Equal(t, 1, client.calls)
}

func TestAIPromptSelection(t *testing.T) {
	client := &scriptedClient{responses: []string{"ok", "ok"}}
	ai := newTestAI(client)

	_, err := ai.Romanize(context.Background(), "[00:12.34]こんにちは")
	require.NoError(t, err)
	_, err = ai.Romanize(context.Background(), "こんにちは")
	require.NoError(t, err)

	require.Len(t, client.systems, 2)
	assert.Equal(t, lrcSystemPrompt, client.systems[0])
	assert.Equal(t, plainSystemPrompt, client.systems[1])
}

func TestAICleansTimestampsInResponse(t *testing.T) {
	client := &scriptedClient{responses: []string{"[ 00 : 12 . 34 ]   Konnichiwa"}}
	ai := newTestAI(client)

	out, err := ai.Romanize(context.Background(), "[00:12.34]こんにちは")
	require.NoError(t, err)
	assert.Equal(t, "[00:12.34]Konnichiwa", out)
}
