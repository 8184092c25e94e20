package romanize

import (
	"context"
	"fmt"
	"testing"

	"github.com/lyricflow/lyricflow/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenizer hands back a fixed morpheme sequence.
type fakeTokenizer struct {
	morphemes []Morpheme
	err       error
}

func (f *fakeTokenizer) Tokenize(string) ([]Morpheme, error) {
	return f.morphemes, f.err
}

// identityTranslit treats the reading as already-Latin text.
type identityTranslit struct{}

func (identityTranslit) ToRomaji(s string) string { return s }

func fakeLocal(morphemes ...Morpheme) *Local {
	return NewLocalWith(&fakeTokenizer{morphemes: morphemes}, identityTranslit{})
}

func TestRomanizerLocalPath(t *testing.T) {
	local := fakeLocal(
		Morpheme{Surface: "空", Reading: "sora", POS: POSNoun},
		Morpheme{Surface: "海", Reading: "umi", POS: POSNoun},
	)
	r := New(local, nil, nil)

	res, err := r.Romanize(context.Background(), "空海", false)
	require.NoError(t, err)
	assert.Equal(t, MethodLocal, res.Method)
	assert.Equal(t, "Sora umi", res.Text)
}

func TestRomanizerAIPath(t *testing.T) {
	client := &scriptedClient{responses: []string{"Sora umi"}}
	r := New(nil, newTestAI(client), nil)

	res, err := r.Romanize(context.Background(), "空海", true)
	require.NoError(t, err)
	assert.Equal(t, MethodAI, res.Method)
	assert.Equal(t, "Sora umi", res.Text)
}

func TestRomanizerAIFallsBackToLocal(t *testing.T) {
	client := &scriptedClient{errs: []error{fmt.Errorf("%w: boom", llm.ErrBadModel)}}
	local := fakeLocal(Morpheme{Surface: "空", Reading: "sora", POS: POSNoun})
	r := New(local, newTestAI(client), nil)

	res, err := r.Romanize(context.Background(), "空", true)
	require.NoError(t, err)
	assert.Equal(t, MethodAIFallback, res.Method)
	assert.Equal(t, "Sora", res.Text)
}

func TestRomanizerAIAsLastResort(t *testing.T) {
	// AI not requested, but local is missing: AI is still used rather
	// than failing outright.
	client := &scriptedClient{responses: []string{"Sora"}}
	r := New(nil, newTestAI(client), nil)

	res, err := r.Romanize(context.Background(), "空", false)
	require.NoError(t, err)
	assert.Equal(t, MethodAI, res.Method)
	assert.Equal(t, "Sora", res.Text)
}

func TestRomanizerNoMethodAvailable(t *testing.T) {
	r := New(nil, nil, nil)
	_, err := r.Romanize(context.Background(), "空", false)
	assert.ErrorIs(t, err, ErrNoRomanizer)
}

func TestRomanizerEmptyInput(t *testing.T) {
	local := fakeLocal()
	r := New(local, nil, nil)

	res, err := r.Romanize(context.Background(), "", false)
	require.NoError(t, err)
	assert.Equal(t, "", res.Text)
}

func TestRomanizerAIFailureWithoutLocalSurfaces(t *testing.T) {
	client := &scriptedClient{errs: []error{fmt.Errorf("%w: boom", llm.ErrBadModel)}}
	r := New(nil, newTestAI(client), nil)

	_, err := r.Romanize(context.Background(), "空", true)
	assert.ErrorIs(t, err, llm.ErrBadModel)
}
