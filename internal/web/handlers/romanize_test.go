package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lyricflow/lyricflow/internal/romanize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRomanizer struct {
	result romanize.Result
	err    error
	gotAI  bool
}

func (f *fakeRomanizer) Romanize(_ context.Context, _ string, useAI bool) (romanize.Result, error) {
	f.gotAI = useAI
	return f.result, f.err
}

func doRomanize(t *testing.T, h *RomanizeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/romanize", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Romanize(rec, req)
	return rec
}

func TestRomanizeHandler(t *testing.T) {
	fake := &fakeRomanizer{result: romanize.Result{Text: "Konnichiwa", Method: romanize.MethodLocal}}
	h := NewRomanizeHandler(fake, slog.Default())

	rec := doRomanize(t, h, `{"text":"こんにちは","use_ai":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp romanizeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Konnichiwa", resp.Text)
	assert.Equal(t, "local", resp.Method)
	assert.True(t, fake.gotAI)
}

func TestRomanizeHandlerValidation(t *testing.T) {
	h := NewRomanizeHandler(&fakeRomanizer{}, slog.Default())

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"missing text", `{"use_ai":true}`, http.StatusBadRequest},
		{"too long", `{"text":"` + strings.Repeat("a", maxRequestChars+1) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRomanize(t, h, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRomanizeHandlerNoMethodAvailable(t *testing.T) {
	fake := &fakeRomanizer{err: romanize.ErrNoRomanizer}
	h := NewRomanizeHandler(fake, slog.Default())

	rec := doRomanize(t, h, `{"text":"こんにちは"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRomanizeHandlerInternalError(t *testing.T) {
	fake := &fakeRomanizer{err: errors.New("boom")}
	h := NewRomanizeHandler(fake, slog.Default())

	rec := doRomanize(t, h, `{"text":"こんにちは"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
