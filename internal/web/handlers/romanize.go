package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lyricflow/lyricflow/internal/metrics"
	"github.com/lyricflow/lyricflow/internal/romanize"
)

const maxRequestChars = 20000

// Romanizer is the slice of romanize.Romanizer this handler needs.
type Romanizer interface {
	Romanize(ctx context.Context, text string, useAI bool) (romanize.Result, error)
}

type RomanizeHandler struct {
	romanizer Romanizer
	log       *slog.Logger
}

func NewRomanizeHandler(romanizer Romanizer, log *slog.Logger) *RomanizeHandler {
	return &RomanizeHandler{romanizer: romanizer, log: log}
}

type romanizeRequest struct {
	Text  string `json:"text"`
	UseAI bool   `json:"use_ai"`
}

type romanizeResponse struct {
	Text   string `json:"text"`
	Method string `json:"method"`
}

func (h *RomanizeHandler) Romanize(w http.ResponseWriter, r *http.Request) {
	var req romanizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if len(req.Text) > maxRequestChars {
		writeError(w, http.StatusRequestEntityTooLarge, "text too long")
		return
	}

	start := time.Now()
	result, err := h.romanizer.Romanize(r.Context(), req.Text, req.UseAI)
	if err != nil {
		if errors.Is(err, romanize.ErrNoRomanizer) {
			writeError(w, http.StatusServiceUnavailable, "no romanization method available")
			return
		}
		h.log.Error("romanization failed", "error", err)
		metrics.RomanizationsTotal.WithLabelValues("unknown", "error").Inc()
		writeError(w, http.StatusInternalServerError, "romanization failed")
		return
	}
	metrics.RomanizationsTotal.WithLabelValues(string(result.Method), "success").Inc()
	metrics.RomanizationDuration.WithLabelValues(string(result.Method)).Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, romanizeResponse{
		Text:   result.Text,
		Method: string(result.Method),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
