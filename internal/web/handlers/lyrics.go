package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lyricflow/lyricflow/internal/lyrics"
	"github.com/samber/lo"
)

type LyricsHandler struct {
	providers []lyrics.Provider
	log       *slog.Logger
}

func NewLyricsHandler(providers []lyrics.Provider, log *slog.Logger) *LyricsHandler {
	return &LyricsHandler{providers: providers, log: log}
}

type searchResult struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	Album        string `json:"album,omitempty"`
	Duration     int    `json:"duration,omitempty"`
	Instrumental bool   `json:"instrumental,omitempty"`
	HasSynced    bool   `json:"has_synced"`
	Source       string `json:"source"`
}

type searchResponse struct {
	Data []searchResult `json:"data"`
}

func toSearchResult(r lyrics.Result) searchResult {
	return searchResult{
		ID:           r.ID,
		Title:        r.Title,
		Artist:       r.Artist,
		Album:        r.Album,
		Duration:     r.Duration,
		Instrumental: r.Instrumental,
		HasSynced:    r.SyncedLyrics != "",
		Source:       r.Source,
	}
}

// Search queries each provider in order and returns the first
// non-empty result set.
func (h *LyricsHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	for _, p := range h.providers {
		results, err := p.Search(r.Context(), query)
		if errors.Is(err, lyrics.ErrNotFound) {
			continue
		}
		if err != nil {
			h.log.Warn("provider search failed", "provider", p.Name(), "error", err)
			continue
		}
		if len(results) == 0 {
			continue
		}
		writeJSON(w, http.StatusOK, searchResponse{
			Data: lo.Map(results, func(r lyrics.Result, _ int) searchResult {
				return toSearchResult(r)
			}),
		})
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Data: []searchResult{}})
}
