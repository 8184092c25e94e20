package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const lrclibBaseURL = "https://lrclib.net/api"

// LrclibClient talks to the public lrclib.net API. No key required.
type LrclibClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewLrclibClient() *LrclibClient {
	return &LrclibClient{
		baseURL: lrclibBaseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *LrclibClient) Name() string { return "lrclib" }

type lrclibTrack struct {
	ID           int     `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

func (t lrclibTrack) toResult() Result {
	return Result{
		ID:           strconv.Itoa(t.ID),
		Title:        t.TrackName,
		Artist:       t.ArtistName,
		Album:        t.AlbumName,
		Duration:     int(t.Duration),
		SyncedLyrics: CleanLyrics(t.SyncedLyrics),
		PlainLyrics:  CleanLyrics(t.PlainLyrics),
		Instrumental: t.Instrumental,
		Source:       "lrclib",
	}
}

// Get fetches lyrics for an exact artist/title match.
func (c *LrclibClient) Get(ctx context.Context, req Request) (*Result, error) {
	q := url.Values{}
	q.Set("artist_name", CleanMeta(req.Artist))
	q.Set("track_name", CleanMeta(req.Title))
	if req.Album != "" {
		q.Set("album_name", CleanMeta(req.Album))
	}
	if req.Duration > 0 {
		q.Set("duration", strconv.Itoa(req.Duration))
	}

	var track lrclibTrack
	if err := c.getJSON(ctx, "/get", q, &track); err != nil {
		return nil, err
	}
	res := track.toResult()
	if res.Lyrics() == "" && !res.Instrumental {
		return nil, ErrNotFound
	}
	return &res, nil
}

// Search runs a free-text search and returns all hits.
func (c *LrclibClient) Search(ctx context.Context, query string) ([]Result, error) {
	q := url.Values{}
	q.Set("q", query)

	var tracks []lrclibTrack
	if err := c.getJSON(ctx, "/search", q, &tracks); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(tracks))
	for _, t := range tracks {
		results = append(results, t.toResult())
	}
	return results, nil
}

func (c *LrclibClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "lyricflow (https://github.com/lyricflow/lyricflow)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
