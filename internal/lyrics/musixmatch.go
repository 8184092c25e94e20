package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	musixmatchBaseURL = "https://apic-desktop.musixmatch.com/ws/1.1"
	musixmatchAppID   = "web-desktop-app-v1.0"
)

var errTokenRejected = errors.New("musixmatch token rejected")

// MusixmatchClient uses the desktop-app API surface of Musixmatch,
// which issues short-lived guest tokens instead of API keys. One client
// is shared across workers, so the token is mutex-guarded.
type MusixmatchClient struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

// NewMusixmatchClient builds a client. token may be empty, in which
// case a guest token is fetched on first use.
func NewMusixmatchClient(token string) *MusixmatchClient {
	return &MusixmatchClient{
		baseURL: musixmatchBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		token: token,
	}
}

func (c *MusixmatchClient) Name() string { return "musixmatch" }

type mxmEnvelope struct {
	Message struct {
		Header struct {
			StatusCode int    `json:"status_code"`
			Hint       string `json:"hint"`
		} `json:"header"`
		Body json.RawMessage `json:"body"`
	} `json:"message"`
}

// ensureToken returns the current guest token, fetching one first if
// none is held. The fetch itself runs unlocked because call may take
// the lock to invalidate a rejected token.
func (c *MusixmatchClient) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		return token, nil
	}

	q := url.Values{}
	q.Set("app_id", musixmatchAppID)

	body, err := c.call(ctx, "/token.get", q)
	if err != nil {
		return "", err
	}
	var payload struct {
		UserToken string `json:"user_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.UserToken == "" || payload.UserToken == "UpgradeOnlyUpgradeOnlyUpgradeOnlyUpgradeOnly" {
		return "", errTokenRejected
	}

	c.mu.Lock()
	c.token = payload.UserToken
	c.mu.Unlock()
	return payload.UserToken, nil
}

type mxmTrack struct {
	TrackID      int    `json:"track_id"`
	TrackName    string `json:"track_name"`
	ArtistName   string `json:"artist_name"`
	AlbumName    string `json:"album_name"`
	TrackLength  int    `json:"track_length"`
	Instrumental int    `json:"instrumental"`
	HasSubtitles int    `json:"has_subtitles"`
}

func (t mxmTrack) toResult() Result {
	return Result{
		ID:           strconv.Itoa(t.TrackID),
		Title:        t.TrackName,
		Artist:       t.ArtistName,
		Album:        t.AlbumName,
		Duration:     t.TrackLength,
		Instrumental: t.Instrumental != 0,
		Source:       "musixmatch",
	}
}

// matchScore ranks a candidate against the request; higher is better.
func matchScore(req Request, t mxmTrack) int {
	score := 0
	if strings.EqualFold(CleanMeta(t.TrackName), CleanMeta(req.Title)) {
		score += 4
	}
	if strings.EqualFold(CleanMeta(t.ArtistName), CleanMeta(req.Artist)) {
		score += 4
	}
	if req.Duration > 0 && t.TrackLength > 0 {
		diff := req.Duration - t.TrackLength
		if diff < 0 {
			diff = -diff
		}
		if diff <= 3 {
			score += 2
		}
	}
	if t.HasSubtitles != 0 {
		score++
	}
	return score
}

// Get searches for the track and fetches its synced subtitle.
func (c *MusixmatchClient) Get(ctx context.Context, req Request) (*Result, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	track, err := c.bestMatch(ctx, token, req)
	if err != nil {
		return nil, err
	}

	res := track.toResult()
	if res.Instrumental {
		return &res, nil
	}

	q := url.Values{}
	q.Set("app_id", musixmatchAppID)
	q.Set("usertoken", token)
	q.Set("track_id", res.ID)
	q.Set("subtitle_format", "lrc")

	body, err := c.call(ctx, "/track.subtitle.get", q)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Subtitle struct {
			SubtitleBody string `json:"subtitle_body"`
		} `json:"subtitle"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode subtitle response: %w", err)
	}
	if payload.Subtitle.SubtitleBody == "" {
		return nil, ErrNotFound
	}
	res.SyncedLyrics = CleanLyrics(payload.Subtitle.SubtitleBody)
	return &res, nil
}

// Search runs a free-text track search without fetching lyric bodies.
func (c *MusixmatchClient) Search(ctx context.Context, query string) ([]Result, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("app_id", musixmatchAppID)
	q.Set("usertoken", token)
	q.Set("q", query)
	q.Set("page_size", "10")

	tracks, err := c.searchTracks(ctx, q)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(tracks))
	for _, t := range tracks {
		results = append(results, t.toResult())
	}
	return results, nil
}

func (c *MusixmatchClient) bestMatch(ctx context.Context, token string, req Request) (*mxmTrack, error) {
	q := url.Values{}
	q.Set("app_id", musixmatchAppID)
	q.Set("usertoken", token)
	q.Set("q_track", CleanMeta(req.Title))
	q.Set("q_artist", CleanMeta(req.Artist))
	q.Set("page_size", "5")
	q.Set("s_track_rating", "desc")

	tracks, err := c.searchTracks(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, ErrNotFound
	}

	best := tracks[0]
	bestScore := matchScore(req, best)
	for _, t := range tracks[1:] {
		if s := matchScore(req, t); s > bestScore {
			best, bestScore = t, s
		}
	}
	if bestScore < 4 {
		return nil, ErrNotFound
	}
	return &best, nil
}

func (c *MusixmatchClient) searchTracks(ctx context.Context, q url.Values) ([]mxmTrack, error) {
	body, err := c.call(ctx, "/track.search", q)
	if err != nil {
		return nil, err
	}
	var payload struct {
		TrackList []struct {
			Track mxmTrack `json:"track"`
		} `json:"track_list"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	tracks := make([]mxmTrack, 0, len(payload.TrackList))
	for _, item := range payload.TrackList {
		tracks = append(tracks, item.Track)
	}
	return tracks, nil
}

func (c *MusixmatchClient) call(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	endpoint := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "lyricflow (https://github.com/lyricflow/lyricflow)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var env mxmEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	switch env.Message.Header.StatusCode {
	case http.StatusOK:
		return env.Message.Body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusUnauthorized:
		if env.Message.Header.Hint == "renew" {
			c.mu.Lock()
			c.token = ""
			c.mu.Unlock()
		}
		return nil, errTokenRejected
	default:
		return nil, fmt.Errorf("unexpected api status: %d", env.Message.Header.StatusCode)
	}
}
