package lyrics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMusixmatch(token string, handler http.Handler) (*MusixmatchClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewMusixmatchClient(token)
	c.baseURL = srv.URL
	return c, srv
}

func writeEnvelope(w http.ResponseWriter, status int, hint, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"message":{"header":{"status_code":%d,"hint":%q},"body":%s}}`, status, hint, body)
}

func mxmHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token.get":
			writeEnvelope(w, http.StatusOK, "", `{"user_token":"tok-1"}`)
		case "/track.search":
			writeEnvelope(w, http.StatusOK, "", `{"track_list":[{"track":{
				"track_id": 99,
				"track_name": "Lemon",
				"artist_name": "米津玄師",
				"track_length": 255,
				"has_subtitles": 1
			}}]}`)
		case "/track.subtitle.get":
			writeEnvelope(w, http.StatusOK, "", `{"subtitle":{"subtitle_body":"[00:12.00]夢ならば"}}`)
		default:
			http.NotFound(w, r)
		}
	})
}

func TestMusixmatchGet(t *testing.T) {
	c, srv := newTestMusixmatch("", mxmHandler())
	defer srv.Close()

	res, err := c.Get(context.Background(), Request{Artist: "米津玄師", Title: "Lemon", Duration: 255})
	require.NoError(t, err)
	assert.Equal(t, "99", res.ID)
	assert.Equal(t, "[00:12.00]夢ならば", res.SyncedLyrics)
	assert.Equal(t, "musixmatch", res.Source)
}

func TestMusixmatchConcurrentGet(t *testing.T) {
	c, srv := newTestMusixmatch("", mxmHandler())
	defer srv.Close()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.Get(context.Background(), Request{Artist: "米津玄師", Title: "Lemon"})
		}()
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
}

func TestMusixmatchRenewClearsToken(t *testing.T) {
	c, srv := newTestMusixmatch("stale-token", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "renew", `{}`)
	}))
	defer srv.Close()

	_, err := c.Get(context.Background(), Request{Artist: "a", Title: "b"})
	assert.ErrorIs(t, err, errTokenRejected)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Empty(t, c.token, "rejected token should be dropped for re-acquisition")
}

func TestMusixmatchLowScoreNotFound(t *testing.T) {
	c, srv := newTestMusixmatch("tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "", `{"track_list":[{"track":{
			"track_id": 1, "track_name": "Something Else", "artist_name": "Nobody"
		}}]}`)
	}))
	defer srv.Close()

	_, err := c.Get(context.Background(), Request{Artist: "米津玄師", Title: "Lemon"})
	assert.ErrorIs(t, err, ErrNotFound)
}
