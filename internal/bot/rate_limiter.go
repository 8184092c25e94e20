package bot

import (
	"sync"
	"time"
)

const (
	rateLimitMaxCommands = 5
	rateLimitWindow      = 60 * time.Second
)

// RateLimiter is a per-user sliding-window limiter for slash commands.
// Romanization requests can fan out to an LLM provider, so each user
// gets a small fixed budget per window.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	history map[string][]time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		history: make(map[string][]time.Time),
	}
}

// Allow records an attempt for userID and reports whether it fits
// inside the window. Denied attempts are not recorded.
func (r *RateLimiter) Allow(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)

	kept := r.history[userID][:0]
	for _, t := range r.history[userID] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= r.limit {
		r.history[userID] = kept
		return false
	}

	r.history[userID] = append(kept, now)
	return true
}
