package bot

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for i := range 3 {
		require.True(t, rl.Allow("user-1"), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow("user-1"), "request beyond limit should be denied")
}

func TestRateLimiterIsolatesUsers(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for range 3 {
		rl.Allow("user-1")
	}
	assert.False(t, rl.Allow("user-1"))
	assert.True(t, rl.Allow("user-2"), "different user should not be affected")
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	current := time.Now()
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return current }

	require.True(t, rl.Allow("user-1"))
	require.True(t, rl.Allow("user-1"))
	require.False(t, rl.Allow("user-1"))

	current = current.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("user-1"), "should allow after old entries expire")
}

func TestRateLimiterDeniedAttemptsNotCounted(t *testing.T) {
	current := time.Now()
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return current }

	require.True(t, rl.Allow("user-1"))
	for range 10 {
		rl.Allow("user-1")
	}

	// Only the single allowed attempt occupies the window.
	current = current.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("user-1"))
}

func TestRateLimiterConcurrentAccess(t *testing.T) {
	rl := NewRateLimiter(rateLimitMaxCommands, rateLimitWindow)
	var wg sync.WaitGroup
	allowed := make([]int, 10)

	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			for range rateLimitMaxCommands + 2 {
				if rl.Allow(userID) {
					allowed[i]++
				}
			}
		}()
	}
	wg.Wait()

	for i, count := range allowed {
		assert.Equal(t, rateLimitMaxCommands, count, "user-%d should have exactly %d allowed requests", i, rateLimitMaxCommands)
	}
}
