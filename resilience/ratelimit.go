package resilience

import (
	"math"
	"sync"
	"time"
)

// RateLimiterConfig configures the rate limiter.
type RateLimiterConfig struct {
	// Limit is the number of requests each client may make per window.
	// Default: 10
	Limit int

	// Window is the trailing duration the limit applies to.
	// Default: 60 seconds
	Window time.Duration
}

// RateLimiter implements per-client sliding-window admission control.
//
// Each client's admitted request timestamps are kept for one window and
// pruned lazily on access, so an inactive client's history shrinks to
// nothing the next time it is touched.
type RateLimiter struct {
	config RateLimiterConfig

	mu      sync.Mutex
	clients map[string][]time.Time
}

// Decision describes the outcome of a rate limit check. Denials must be
// surfaced to the client verbatim: limit, remaining, and retry-after.
type Decision struct {
	// Allowed reports whether the request was admitted.
	Allowed bool

	// Limit is the configured per-window request limit.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// RetryAfter is how long until a slot frees. Zero when allowed.
	RetryAfter time.Duration

	// Reset is when the client's oldest recorded request leaves the window.
	Reset time.Time
}

// RateLimiterStats aggregates limiter activity for the operator surface.
type RateLimiterStats struct {
	// ActiveClients is the number of clients with at least one request
	// inside the current window.
	ActiveClients int

	// RecentRequests is the total number of requests inside the window
	// across all clients.
	RecentRequests int

	// Limit is the configured per-window request limit.
	Limit int
}

// NewRateLimiter creates a new sliding-window rate limiter.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	// Apply defaults
	if config.Limit <= 0 {
		config.Limit = 10
	}
	if config.Window <= 0 {
		config.Window = 60 * time.Second
	}

	return &RateLimiter{
		config:  config,
		clients: make(map[string][]time.Time),
	}
}

// Check admits or denies a request for the given client. On admission the
// request is recorded immediately; on denial RetryAfter reports how long
// until the oldest recorded request slides out of the window.
func (rl *RateLimiter) Check(clientKey string) (bool, Decision) {
	now := time.Now()
	cutoff := now.Add(-rl.config.Window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := rl.pruneLocked(clientKey, cutoff)

	if len(recent) >= rl.config.Limit {
		oldest := recent[0]
		retryAfter := ceilSeconds(oldest.Sub(cutoff))
		return false, Decision{
			Allowed:    false,
			Limit:      rl.config.Limit,
			Remaining:  0,
			RetryAfter: retryAfter,
			Reset:      oldest.Add(rl.config.Window),
		}
	}

	rl.clients[clientKey] = append(recent, now)

	return true, Decision{
		Allowed:   true,
		Limit:     rl.config.Limit,
		Remaining: rl.config.Limit - (len(recent) + 1),
		Reset:     now.Add(rl.config.Window),
	}
}

// Remaining returns how many requests the client has left in the current
// window without recording one.
func (rl *RateLimiter) Remaining(clientKey string) int {
	cutoff := time.Now().Add(-rl.config.Window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := rl.pruneLocked(clientKey, cutoff)
	remaining := rl.config.Limit - len(recent)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// ResetClient purges one client's request history.
func (rl *RateLimiter) ResetClient(clientKey string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.clients, clientKey)
}

// Stats returns aggregate limiter activity. Stale histories encountered
// during aggregation are pruned.
func (rl *RateLimiter) Stats() RateLimiterStats {
	cutoff := time.Now().Add(-rl.config.Window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	stats := RateLimiterStats{Limit: rl.config.Limit}
	for clientKey := range rl.clients {
		recent := rl.pruneLocked(clientKey, cutoff)
		if len(recent) > 0 {
			stats.ActiveClients++
			stats.RecentRequests += len(recent)
		}
	}
	return stats
}

// pruneLocked drops timestamps at or before the cutoff and returns what
// remains. Empty histories are removed from the map entirely so the map
// does not grow with one-shot clients.
func (rl *RateLimiter) pruneLocked(clientKey string, cutoff time.Time) []time.Time {
	history := rl.clients[clientKey]

	idx := 0
	for idx < len(history) && !history[idx].After(cutoff) {
		idx++
	}

	recent := history[idx:]
	if len(recent) == 0 {
		delete(rl.clients, clientKey)
		return nil
	}
	if idx > 0 {
		rl.clients[clientKey] = recent
	}
	return recent
}

// ceilSeconds rounds a duration up to whole seconds, with a one second
// floor so a denied client never receives retry-after zero.
func ceilSeconds(d time.Duration) time.Duration {
	secs := math.Ceil(d.Seconds())
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}
