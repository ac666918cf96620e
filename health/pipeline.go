package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/researchops/cache"
	"github.com/jonwraymond/researchops/resilience"
)

// CacheChecker reports on the stage result cache. A full cache is normal
// LRU operation, so the checker only degrades when utilization stays at
// capacity with a poor hit rate.
type CacheChecker struct {
	stats func() cache.Stats
}

// NewCacheChecker creates a checker over a cache stats source, typically
// (*cache.LRUCache).Stats.
func NewCacheChecker(stats func() cache.Stats) *CacheChecker {
	return &CacheChecker{stats: stats}
}

// Name returns the name of this checker.
func (c *CacheChecker) Name() string {
	return "cache"
}

// Check reports cache size and hit rate.
func (c *CacheChecker) Check(ctx context.Context) Result {
	if c.stats == nil {
		return Unhealthy("cache stats source not wired", ErrNotWired)
	}

	s := c.stats()
	details := map[string]any{
		"size":        s.Size,
		"capacity":    s.Capacity,
		"utilization": s.Utilization,
		"hits":        s.Hits,
		"misses":      s.Misses,
		"hit_rate":    s.HitRate,
	}

	lookups := s.Hits + s.Misses
	if s.Utilization >= 1.0 && lookups >= 100 && s.HitRate < 0.1 {
		return Degraded(
			fmt.Sprintf("cache full with hit rate %.1f%%, likely thrashing", s.HitRate*100),
		).WithDetails(details)
	}

	return Healthy(
		fmt.Sprintf("%d/%d entries, hit rate %.1f%%", s.Size, s.Capacity, s.HitRate*100),
	).WithDetails(details)
}

// BreakerChecker reports on circuit breaker state across dependencies.
// Any open breaker makes the pipeline unhealthy for that dependency;
// a half-open breaker (probing recovery) degrades it.
type BreakerChecker struct {
	snapshots func() map[string]resilience.BreakerSnapshot
}

// NewBreakerChecker creates a checker over a breaker snapshot source,
// typically (*resilience.Executor).BreakerSnapshots.
func NewBreakerChecker(snapshots func() map[string]resilience.BreakerSnapshot) *BreakerChecker {
	return &BreakerChecker{snapshots: snapshots}
}

// Name returns the name of this checker.
func (b *BreakerChecker) Name() string {
	return "breakers"
}

// Check reports the state of every tracked breaker.
func (b *BreakerChecker) Check(ctx context.Context) Result {
	if b.snapshots == nil {
		return Unhealthy("breaker snapshot source not wired", ErrNotWired)
	}

	snaps := b.snapshots()
	details := make(map[string]any, len(snaps))

	var open, halfOpen []string
	for name, snap := range snaps {
		details[name] = map[string]any{
			"state":     snap.State.String(),
			"failures":  snap.Failures,
			"threshold": snap.Threshold,
		}
		switch snap.State {
		case resilience.StateOpen:
			open = append(open, name)
		case resilience.StateHalfOpen:
			halfOpen = append(halfOpen, name)
		}
	}

	if len(open) > 0 {
		return Unhealthy(
			fmt.Sprintf("%d of %d breakers open: %v", len(open), len(snaps), open),
			ErrCheckFailed,
		).WithDetails(details)
	}
	if len(halfOpen) > 0 {
		return Degraded(
			fmt.Sprintf("%d breakers probing recovery: %v", len(halfOpen), halfOpen),
		).WithDetails(details)
	}

	return Healthy(fmt.Sprintf("all %d breakers closed", len(snaps))).WithDetails(details)
}

// RateLimitCheckerConfig configures the rate limiter checker.
type RateLimitCheckerConfig struct {
	// MaxActiveClients degrades the check when more clients are inside the
	// window. Zero disables the threshold.
	MaxActiveClients int
}

// RateLimitChecker reports rate limiter pressure.
type RateLimitChecker struct {
	stats  func() resilience.RateLimiterStats
	config RateLimitCheckerConfig
}

// NewRateLimitChecker creates a checker over a rate limiter stats source,
// typically (*resilience.RateLimiter).Stats.
func NewRateLimitChecker(stats func() resilience.RateLimiterStats, config RateLimitCheckerConfig) *RateLimitChecker {
	return &RateLimitChecker{stats: stats, config: config}
}

// Name returns the name of this checker.
func (r *RateLimitChecker) Name() string {
	return "ratelimit"
}

// Check reports active clients and recent request volume.
func (r *RateLimitChecker) Check(ctx context.Context) Result {
	if r.stats == nil {
		return Unhealthy("rate limiter stats source not wired", ErrNotWired)
	}

	s := r.stats()
	details := map[string]any{
		"active_clients":  s.ActiveClients,
		"recent_requests": s.RecentRequests,
		"limit":           s.Limit,
	}

	if r.config.MaxActiveClients > 0 && s.ActiveClients > r.config.MaxActiveClients {
		return Degraded(
			fmt.Sprintf("%d active clients exceeds %d", s.ActiveClients, r.config.MaxActiveClients),
		).WithDetails(details)
	}

	return Healthy(
		fmt.Sprintf("%d active clients, %d requests in window", s.ActiveClients, s.RecentRequests),
	).WithDetails(details)
}
