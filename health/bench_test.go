package health

import (
	"context"
	"testing"
	"time"

	"github.com/jonwraymond/researchops/cache"
	"github.com/jonwraymond/researchops/resilience"
)

func BenchmarkAggregator_CheckAll(b *testing.B) {
	store := cache.NewLRUCache(cache.LRUConfig{Capacity: 100})
	exec := resilience.NewExecutor(resilience.ExecutorConfig{})
	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Limit: 10, Window: time.Minute})

	agg := NewAggregator()
	agg.Register("cache", NewCacheChecker(store.Stats))
	agg.Register("breakers", NewBreakerChecker(exec.BreakerSnapshots))
	agg.Register("ratelimit", NewRateLimitChecker(rl.Stats, RateLimitCheckerConfig{}))

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		agg.CheckAll(ctx)
	}
}

func BenchmarkCacheChecker_Check(b *testing.B) {
	store := cache.NewLRUCache(cache.LRUConfig{Capacity: 100})
	c := NewCacheChecker(store.Stats)

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Check(ctx)
	}
}
