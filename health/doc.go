// Package health exposes the pipeline's operator surface: component probes
// over the cache, circuit breakers, and rate limiter, an aggregator that
// combines them into one status, and HTTP handlers for liveness, readiness,
// and detailed inspection.
//
// # Basic Usage
//
//	agg := health.NewAggregator()
//	agg.Register("cache", health.NewCacheChecker(store.Stats))
//	agg.Register("breakers", health.NewBreakerChecker(exec.BreakerSnapshots))
//	agg.Register("ratelimit", health.NewRateLimitChecker(rl.Stats, health.RateLimitCheckerConfig{}))
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, agg)
package health
