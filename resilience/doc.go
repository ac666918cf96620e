// Package resilience provides failure isolation for pipeline upstream calls.
//
// This package implements the patterns that keep a multi-stage job pipeline
// healthy when its upstream dependencies misbehave. The patterns can be
// composed together to build robust execution paths.
//
// # Patterns
//
// The package provides the following resilience patterns:
//
//   - Circuit Breaker: Prevents cascading failures by failing fast once a
//     dependency has failed a threshold number of times, then probing for
//     recovery after a cooldown.
//
//   - Retry: Automatically retries failed operations with bounded
//     exponential backoff. Circuit-open errors are never retried.
//
//   - Rate Limiter: Per-client sliding-window admission control for
//     inbound requests.
//
// # Usage
//
// The Executor owns one circuit breaker per named dependency and wraps
// every call in the retry policy, so breaker bookkeeping happens before
// backoff scheduling:
//
//	exec := resilience.NewExecutor(resilience.ExecutorConfig{
//	    Breaker: resilience.CircuitBreakerConfig{
//	        FailureThreshold: 5,
//	        RecoveryTimeout:  time.Minute,
//	    },
//	    Retry: resilience.RetryConfig{
//	        MaxRetries:   3,
//	        InitialDelay: 2 * time.Second,
//	        MaxDelay:     10 * time.Second,
//	    },
//	})
//
//	err := exec.Do(ctx, "search-agent", func(ctx context.Context) error {
//	    return callSearchAgent(ctx)
//	})
//
// Admission control sits in front of the pipeline, keyed per client:
//
//	limiter := resilience.NewRateLimiter(resilience.RateLimiterConfig{Limit: 10})
//	allowed, decision := limiter.Check(clientKey)
//	if !allowed {
//	    // surface decision.Limit, decision.Remaining, decision.RetryAfter
//	}
package resilience
