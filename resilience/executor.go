package resilience

import (
	"context"
	"errors"
	"sync"
)

// ExecutorConfig configures the executor.
type ExecutorConfig struct {
	// Breaker is the template applied to every per-dependency breaker.
	// Name is overridden with the dependency name.
	Breaker CircuitBreakerConfig

	// Retry is the shared retry policy for all dependencies.
	Retry RetryConfig
}

// Executor composes retry over circuit breaking for named dependencies.
//
// It owns one circuit breaker per dependency, created lazily from the
// template config, and wraps every call in the shared retry policy. The
// breaker sits inside the retry loop, so each attempt updates breaker
// bookkeeping before any backoff is scheduled, and an open breaker aborts
// the whole call immediately.
type Executor struct {
	config ExecutorConfig
	retry  *Retry

	mu       sync.Mutex
	breakers map[string]*CircuitBreaker
}

// NewExecutor creates a new resilience executor.
func NewExecutor(config ExecutorConfig) *Executor {
	return &Executor{
		config:   config,
		retry:    NewRetry(config.Retry),
		breakers: make(map[string]*CircuitBreaker),
	}
}

// Breaker returns the circuit breaker for a dependency, creating it from
// the template on first use.
func (e *Executor) Breaker(dependency string) *CircuitBreaker {
	e.mu.Lock()
	defer e.mu.Unlock()

	cb, ok := e.breakers[dependency]
	if !ok {
		cfg := e.config.Breaker
		cfg.Name = dependency
		cb = NewCircuitBreaker(cfg)
		e.breakers[dependency] = cb
	}
	return cb
}

// Do executes the operation against a named dependency with retry over
// circuit breaking.
//
// Failure surface:
//   - *OpenError when the dependency's breaker is open - returned
//     immediately, never retried, and not counted as a further failure.
//   - *ExhaustedError wrapping the last failure once every attempt has
//     been spent.
//   - The context error unchanged when the caller's context ends during
//     backoff.
func (e *Executor) Do(ctx context.Context, dependency string, op func(context.Context) error) error {
	cb := e.Breaker(dependency)

	attempts := 0
	err := e.retry.Execute(ctx, func(ctx context.Context) error {
		attempts++
		return cb.Execute(ctx, op)
	})
	if err == nil {
		return nil
	}

	var openErr *OpenError
	if errors.As(err, &openErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return &ExhaustedError{Dependency: dependency, Attempts: attempts, Err: err}
}

// BreakerSnapshots returns the state of every breaker created so far,
// keyed by dependency name. Exposed to operators for monitoring.
func (e *Executor) BreakerSnapshots() map[string]BreakerSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshots := make(map[string]BreakerSnapshot, len(e.breakers))
	for name, cb := range e.breakers {
		snapshots[name] = cb.Snapshot()
	}
	return snapshots
}
