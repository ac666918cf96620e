package resilience

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for resilience operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrRetriesExhausted is returned when retry attempts are exhausted.
	ErrRetriesExhausted = errors.New("resilience: retry attempts exhausted")

	// ErrRateLimitExceeded is returned when the rate limit is exceeded.
	ErrRateLimitExceeded = errors.New("resilience: rate limit exceeded")

	// ErrNoClientKey is returned when no client key can be derived.
	ErrNoClientKey = errors.New("resilience: cannot derive client key")
)

// OpenError is returned when a call fails fast because a circuit breaker
// is open. It carries the remaining cooldown so callers can surface a
// retry-after estimate. An OpenError must never be retried; the retry
// layer treats it as non-retryable.
type OpenError struct {
	// Name is the breaker's dependency name.
	Name string

	// RetryAfter is the estimated time until the breaker admits a probe.
	RetryAfter time.Duration
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("resilience: circuit breaker %q is open, service temporarily unavailable, retry in %ds",
		e.Name, int(e.RetryAfter.Seconds()))
}

// Unwrap makes errors.Is(err, ErrCircuitOpen) work.
func (e *OpenError) Unwrap() error {
	return ErrCircuitOpen
}

// ExhaustedError is returned when every retry attempt against a dependency
// has failed. It wraps the last captured failure unchanged.
type ExhaustedError struct {
	// Dependency is the name of the protected dependency.
	Dependency string

	// Attempts is the total number of attempts made.
	Attempts int

	// Err is the last failure.
	Err error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("resilience: %q failed after %d attempts: %v", e.Dependency, e.Attempts, e.Err)
}

// Unwrap exposes the last failure for errors.Is/As.
func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Is matches ErrRetriesExhausted in addition to the wrapped failure chain.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrRetriesExhausted
}
