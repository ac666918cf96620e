package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/researchops/resilience"
)

func ExampleExecutor_Do() {
	exec := resilience.NewExecutor(resilience.ExecutorConfig{
		Breaker: resilience.CircuitBreakerConfig{
			FailureThreshold: 5,
			RecoveryTimeout:  time.Minute,
		},
		Retry: resilience.RetryConfig{
			MaxRetries:   3,
			InitialDelay: time.Millisecond,
		},
	})

	attempts := 0
	err := exec.Do(context.Background(), "search-agent", func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return errors.New("transient upstream error")
		}
		return nil
	})

	fmt.Println(err, attempts)
	// Output: <nil> 2
}

func ExampleExecutor_Do_exhausted() {
	exec := resilience.NewExecutor(resilience.ExecutorConfig{
		Breaker: resilience.CircuitBreakerConfig{FailureThreshold: 10},
		Retry: resilience.RetryConfig{
			MaxRetries:   3,
			InitialDelay: time.Millisecond,
		},
	})

	err := exec.Do(context.Background(), "writer-agent", func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	var exhausted *resilience.ExhaustedError
	if errors.As(err, &exhausted) {
		fmt.Println(exhausted.Attempts)
	}
	// Output: 4
}

func ExampleRateLimiter_Check() {
	limiter := resilience.NewRateLimiter(resilience.RateLimiterConfig{
		Limit:  2,
		Window: time.Minute,
	})

	for i := 0; i < 3; i++ {
		allowed, decision := limiter.Check("client-1")
		fmt.Printf("allowed=%v remaining=%d\n", allowed, decision.Remaining)
	}
	// Output:
	// allowed=true remaining=1
	// allowed=true remaining=0
	// allowed=false remaining=0
}

func ExampleCircuitBreaker() {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:             "planner-agent",
		FailureThreshold: 2,
		RecoveryTimeout:  time.Minute,
	})

	for i := 0; i < 2; i++ {
		_ = cb.Execute(context.Background(), func(ctx context.Context) error {
			return errors.New("upstream down")
		})
	}

	err := cb.Execute(context.Background(), func(ctx context.Context) error {
		return nil // never invoked
	})

	fmt.Println(errors.Is(err, resilience.ErrCircuitOpen))
	// Output: true
}
