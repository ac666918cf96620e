package resilience

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func BenchmarkCircuitBreaker_Execute(b *testing.B) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})
	ctx := context.Background()
	op := func(ctx context.Context) error { return nil }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cb.Execute(ctx, op)
	}
}

func BenchmarkRateLimiter_Check(b *testing.B) {
	rl := NewRateLimiter(RateLimiterConfig{Limit: 1 << 30, Window: time.Minute})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rl.Check("bench-client")
	}
}

func BenchmarkRateLimiter_CheckManyClients(b *testing.B) {
	rl := NewRateLimiter(RateLimiterConfig{Limit: 100, Window: time.Minute})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rl.Check(fmt.Sprintf("client-%d", i%1024))
	}
}

func BenchmarkExecutor_Do(b *testing.B) {
	exec := NewExecutor(ExecutorConfig{})
	ctx := context.Background()
	op := func(ctx context.Context) error { return nil }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exec.Do(ctx, "bench-dependency", op)
	}
}
