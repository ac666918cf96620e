package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records pipeline telemetry: stage executions plus the resilience
// and progress events the core packages expose through hooks.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordStage records a stage execution with duration and error status.
	RecordStage(ctx context.Context, meta StageMeta, duration time.Duration, err error)

	// RecordCacheAccess records a cache lookup for a stage.
	RecordCacheAccess(ctx context.Context, stage string, hit bool)

	// RecordCacheEviction records an entry evicted to make room.
	RecordCacheEviction(ctx context.Context)

	// RecordBreakerTransition records a circuit breaker state change.
	RecordBreakerTransition(ctx context.Context, dependency, from, to string)

	// RecordRetry records one retry attempt against a dependency.
	RecordRetry(ctx context.Context, dependency string, attempt int)

	// RecordRateLimit records a rate limiter decision.
	RecordRateLimit(ctx context.Context, allowed bool)

	// RecordTaskUpdate records a task progress update.
	RecordTaskUpdate(ctx context.Context, status string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	stageTotal    metric.Int64Counter
	stageErrors   metric.Int64Counter
	stageDuration metric.Float64Histogram
	cacheRequests metric.Int64Counter
	cacheEvicted  metric.Int64Counter
	transitions   metric.Int64Counter
	retries       metric.Int64Counter
	rateDecisions metric.Int64Counter
	taskUpdates   metric.Int64Counter
}

// NewMetrics creates a Metrics instance backed by the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	stageTotal, err := meter.Int64Counter(
		"pipeline.stage.total",
		metric.WithDescription("Total number of stage executions"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	stageErrors, err := meter.Int64Counter(
		"pipeline.stage.errors",
		metric.WithDescription("Total number of stage execution errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"pipeline.stage.duration_ms",
		metric.WithDescription("Stage execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheRequests, err := meter.Int64Counter(
		"pipeline.cache.requests",
		metric.WithDescription("Cache lookups partitioned by hit/miss"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	cacheEvicted, err := meter.Int64Counter(
		"pipeline.cache.evictions",
		metric.WithDescription("Entries evicted from the cache"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter(
		"pipeline.breaker.transitions",
		metric.WithDescription("Circuit breaker state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	retries, err := meter.Int64Counter(
		"pipeline.retry.attempts",
		metric.WithDescription("Retry attempts against upstream dependencies"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	rateDecisions, err := meter.Int64Counter(
		"pipeline.ratelimit.requests",
		metric.WithDescription("Rate limiter decisions partitioned by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	taskUpdates, err := meter.Int64Counter(
		"pipeline.task.updates",
		metric.WithDescription("Task progress updates partitioned by status"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		stageTotal:    stageTotal,
		stageErrors:   stageErrors,
		stageDuration: stageDuration,
		cacheRequests: cacheRequests,
		cacheEvicted:  cacheEvicted,
		transitions:   transitions,
		retries:       retries,
		rateDecisions: rateDecisions,
		taskUpdates:   taskUpdates,
	}, nil
}

func (m *metricsImpl) RecordStage(ctx context.Context, meta StageMeta, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("pipeline.stage", meta.Stage),
	}
	if meta.Dependency != "" {
		attrs = append(attrs, attribute.String("pipeline.dependency", meta.Dependency))
	}
	opt := metric.WithAttributes(attrs...)

	m.stageTotal.Add(ctx, 1, opt)
	if err != nil {
		m.stageErrors.Add(ctx, 1, opt)
	}
	m.stageDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

func (m *metricsImpl) RecordCacheAccess(ctx context.Context, stage string, hit bool) {
	m.cacheRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline.stage", stage),
		attribute.Bool("cache.hit", hit),
	))
}

func (m *metricsImpl) RecordCacheEviction(ctx context.Context) {
	m.cacheEvicted.Add(ctx, 1)
}

func (m *metricsImpl) RecordBreakerTransition(ctx context.Context, dependency, from, to string) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline.dependency", dependency),
		attribute.String("breaker.from", from),
		attribute.String("breaker.to", to),
	))
}

func (m *metricsImpl) RecordRetry(ctx context.Context, dependency string, attempt int) {
	m.retries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline.dependency", dependency),
		attribute.Int("pipeline.attempt", attempt),
	))
}

func (m *metricsImpl) RecordRateLimit(ctx context.Context, allowed bool) {
	m.rateDecisions.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("ratelimit.allowed", allowed),
	))
}

func (m *metricsImpl) RecordTaskUpdate(ctx context.Context, status string) {
	m.taskUpdates.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task.status", status),
	))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (noopMetrics) RecordStage(ctx context.Context, meta StageMeta, duration time.Duration, err error) {
}
func (noopMetrics) RecordCacheAccess(ctx context.Context, stage string, hit bool)          {}
func (noopMetrics) RecordCacheEviction(ctx context.Context)                                {}
func (noopMetrics) RecordBreakerTransition(ctx context.Context, dependency, from, to string) {}
func (noopMetrics) RecordRetry(ctx context.Context, dependency string, attempt int)        {}
func (noopMetrics) RecordRateLimit(ctx context.Context, allowed bool)                      {}
func (noopMetrics) RecordTaskUpdate(ctx context.Context, status string)                    {}

// NewNoopMetrics returns a Metrics that records nothing.
func NewNoopMetrics() Metrics { return noopMetrics{} }
