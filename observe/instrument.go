package observe

import (
	"context"
	"time"
)

// StageFunc is the signature for pipeline stage operations. It matches the
// compute functions the cache and executor layers work with.
type StageFunc func(ctx context.Context) ([]byte, error)

// Instrument wraps stage execution with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe StageFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped function are recorded and propagated unchanged.
type Instrument struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewInstrument creates a new Instrument with the given observability components.
func NewInstrument(tracer Tracer, metrics Metrics, logger Logger) *Instrument {
	return &Instrument{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps a stage operation with tracing, metrics, and logging.
func (in *Instrument) Wrap(meta StageMeta, fn StageFunc) StageFunc {
	return func(ctx context.Context) ([]byte, error) {
		ctx, span := in.tracer.StartSpan(ctx, meta)
		start := time.Now()

		result, err := fn(ctx)

		duration := time.Since(start)
		in.tracer.EndSpan(span, err)
		in.metrics.RecordStage(ctx, meta, duration, err)

		stageLogger := in.logger.WithStage(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			stageLogger.Error(ctx, "stage failed", fields...)
		} else {
			stageLogger.Info(ctx, "stage completed", fields...)
		}

		return result, err
	}
}

// InstrumentFromObserver creates an Instrument from an Observer.
func InstrumentFromObserver(obs Observer) (*Instrument, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewInstrument(newTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
