package observe

import (
	"context"
	"io"
	"testing"
	"time"
)

func BenchmarkLogger_Info(b *testing.B) {
	l := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info(ctx, "stage completed", Field{Key: "duration_ms", Value: 12.0})
	}
}

func BenchmarkLogger_FilteredOut(b *testing.B) {
	l := NewLoggerWithWriter("error", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Debug(ctx, "dropped")
	}
}

func BenchmarkNoopMetrics_RecordStage(b *testing.B) {
	m := NewNoopMetrics()
	ctx := context.Background()
	meta := StageMeta{Stage: "search"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.RecordStage(ctx, meta, time.Millisecond, nil)
	}
}
