package exporters

import (
	"context"
	"errors"
	"testing"
)

func clearOTLPEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")
}

func TestNewTracingExporter_Stdout(t *testing.T) {
	exp, err := NewTracingExporter(context.Background(), "stdout")
	if err != nil {
		t.Fatalf("NewTracingExporter(stdout) error: %v", err)
	}
	if exp == nil {
		t.Fatal("exporter is nil")
	}
	exp.Shutdown(context.Background())
}

func TestNewTracingExporter_None(t *testing.T) {
	for _, name := range []string{"none", ""} {
		exp, err := NewTracingExporter(context.Background(), name)
		if err != nil {
			t.Fatalf("NewTracingExporter(%q) error: %v", name, err)
		}
		if exp == nil {
			t.Fatalf("NewTracingExporter(%q) = nil", name)
		}
		exp.Shutdown(context.Background())
	}
}

func TestNewTracingExporter_OTLPRequiresEndpoint(t *testing.T) {
	clearOTLPEnv(t)

	if _, err := NewTracingExporter(context.Background(), "otlp"); !errors.Is(err, ErrEndpointNotConfigured) {
		t.Errorf("error = %v, want ErrEndpointNotConfigured", err)
	}
}

func TestNewTracingExporter_Unknown(t *testing.T) {
	if _, err := NewTracingExporter(context.Background(), "zipkin"); err == nil {
		t.Error("expected error for unknown exporter")
	}
}

func TestNewMetricsReader_Stdout(t *testing.T) {
	reader, err := NewMetricsReader(context.Background(), "stdout")
	if err != nil {
		t.Fatalf("NewMetricsReader(stdout) error: %v", err)
	}
	reader.Shutdown(context.Background())
}

func TestNewMetricsReader_Prometheus(t *testing.T) {
	reader, err := NewMetricsReader(context.Background(), "prometheus")
	if err != nil {
		t.Fatalf("NewMetricsReader(prometheus) error: %v", err)
	}
	reader.Shutdown(context.Background())
}

func TestNewMetricsReader_None(t *testing.T) {
	for _, name := range []string{"none", ""} {
		reader, err := NewMetricsReader(context.Background(), name)
		if err != nil {
			t.Fatalf("NewMetricsReader(%q) error: %v", name, err)
		}
		reader.Shutdown(context.Background())
	}
}

func TestNewMetricsReader_OTLPRequiresEndpoint(t *testing.T) {
	clearOTLPEnv(t)

	if _, err := NewMetricsReader(context.Background(), "otlp"); !errors.Is(err, ErrEndpointNotConfigured) {
		t.Errorf("error = %v, want ErrEndpointNotConfigured", err)
	}
}

func TestNewMetricsReader_Unknown(t *testing.T) {
	if _, err := NewMetricsReader(context.Background(), "statsd"); err == nil {
		t.Error("expected error for unknown exporter")
	}
}
