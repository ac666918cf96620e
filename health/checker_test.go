package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
		{Status(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	h := Healthy("all good")
	if h.Status != StatusHealthy || h.Message != "all good" {
		t.Errorf("Healthy() = %+v", h)
	}
	if h.Timestamp.IsZero() {
		t.Error("Healthy() timestamp is zero")
	}

	d := Degraded("slow")
	if d.Status != StatusDegraded {
		t.Errorf("Degraded() status = %v", d.Status)
	}

	cause := errors.New("boom")
	u := Unhealthy("down", cause)
	if u.Status != StatusUnhealthy || !errors.Is(u.Error, cause) {
		t.Errorf("Unhealthy() = %+v", u)
	}
}

func TestResult_WithDetails(t *testing.T) {
	r := Healthy("ok").WithDetails(map[string]any{"size": 5})
	if r.Details["size"] != 5 {
		t.Errorf("Details = %v", r.Details)
	}
}

func TestCheckerFunc(t *testing.T) {
	c := NewCheckerFunc("custom", func(ctx context.Context) Result {
		return Degraded("wrapped")
	})

	if c.Name() != "custom" {
		t.Errorf("Name() = %q", c.Name())
	}
	if got := c.Check(context.Background()); got.Status != StatusDegraded {
		t.Errorf("Check() status = %v, want degraded", got.Status)
	}
}
