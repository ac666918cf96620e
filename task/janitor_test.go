package task

import (
	"sync"
	"testing"
	"time"
)

type fakeCleaner struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeCleaner) CleanupExpired() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return 3
}

func TestNewJanitor_Defaults(t *testing.T) {
	j := NewJanitor(NewManager(ManagerConfig{}), nil, JanitorConfig{})

	if j.config.Interval != 5*time.Minute {
		t.Errorf("Interval = %v, want 5m", j.config.Interval)
	}
	if j.config.MaxTaskAge != 60*time.Minute {
		t.Errorf("MaxTaskAge = %v, want 60m", j.config.MaxTaskAge)
	}
}

func TestJanitor_Sweep(t *testing.T) {
	m := NewManager(ManagerConfig{})
	m.Create("old-task")
	m.mu.Lock()
	m.tasks["old-task"].CreatedAt = time.Now().Add(-2 * time.Hour)
	m.mu.Unlock()

	cleaner := &fakeCleaner{}
	j := NewJanitor(m, cleaner, JanitorConfig{MaxTaskAge: time.Hour})

	tasksRemoved, entriesRemoved := j.Sweep()

	if tasksRemoved != 1 {
		t.Errorf("tasksRemoved = %d, want 1", tasksRemoved)
	}
	if entriesRemoved != 3 {
		t.Errorf("entriesRemoved = %d, want 3", entriesRemoved)
	}
}

func TestJanitor_Sweep_NilCache(t *testing.T) {
	j := NewJanitor(NewManager(ManagerConfig{}), nil, JanitorConfig{})

	if _, entriesRemoved := j.Sweep(); entriesRemoved != 0 {
		t.Errorf("entriesRemoved = %d, want 0", entriesRemoved)
	}
}

func TestJanitor_StartStop(t *testing.T) {
	cleaner := &fakeCleaner{}
	var mu sync.Mutex
	sweeps := 0

	j := NewJanitor(NewManager(ManagerConfig{}), cleaner, JanitorConfig{
		Interval: 10 * time.Millisecond,
		OnSweep: func(tasksRemoved, entriesRemoved int) {
			mu.Lock()
			sweeps++
			mu.Unlock()
		},
	})

	j.Start()
	time.Sleep(50 * time.Millisecond)
	j.Stop()

	mu.Lock()
	got := sweeps
	mu.Unlock()
	if got == 0 {
		t.Error("no sweeps ran while started")
	}

	// No sweeps after Stop.
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	after := sweeps
	mu.Unlock()
	if after != got {
		t.Errorf("sweeps continued after Stop: %d -> %d", got, after)
	}

	// Stop is idempotent.
	j.Stop()
}
