package task

import (
	"sync"
	"time"
)

// ExpiredCleaner is the slice of the cache the janitor needs.
type ExpiredCleaner interface {
	CleanupExpired() int
}

// JanitorConfig configures the background janitor.
type JanitorConfig struct {
	// Interval between sweeps.
	// Default: 5 minutes
	Interval time.Duration

	// MaxTaskAge is the age past which tasks are removed.
	// Default: 60 minutes
	MaxTaskAge time.Duration

	// OnSweep is called after each sweep with the removal counts.
	OnSweep func(tasksRemoved, entriesRemoved int)
}

// Janitor periodically removes stale tasks and expired cache entries. It
// is owned by the process lifecycle, independent of any single request.
type Janitor struct {
	config  JanitorConfig
	manager *Manager
	cache   ExpiredCleaner

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewJanitor creates a janitor over the given manager. cache may be nil
// when there is no cache to sweep.
func NewJanitor(manager *Manager, cache ExpiredCleaner, config JanitorConfig) *Janitor {
	// Apply defaults
	if config.Interval <= 0 {
		config.Interval = 5 * time.Minute
	}
	if config.MaxTaskAge <= 0 {
		config.MaxTaskAge = 60 * time.Minute
	}

	return &Janitor{
		config:  config,
		manager: manager,
		cache:   cache,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the sweep loop. It returns immediately.
func (j *Janitor) Start() {
	go func() {
		defer close(j.done)

		ticker := time.NewTicker(j.config.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-j.stop:
				return
			case <-ticker.C:
				j.Sweep()
			}
		}
	}()
}

// Stop halts the sweep loop and waits for it to exit. Idempotent.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
	<-j.done
}

// Sweep runs one cleanup pass immediately and returns the removal counts.
func (j *Janitor) Sweep() (tasksRemoved, entriesRemoved int) {
	tasksRemoved = j.manager.CleanupOldTasks(j.config.MaxTaskAge)
	if j.cache != nil {
		entriesRemoved = j.cache.CleanupExpired()
	}
	if j.config.OnSweep != nil {
		j.config.OnSweep(tasksRemoved, entriesRemoved)
	}
	return tasksRemoved, entriesRemoved
}
