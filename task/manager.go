package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ManagerConfig configures the task manager.
type ManagerConfig struct {
	// SubscriberBuffer is the per-subscriber queue capacity. When a
	// subscriber's queue is full the snapshot is dropped for that
	// subscriber only; the next delivered snapshot carries complete state.
	// Default: 16
	SubscriberBuffer int

	// OnUpdate is called with the post-update snapshot after fan-out.
	OnUpdate func(snapshot Task)
}

// Manager is the in-memory task registry with publish/subscribe progress
// notification. All state is process-lifetime; nothing survives a restart.
type Manager struct {
	config ManagerConfig

	mu      sync.Mutex
	tasks   map[string]*Task
	subs    map[string]map[uint64]chan Task
	nextSub uint64
}

// NewManager creates a new task manager.
func NewManager(config ManagerConfig) *Manager {
	// Apply defaults
	if config.SubscriberBuffer <= 0 {
		config.SubscriberBuffer = 16
	}

	return &Manager{
		config: config,
		tasks:  make(map[string]*Task),
		subs:   make(map[string]map[uint64]chan Task),
	}
}

// Create registers a new task in status planning at zero percent and
// returns its initial snapshot. An empty id is replaced with a generated
// one. Creating an id that already exists resets the task in place.
func (m *Manager) Create(id string) Task {
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now()
	t := &Task{
		ID:          id,
		Status:      StatusPlanning,
		CurrentStep: "Starting...",
		Percent:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.mu.Lock()
	m.tasks[id] = t
	m.mu.Unlock()

	return *t
}

// Update applies a partial update and pushes the resulting snapshot to
// every current subscriber of the task. An unknown id is a silent no-op.
// Delivery is best-effort per subscriber: a full queue drops the snapshot
// for that subscriber without blocking the update or the others.
func (m *Manager) Update(id string, u Update) {
	m.mu.Lock()

	t, ok := m.tasks[id]
	if !ok {
		m.mu.Unlock()
		return
	}

	u.apply(t)
	t.UpdatedAt = time.Now()
	snapshot := *t

	for _, queue := range m.subs[id] {
		select {
		case queue <- snapshot:
		default:
			// Slow subscriber; drop rather than block the mutator.
		}
	}
	m.mu.Unlock()

	if m.config.OnUpdate != nil {
		m.config.OnUpdate(snapshot)
	}
}

// Subscribe registers a new delivery queue for the task and returns it
// with a cancel function. Each subscriber receives every update from its
// subscription point onward; there is no historical replay. Subscribing
// before the task exists is allowed. The queue is closed by cancel or when
// the task is removed.
func (m *Manager) Subscribe(id string) (<-chan Task, func()) {
	queue := make(chan Task, m.config.SubscriberBuffer)

	m.mu.Lock()
	token := m.nextSub
	m.nextSub++
	if m.subs[id] == nil {
		m.subs[id] = make(map[uint64]chan Task)
	}
	m.subs[id][token] = queue
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if q, ok := m.subs[id][token]; ok {
			delete(m.subs[id], token)
			if len(m.subs[id]) == 0 {
				delete(m.subs, id)
			}
			close(q)
		}
	}
	return queue, cancel
}

// Get returns the current snapshot of a task.
func (m *Manager) Get(id string) (Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// Len returns the number of registered tasks.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// CleanupOldTasks removes tasks created more than maxAge ago, along with
// their subscriber queues (which are closed). Returns the number removed.
func (m *Manager) CleanupOldTasks(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, t := range m.tasks {
		if t.CreatedAt.Before(cutoff) {
			delete(m.tasks, id)
			for _, queue := range m.subs[id] {
				close(queue)
			}
			delete(m.subs, id)
			removed++
		}
	}
	return removed
}
