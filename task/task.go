package task

import "time"

// Status is a task lifecycle phase.
type Status string

// Task status vocabulary. The expected sequence is planning -> searching
// -> writing -> completed or failed, but the manager does not enforce it.
const (
	StatusPlanning  Status = "planning"
	StatusSearching Status = "searching"
	StatusWriting   Status = "writing"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Valid reports whether s is part of the status vocabulary.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusSearching, StatusWriting, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Terminal reports whether s ends the task lifecycle.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Task is a point-in-time snapshot of a job's progress. Subscribers
// receive value copies; mutating a received Task affects nothing.
type Task struct {
	ID          string
	Status      Status
	CurrentStep string
	Percent     int
	Result      string
	Error       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Update is a partial update to a task. Nil fields are left untouched.
type Update struct {
	Status      *Status
	CurrentStep *string
	Percent     *int
	Result      *string
	Error       *string
}

// Ptr returns a pointer to v, for building Update literals inline.
func Ptr[T any](v T) *T {
	return &v
}

// apply copies the non-nil fields onto t.
func (u Update) apply(t *Task) {
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.CurrentStep != nil {
		t.CurrentStep = *u.CurrentStep
	}
	if u.Percent != nil {
		t.Percent = *u.Percent
	}
	if u.Result != nil {
		t.Result = *u.Result
	}
	if u.Error != nil {
		t.Error = *u.Error
	}
}
