package domain

import "fmt"

// TaskState is the lifecycle state of a task.
type TaskState string

// Possible task states. Transitions between them are unrestricted.
const (
	TaskStateToDo  TaskState = "TO_DO"
	TaskStateDoing TaskState = "DOING"
	TaskStateDone  TaskState = "DONE"
)

// ParseTaskState converts s into a TaskState. Matching is exact and
// case-sensitive.
func ParseTaskState(s string) (TaskState, error) {
	state := TaskState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskState, s)
	}
	return state, nil
}

// IsValid reports whether s is one of the known states.
func (s TaskState) IsValid() bool {
	switch s {
	case TaskStateToDo, TaskStateDoing, TaskStateDone:
		return true
	default:
		return false
	}
}

// Task is a calendar entry with a unique title, a deadline and a state.
// Users assigned to a task are kept in a separate relation and are not
// part of the entity.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    Date      `json:"deadline"`
	State       TaskState `json:"state"`
}

// Validate checks the task's fields.
func (t *Task) Validate() error {
	if t.ID < 0 {
		return ErrInvalidID
	}

	if t.Title == "" {
		return ErrEmptyTitle
	}

	if t.Deadline.IsZero() {
		return ErrEmptyDeadline
	}

	if !t.State.IsValid() {
		return ErrInvalidTaskState
	}

	return nil
}

// IsDueBy reports whether the task's deadline is on or before d.
func (t *Task) IsDueBy(d Date) bool {
	return !t.Deadline.After(d)
}
