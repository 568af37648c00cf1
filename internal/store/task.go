package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/event-calendar-api/internal/domain"
)

// TaskStore defines the interface for task persistence, including the
// task side of the user/task assignment relation.
type TaskStore interface {
	// Create saves a new task. A zero ID is assigned by the store and written
	// back to task.ID; a non-zero ID is used as given.
	// Returns ErrTaskIDExists or ErrTitleExists on uniqueness violations.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by id.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetByTitle retrieves a task by exact, case-sensitive title.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByTitle(ctx context.Context, title string) (*domain.Task, error)

	// ExistsByID reports whether a task with the id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByTitle reports whether a task with the exact title exists.
	ExistsByTitle(ctx context.Context, title string) (bool, error)

	// List returns all tasks ordered by id.
	List(ctx context.Context) ([]domain.Task, error)

	// SearchByTitle returns tasks whose title contains query, ignoring case.
	SearchByTitle(ctx context.Context, query string) ([]domain.Task, error)

	// ListByState returns tasks in the given state.
	ListByState(ctx context.Context, state domain.TaskState) ([]domain.Task, error)

	// ListDueBy returns tasks whose deadline is on or before the date.
	ListDueBy(ctx context.Context, date domain.Date) ([]domain.Task, error)

	// ListByUser returns the tasks assigned to a user.
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)

	// UpdateState sets a task's state.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateState(ctx context.Context, id int64, state domain.TaskState) error

	// UpdateDeadline sets a task's deadline.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateDeadline(ctx context.Context, id int64, deadline domain.Date) error

	// Delete removes a task and its assignments.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// DeleteByState removes every task in the given state and returns how
	// many were removed.
	DeleteByState(ctx context.Context, state domain.TaskState) (int64, error)

	// Assign links a user to a task.
	// Returns ErrAlreadyAssigned if the link exists.
	Assign(ctx context.Context, taskID, userID int64) error

	// IsAssigned reports whether the user has the task.
	IsAssigned(ctx context.Context, taskID, userID int64) (bool, error)

	// WithTx returns a TaskStore that runs its queries in tx.
	WithTx(tx *sql.Tx) TaskStore
}
