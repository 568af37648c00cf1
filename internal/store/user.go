package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/event-calendar-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. A zero ID is assigned by the store and written
	// back to user.ID; a non-zero ID is used as given.
	// Returns ErrUserIDExists or ErrEmailExists on uniqueness violations.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByID reports whether a user with the id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByEmail reports whether any user has the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns all users ordered by id.
	List(ctx context.Context) ([]domain.User, error)

	// ListByTask returns the users assigned to a task.
	ListByTask(ctx context.Context, taskID int64) ([]domain.User, error)

	// Update writes the user's names and email.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user and its assignments.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
