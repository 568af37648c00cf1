package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/store"
)

// UserService provides user-related operations
type UserService interface {
	// List returns every user ordered by id.
	List(ctx context.Context) ([]domain.User, error)

	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByTaskID returns the users assigned to a task.
	GetByTaskID(ctx context.Context, taskID int64) ([]domain.User, error)

	// Add creates a user and returns it with its id.
	Add(ctx context.Context, user *domain.User) (*domain.User, error)

	// UpdateEmailByID changes a user's email address.
	UpdateEmailByID(ctx context.Context, id int64, email string) (*domain.User, error)

	// UpdateNameByID changes whichever of the names are given.
	UpdateNameByID(ctx context.Context, id int64, firstName, lastName *string) (*domain.User, error)

	// DeleteByID removes the user and returns it.
	DeleteByID(ctx context.Context, id int64) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.UserStore
	tasks  store.TaskStore
	tx     store.Transactor
	logger *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	tasks store.TaskStore,
	tx store.Transactor,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		tasks:  tasks,
		tx:     tx,
		logger: logger.With("component", "user_service"),
	}
}

// List returns every user ordered by id.
func (s *UserServiceImpl) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user by their ID
func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by their email address
func (s *UserServiceImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("user not found by email")
		}
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// GetByTaskID returns the users assigned to a task.
func (s *UserServiceImpl) GetByTaskID(ctx context.Context, taskID int64) ([]domain.User, error) {
	var users []domain.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		ok, err := s.tasks.WithTx(tx).ExistsByID(ctx, taskID)
		if err != nil {
			return err
		}
		if !ok {
			return store.ErrTaskNotFound
		}
		users, err = s.users.WithTx(tx).ListByTask(ctx, taskID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get users of task %d: %w", taskID, err)
	}
	return users, nil
}

// Add creates a user. A client-supplied id already in use is checked before
// the email.
func (s *UserServiceImpl) Add(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, invalidInput(errors.New("user is required"))
	}

	created := *user
	created.Email = strings.TrimSpace(created.Email)
	if err := created.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)

		if created.ID != 0 {
			exists, err := users.ExistsByID(ctx, created.ID)
			if err != nil {
				return err
			}
			if exists {
				return store.ErrUserIDExists
			}
		}

		exists, err := users.ExistsByEmail(ctx, created.Email)
		if err != nil {
			return err
		}
		if exists {
			return store.ErrEmailExists
		}

		return users.Create(ctx, &created)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("attempted to create duplicate user", "error", err)
		} else {
			s.logger.Error("failed to create user", "error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", created.ID)
	return &created, nil
}

// UpdateEmailByID changes a user's email address. Setting the address the
// user already has succeeds without writing; an address owned by another
// user is rejected with ErrEmailTaken.
func (s *UserServiceImpl) UpdateEmailByID(
	ctx context.Context,
	id int64,
	email string,
) (*domain.User, error) {
	email = strings.TrimSpace(email)

	var updated *domain.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)

		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.ValidateEmail(email); err != nil {
			return invalidInput(err)
		}
		if user.Email == email {
			updated = user
			return nil
		}

		taken, err := users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		user.Email = email
		if err := users.Update(ctx, user); err != nil {
			if errors.Is(err, store.ErrEmailExists) {
				return fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user email: %w", err)
	}

	s.logger.Info("user email updated", "user_id", id)
	return updated, nil
}

// UpdateNameByID changes whichever of the names are given and differ from
// the current ones. It succeeds whenever the user exists.
func (s *UserServiceImpl) UpdateNameByID(
	ctx context.Context,
	id int64,
	firstName, lastName *string,
) (*domain.User, error) {
	var updated *domain.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)

		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user.Rename(firstName, lastName) {
			if err := users.Update(ctx, user); err != nil {
				return err
			}
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user name: %w", err)
	}
	return updated, nil
}

// DeleteByID removes the user and returns it. Assignments go with it.
func (s *UserServiceImpl) DeleteByID(ctx context.Context, id int64) (*domain.User, error) {
	var deleted *domain.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)

		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := users.Delete(ctx, id); err != nil {
			return err
		}
		deleted = user
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return deleted, nil
}
