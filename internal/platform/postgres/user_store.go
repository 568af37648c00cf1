package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/platform/logger"
	"github.com/phrazzld/event-calendar-api/internal/store"
)

const userColumns = "id, first_name, last_name, email"

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: constructor requires a database handle
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if user.ID == 0 {
		err := s.db.QueryRowContext(ctx,
			`INSERT INTO users (first_name, last_name, email)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			user.FirstName, user.LastName, user.Email,
		).Scan(&user.ID)
		if err != nil {
			return MapError(err)
		}
	} else {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO users (id, first_name, last_name, email)
			 VALUES ($1, $2, $3, $4)`,
			user.ID, user.FirstName, user.LastName, user.Email,
		)
		if err != nil {
			return MapError(err)
		}
		if _, err := s.db.ExecContext(ctx,
			`SELECT setval(pg_get_serial_sequence('users', 'id'),
			               GREATEST((SELECT MAX(id) FROM users),
			                        nextval(pg_get_serial_sequence('users', 'id'))))`,
		); err != nil {
			return MapError(err)
		}
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("user created", slog.Int64("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, mapNotFound(err, store.ErrUserNotFound)
	}
	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, mapNotFound(err, store.ErrUserNotFound)
	}
	return user, nil
}

// ExistsByID implements store.UserStore.ExistsByID
func (s *PostgresUserStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, MapError(err)
	}
	return ok, nil
}

// ExistsByEmail implements store.UserStore.ExistsByEmail
func (s *PostgresUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&ok)
	if err != nil {
		return false, MapError(err)
	}
	return ok, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context) ([]domain.User, error) {
	return s.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

// ListByTask implements store.UserStore.ListByTask
func (s *PostgresUserStore) ListByTask(ctx context.Context, taskID int64) ([]domain.User, error) {
	return s.query(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.email
		 FROM users u
		 JOIN users_tasks ut ON ut.user_id = u.id
		 WHERE ut.task_id = $1
		 ORDER BY u.id`, taskID)
}

// Update implements store.UserStore.Update
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, email = $3 WHERE id = $4`,
		user.FirstName, user.LastName, user.Email, user.ID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// Delete implements store.UserStore.Delete
// Assignments are removed by the ON DELETE CASCADE on users_tasks.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("user deleted", slog.Int64("user_id", id))
	return nil
}

func (s *PostgresUserStore) query(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, MapError(err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return users, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email); err != nil {
		return nil, err
	}
	return &user, nil
}
