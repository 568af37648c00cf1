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

const taskColumns = "id, title, description, deadline, state"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor requires a database handle
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if task.ID == 0 {
		err := s.db.QueryRowContext(ctx,
			`INSERT INTO tasks (title, description, deadline, state)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			task.Title, task.Description, task.Deadline, string(task.State),
		).Scan(&task.ID)
		if err != nil {
			return MapError(err)
		}
	} else {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO tasks (id, title, description, deadline, state)
			 VALUES ($1, $2, $3, $4, $5)`,
			task.ID, task.Title, task.Description, task.Deadline, string(task.State),
		)
		if err != nil {
			return MapError(err)
		}
		// Keep server-assigned ids clear of the client-supplied one. The
		// sequence only moves forward: ids handed to uncommitted inserts are
		// not visible to MAX.
		if _, err := s.db.ExecContext(ctx,
			`SELECT setval(pg_get_serial_sequence('tasks', 'id'),
			               GREATEST((SELECT MAX(id) FROM tasks),
			                        nextval(pg_get_serial_sequence('tasks', 'id'))))`,
		); err != nil {
			return MapError(err)
		}
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		return nil, mapNotFound(err, store.ErrTaskNotFound)
	}
	return task, nil
}

// GetByTitle implements store.TaskStore.GetByTitle
func (s *PostgresTaskStore) GetByTitle(ctx context.Context, title string) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE title = $1`, title)
	task, err := scanTask(row)
	if err != nil {
		return nil, mapNotFound(err, store.ErrTaskNotFound)
	}
	return task, nil
}

// ExistsByID implements store.TaskStore.ExistsByID
func (s *PostgresTaskStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, id)
}

// ExistsByTitle implements store.TaskStore.ExistsByTitle
func (s *PostgresTaskStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE title = $1)`, title)
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	return s.query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
}

// SearchByTitle implements store.TaskStore.SearchByTitle
func (s *PostgresTaskStore) SearchByTitle(ctx context.Context, query string) ([]domain.Task, error) {
	return s.query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE position(lower($1) IN lower(title)) > 0
		 ORDER BY id`, query)
}

// ListByState implements store.TaskStore.ListByState
func (s *PostgresTaskStore) ListByState(
	ctx context.Context,
	state domain.TaskState,
) ([]domain.Task, error) {
	return s.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE state = $1 ORDER BY id`, string(state))
}

// ListDueBy implements store.TaskStore.ListDueBy
func (s *PostgresTaskStore) ListDueBy(ctx context.Context, date domain.Date) ([]domain.Task, error) {
	return s.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE deadline <= $1 ORDER BY id`, date)
}

// ListByUser implements store.TaskStore.ListByUser
func (s *PostgresTaskStore) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.query(ctx,
		`SELECT t.id, t.title, t.description, t.deadline, t.state
		 FROM tasks t
		 JOIN users_tasks ut ON ut.task_id = t.id
		 WHERE ut.user_id = $1
		 ORDER BY t.id`, userID)
}

// UpdateState implements store.TaskStore.UpdateState
func (s *PostgresTaskStore) UpdateState(
	ctx context.Context,
	id int64,
	state domain.TaskState,
) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET state = $1 WHERE id = $2`, string(state), id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// UpdateDeadline implements store.TaskStore.UpdateDeadline
func (s *PostgresTaskStore) UpdateDeadline(
	ctx context.Context,
	id int64,
	deadline domain.Date,
) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET deadline = $1 WHERE id = $2`, deadline, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete
// Assignments are removed by the ON DELETE CASCADE on users_tasks.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("task deleted", slog.Int64("task_id", id))
	return nil
}

// DeleteByState implements store.TaskStore.DeleteByState
func (s *PostgresTaskStore) DeleteByState(
	ctx context.Context,
	state domain.TaskState,
) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE state = $1`, string(state))
	if err != nil {
		return 0, MapError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// Assign implements store.TaskStore.Assign
func (s *PostgresTaskStore) Assign(ctx context.Context, taskID, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users_tasks (user_id, task_id) VALUES ($1, $2)`, userID, taskID)
	if err != nil {
		return MapAssignmentError(err)
	}
	return nil
}

// IsAssigned implements store.TaskStore.IsAssigned
func (s *PostgresTaskStore) IsAssigned(ctx context.Context, taskID, userID int64) (bool, error) {
	return s.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM users_tasks WHERE user_id = $1 AND task_id = $2)`,
		userID, taskID)
}

func (s *PostgresTaskStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, MapError(err)
	}
	return ok, nil
}

func (s *PostgresTaskStore) query(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return tasks, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task  domain.Task
		state string
	)
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Deadline, &state); err != nil {
		return nil, err
	}
	task.State = domain.TaskState(state)
	return &task, nil
}
