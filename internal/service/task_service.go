package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/store"
)

// TodayLiteral is accepted by GetUntilDeadline in place of a date.
const TodayLiteral = "today"

// TaskService provides task queries, updates and user assignment.
type TaskService interface {
	// List returns every task ordered by id.
	List(ctx context.Context) ([]domain.Task, error)

	// GetByID returns the task with the id.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetByTitle returns the task with the exact title.
	GetByTitle(ctx context.Context, title string) (*domain.Task, error)

	// SearchByTitle returns tasks whose title contains query, ignoring case.
	SearchByTitle(ctx context.Context, query string) ([]domain.Task, error)

	// GetByState returns tasks in the named state.
	GetByState(ctx context.Context, state string) ([]domain.Task, error)

	// GetUntilDeadline returns tasks due on or before deadline, which is a
	// YYYY-MM-DD date or TodayLiteral.
	GetUntilDeadline(ctx context.Context, deadline string) ([]domain.Task, error)

	// GetByUserID returns the tasks assigned to a user.
	GetByUserID(ctx context.Context, userID int64) ([]domain.Task, error)

	// Add creates a task in state TO_DO and returns it with its id.
	Add(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// UpdateStateByID sets the state of the task with the id.
	UpdateStateByID(ctx context.Context, id int64, state string) (*domain.Task, error)

	// UpdateStateByTitle sets the state of the task with the title.
	UpdateStateByTitle(ctx context.Context, title, state string) (*domain.Task, error)

	// UpdateDeadlineByID sets the deadline of the task with the id.
	UpdateDeadlineByID(ctx context.Context, id int64, deadline string) (*domain.Task, error)

	// UpdateDeadlineByTitle sets the deadline of the task with the title.
	UpdateDeadlineByTitle(ctx context.Context, title, deadline string) (*domain.Task, error)

	// Assign links a user to a task.
	Assign(ctx context.Context, taskID, userID int64) error

	// Delete removes the task and returns it.
	Delete(ctx context.Context, id int64) (*domain.Task, error)

	// ClearDone removes every DONE task and returns how many were removed.
	ClearDone(ctx context.Context) (int64, error)
}

// TaskServiceOption configures a TaskServiceImpl.
type TaskServiceOption func(*TaskServiceImpl)

// WithClock overrides the clock used to resolve "today".
func WithClock(now func() time.Time) TaskServiceOption {
	return func(s *TaskServiceImpl) {
		s.now = now
	}
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	tasks  store.TaskStore
	users  store.UserStore
	tx     store.Transactor
	cache  TaskListCache
	logger *slog.Logger
	now    func() time.Time
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService. A nil cache disables caching.
func NewTaskService(
	tasks store.TaskStore,
	users store.UserStore,
	tx store.Transactor,
	cache TaskListCache,
	logger *slog.Logger,
	opts ...TaskServiceOption,
) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = noopCache{}
	}
	s := &TaskServiceImpl{
		tasks:  tasks,
		users:  users,
		tx:     tx,
		cache:  cache,
		logger: logger.With("component", "task_service"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskServiceImpl) today() domain.Date {
	return domain.DateOf(s.now())
}

// List returns every task ordered by id.
func (s *TaskServiceImpl) List(ctx context.Context) ([]domain.Task, error) {
	return s.cachedList(ctx, cacheKeyList, func() ([]domain.Task, error) {
		return s.tasks.List(ctx)
	})
}

// GetByID returns the task with the id.
func (s *TaskServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return task, nil
}

// GetByTitle returns the task with the exact title.
func (s *TaskServiceImpl) GetByTitle(ctx context.Context, title string) (*domain.Task, error) {
	task, err := s.tasks.GetByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to get task by title: %w", err)
	}
	return task, nil
}

// SearchByTitle returns tasks whose title contains query, ignoring case.
func (s *TaskServiceImpl) SearchByTitle(ctx context.Context, query string) ([]domain.Task, error) {
	return s.cachedList(ctx, cacheKeySearch(query), func() ([]domain.Task, error) {
		return s.tasks.SearchByTitle(ctx, query)
	})
}

// GetByState returns tasks in the named state.
func (s *TaskServiceImpl) GetByState(ctx context.Context, state string) ([]domain.Task, error) {
	parsed, err := parseState(state)
	if err != nil {
		return nil, err
	}
	return s.cachedList(ctx, cacheKeyState(parsed), func() ([]domain.Task, error) {
		return s.tasks.ListByState(ctx, parsed)
	})
}

// GetUntilDeadline returns tasks due on or before the given date.
func (s *TaskServiceImpl) GetUntilDeadline(
	ctx context.Context,
	deadline string,
) ([]domain.Task, error) {
	var date domain.Date
	if strings.EqualFold(strings.TrimSpace(deadline), TodayLiteral) {
		date = s.today()
	} else {
		parsed, err := parseDeadline(deadline)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	return s.cachedList(ctx, cacheKeyDeadline(date), func() ([]domain.Task, error) {
		return s.tasks.ListDueBy(ctx, date)
	})
}

// GetByUserID returns the tasks assigned to a user.
func (s *TaskServiceImpl) GetByUserID(ctx context.Context, userID int64) ([]domain.Task, error) {
	var tasks []domain.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		ok, err := s.users.WithTx(tx).ExistsByID(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return store.ErrUserNotFound
		}
		tasks, err = s.tasks.WithTx(tx).ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks of user %d: %w", userID, err)
	}
	return tasks, nil
}

// Add creates a task. Checks run in order: client-supplied id already in
// use, title already in use, deadline before today.
func (s *TaskServiceImpl) Add(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, invalidInput(errors.New("task is required"))
	}

	created := *task
	created.State = domain.TaskStateToDo
	if err := created.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		if created.ID != 0 {
			exists, err := tasks.ExistsByID(ctx, created.ID)
			if err != nil {
				return err
			}
			if exists {
				return store.ErrTaskIDExists
			}
		}

		exists, err := tasks.ExistsByTitle(ctx, created.Title)
		if err != nil {
			return err
		}
		if exists {
			return store.ErrTitleExists
		}

		if created.Deadline.Before(s.today()) {
			return ErrDeadlinePassed
		}

		return tasks.Create(ctx, &created)
	})
	if err != nil {
		s.logger.Debug("task rejected",
			"error", err,
			"title", created.Title)
		return nil, fmt.Errorf("failed to add task: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Info("task created",
		"task_id", created.ID,
		"deadline", created.Deadline.String())

	return &created, nil
}

// UpdateStateByID sets the state of the task with the id.
func (s *TaskServiceImpl) UpdateStateByID(
	ctx context.Context,
	id int64,
	state string,
) (*domain.Task, error) {
	return s.updateState(ctx, state, func(ctx context.Context, tasks store.TaskStore) (*domain.Task, error) {
		return tasks.GetByID(ctx, id)
	})
}

// UpdateStateByTitle sets the state of the task with the title.
func (s *TaskServiceImpl) UpdateStateByTitle(
	ctx context.Context,
	title, state string,
) (*domain.Task, error) {
	return s.updateState(ctx, state, func(ctx context.Context, tasks store.TaskStore) (*domain.Task, error) {
		return tasks.GetByTitle(ctx, title)
	})
}

// UpdateDeadlineByID sets the deadline of the task with the id.
func (s *TaskServiceImpl) UpdateDeadlineByID(
	ctx context.Context,
	id int64,
	deadline string,
) (*domain.Task, error) {
	return s.updateDeadline(ctx, deadline, func(ctx context.Context, tasks store.TaskStore) (*domain.Task, error) {
		return tasks.GetByID(ctx, id)
	})
}

// UpdateDeadlineByTitle sets the deadline of the task with the title.
func (s *TaskServiceImpl) UpdateDeadlineByTitle(
	ctx context.Context,
	title, deadline string,
) (*domain.Task, error) {
	return s.updateDeadline(ctx, deadline, func(ctx context.Context, tasks store.TaskStore) (*domain.Task, error) {
		return tasks.GetByTitle(ctx, title)
	})
}

type taskLookup func(ctx context.Context, tasks store.TaskStore) (*domain.Task, error)

// updateState resolves the task first, so a missing task is reported
// before an unparseable state.
func (s *TaskServiceImpl) updateState(
	ctx context.Context,
	state string,
	lookup taskLookup,
) (*domain.Task, error) {
	var updated *domain.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		task, err := lookup(ctx, tasks)
		if err != nil {
			return err
		}
		parsed, err := parseState(state)
		if err != nil {
			return err
		}
		if parsed == task.State {
			return ErrStateUnchanged
		}
		if err := tasks.UpdateState(ctx, task.ID, parsed); err != nil {
			return err
		}
		task.State = parsed
		updated = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task state: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Info("task state updated",
		"task_id", updated.ID,
		"state", updated.State)
	return updated, nil
}

// updateDeadline mirrors updateState. Past deadlines are accepted here; only
// Add rejects them.
func (s *TaskServiceImpl) updateDeadline(
	ctx context.Context,
	deadline string,
	lookup taskLookup,
) (*domain.Task, error) {
	var updated *domain.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		task, err := lookup(ctx, tasks)
		if err != nil {
			return err
		}
		parsed, err := parseDeadline(deadline)
		if err != nil {
			return err
		}
		if parsed.Equal(task.Deadline) {
			return ErrDeadlineUnchanged
		}
		if err := tasks.UpdateDeadline(ctx, task.ID, parsed); err != nil {
			return err
		}
		task.Deadline = parsed
		updated = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task deadline: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Info("task deadline updated",
		"task_id", updated.ID,
		"deadline", updated.Deadline.String())
	return updated, nil
}

// Assign links a user to a task.
func (s *TaskServiceImpl) Assign(ctx context.Context, taskID, userID int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		ok, err := tasks.ExistsByID(ctx, taskID)
		if err != nil {
			return err
		}
		if !ok {
			return store.ErrTaskNotFound
		}

		ok, err = s.users.WithTx(tx).ExistsByID(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return store.ErrUserNotFound
		}

		assigned, err := tasks.IsAssigned(ctx, taskID, userID)
		if err != nil {
			return err
		}
		if assigned {
			return store.ErrAlreadyAssigned
		}
		return tasks.Assign(ctx, taskID, userID)
	})
	if err != nil {
		return fmt.Errorf("failed to assign user %d to task %d: %w", userID, taskID, err)
	}

	s.invalidate(ctx)
	s.logger.Info("user assigned to task",
		"task_id", taskID,
		"user_id", userID)
	return nil
}

// Delete removes the task and returns it.
func (s *TaskServiceImpl) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	var deleted *domain.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		task, err := tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := tasks.Delete(ctx, id); err != nil {
			return err
		}
		deleted = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete task %d: %w", id, err)
	}

	s.invalidate(ctx)
	s.logger.Info("task deleted", "task_id", id)
	return deleted, nil
}

// ClearDone removes every DONE task.
func (s *TaskServiceImpl) ClearDone(ctx context.Context) (int64, error) {
	n, err := s.tasks.DeleteByState(ctx, domain.TaskStateDone)
	if err != nil {
		return 0, fmt.Errorf("failed to clear done tasks: %w", err)
	}

	if n > 0 {
		s.invalidate(ctx)
	}
	s.logger.Info("done tasks cleared", "deleted", n)
	return n, nil
}

// cachedList serves key from the cache, falling back to load on a miss or a
// cache failure. The result is stored under the generation read before
// loading, so a write that invalidates in between leaves it unserved.
func (s *TaskServiceImpl) cachedList(
	ctx context.Context,
	key string,
	load func() ([]domain.Task, error),
) ([]domain.Task, error) {
	generation, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("task cache read failed",
			"error", err,
			"key", key)
		return s.loadList(load)
	}

	if tasks, ok, err := s.cache.Get(ctx, generation, key); err != nil {
		s.logger.Warn("task cache read failed",
			"error", err,
			"key", key)
	} else if ok {
		return tasks, nil
	}

	tasks, err := s.loadList(load)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, generation, key, tasks); err != nil {
		s.logger.Warn("task cache write failed",
			"error", err,
			"key", key)
	}
	return tasks, nil
}

func (s *TaskServiceImpl) loadList(load func() ([]domain.Task, error)) ([]domain.Task, error) {
	tasks, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskServiceImpl) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("task cache invalidation failed", "error", err)
	}
}

func parseState(state string) (domain.TaskState, error) {
	parsed, err := domain.ParseTaskState(state)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, state)
	}
	return parsed, nil
}

func parseDeadline(deadline string) (domain.Date, error) {
	parsed, err := domain.ParseDate(strings.TrimSpace(deadline))
	if err != nil {
		return domain.Date{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, deadline)
	}
	return parsed, nil
}
