package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/event-calendar-api/internal/platform/postgres"
	"github.com/phrazzld/event-calendar-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "tasks",
		ColumnName:     "title",
		ConstraintName: constraint,
	}
}

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, m.err }
func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), store.ErrNotFound},
		{"task id", newPgError("23505", "tasks_pkey"), store.ErrTaskIDExists},
		{"title", newPgError("23505", "tasks_title_key"), store.ErrTitleExists},
		{"user id", newPgError("23505", "users_pkey"), store.ErrUserIDExists},
		{"email", newPgError("23505", "users_email_key"), store.ErrEmailExists},
		{"assignment", newPgError("23505", "users_tasks_pkey"), store.ErrAlreadyAssigned},
		{"unknown unique", newPgError("23505", "other_key"), store.ErrDuplicate},
		{"foreign key", newPgError("23503", "users_tasks_task_id_fkey"), store.ErrInvalidEntity},
		{"check", newPgError("23514", "tasks_state_check"), store.ErrInvalidEntity},
		{"not null", newPgError("23502", ""), store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := postgres.MapError(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("unmapped error passes through", func(t *testing.T) {
		t.Parallel()
		orig := errors.New("connection reset")
		assert.Same(t, orig, postgres.MapError(orig))
	})

	t.Run("specific duplicates are still duplicates", func(t *testing.T) {
		t.Parallel()
		got := postgres.MapError(newPgError("23505", "tasks_title_key"))
		assert.True(t, store.IsDuplicateError(got))
		assert.False(t, errors.Is(got, store.ErrEmailExists))
	})
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsForeignKeyViolation(fmt.Errorf("wrap: %w", newPgError("23503", ""))))
	assert.False(t, postgres.IsForeignKeyViolation(newPgError("23505", "")))
	assert.False(t, postgres.IsForeignKeyViolation(errors.New("generic")))
	assert.False(t, postgres.IsForeignKeyViolation(nil))
}

func TestMapAssignmentError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"user deleted", newPgError("23503", "users_tasks_user_id_fkey"), store.ErrUserNotFound},
		{"task deleted", newPgError("23503", "users_tasks_task_id_fkey"), store.ErrTaskNotFound},
		{"already assigned", newPgError("23505", "users_tasks_pkey"), store.ErrAlreadyAssigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, postgres.MapAssignmentError(tt.err), tt.want)
		})
	}
	assert.NoError(t, postgres.MapAssignmentError(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrTaskNotFound))
	assert.ErrorIs(t,
		postgres.CheckRowsAffected(mockResult{rowsAffected: 0}, store.ErrTaskNotFound),
		store.ErrTaskNotFound)
	assert.ErrorIs(t,
		postgres.CheckRowsAffected(mockResult{rowsAffected: 0}, nil),
		store.ErrNotFound)
	assert.Error(t, postgres.CheckRowsAffected(nil, nil))

	resultErr := errors.New("driver failure")
	assert.ErrorIs(t, postgres.CheckRowsAffected(mockResult{err: resultErr}, nil), resultErr)
}
