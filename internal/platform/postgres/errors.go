package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/event-calendar-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// Constraint names created by the schema migrations.
const (
	constraintTasksPKey      = "tasks_pkey"
	constraintTasksTitle     = "tasks_title_key"
	constraintUsersPKey      = "users_pkey"
	constraintUsersEmail     = "users_email_key"
	constraintUsersTasksPKey = "users_tasks_pkey"
	constraintUsersTasksUser = "users_tasks_user_id_fkey"
)

// uniqueConstraintErrors maps a unique constraint to the store error that
// describes its violation.
var uniqueConstraintErrors = map[string]error{
	constraintTasksPKey:      store.ErrTaskIDExists,
	constraintTasksTitle:     store.ErrTitleExists,
	constraintUsersPKey:      store.ErrUserIDExists,
	constraintUsersEmail:     store.ErrEmailExists,
	constraintUsersTasksPKey: store.ErrAlreadyAssigned,
}

// MapError maps a database error to an appropriate store error, wrapping the
// original so that the driver detail stays available to logs.
// Unique violations on a known constraint map to the constraint's specific
// error (for example store.ErrTitleExists).
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if specific, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
				return fmt.Errorf("%w: %v", specific, err)
			}
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		}
	}

	return err
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// MapAssignmentError maps an error from inserting into users_tasks. A
// foreign key violation means the task or user was deleted after it was
// looked up, and is reported as that entity's not-found error.
func MapAssignmentError(err error) error {
	if !IsForeignKeyViolation(err) {
		return MapError(err)
	}

	var pgErr *pgconn.PgError
	_ = errors.As(err, &pgErr)
	if pgErr.ConstraintName == constraintUsersTasksUser {
		return fmt.Errorf("%w: %v", store.ErrUserNotFound, err)
	}
	return fmt.Errorf("%w: %v", store.ErrTaskNotFound, err)
}

// CheckRowsAffected examines the number of rows affected by an UPDATE or
// DELETE. If no rows were affected, it returns notFound (or store.ErrNotFound
// when notFound is nil).
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}

// mapNotFound converts sql.ErrNoRows to the entity-specific not-found error
// and everything else through MapError.
func mapNotFound(err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return MapError(err)
}
