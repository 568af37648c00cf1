package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint (duplicate id, title, email or assignment).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or a write violates a non-unique constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrTaskNotFound indicates that the requested task does not exist.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrTaskIDExists is returned when creating a task with an id already in use.
	ErrTaskIDExists = fmt.Errorf("%w: task id", ErrDuplicate)

	// ErrTitleExists is returned when a task title is already in use.
	ErrTitleExists = fmt.Errorf("%w: title", ErrDuplicate)

	// ErrUserIDExists is returned when creating a user with an id already in use.
	ErrUserIDExists = fmt.Errorf("%w: user id", ErrDuplicate)

	// ErrEmailExists is returned when an email address is already in use.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrAlreadyAssigned is returned when a user already has the task.
	ErrAlreadyAssigned = fmt.Errorf("%w: assignment", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
