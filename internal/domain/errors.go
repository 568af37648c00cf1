package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a domain entity or value fails validation.
// All field-specific errors below wrap it, so callers can check the whole
// family with errors.Is(err, ErrValidation).
var ErrValidation = errors.New("validation failed")

// Field-level validation errors.
var (
	// ErrEmptyTitle is returned when a task has no title.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrValidation)

	// ErrEmptyDeadline is returned when a task has no deadline.
	ErrEmptyDeadline = fmt.Errorf("%w: deadline cannot be empty", ErrValidation)

	// ErrInvalidDate is returned when a date string is not an ISO calendar date.
	ErrInvalidDate = fmt.Errorf("%w: invalid date format", ErrValidation)

	// ErrInvalidTaskState is returned when a state is not one of TO_DO, DOING, DONE.
	ErrInvalidTaskState = fmt.Errorf("%w: invalid task state", ErrValidation)

	// ErrEmptyEmail is returned when a user has no email address.
	ErrEmptyEmail = fmt.Errorf("%w: email cannot be empty", ErrValidation)

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrValidation)

	// ErrInvalidID is returned when a client-supplied id is not positive.
	ErrInvalidID = fmt.Errorf("%w: id must be positive", ErrValidation)
)
