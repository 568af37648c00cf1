package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/event-calendar-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
// 1. Lookups and uniqueness failures surface the store's sentinel errors
// (store.ErrTaskNotFound, store.ErrTitleExists, ...) wrapped with context.
// 2. Rejected input wraps ErrInvalidInput.
// 3. Callers use errors.Is to check for specific error conditions.
// 4. The API layer maps NotFound to 404, Duplicate to 409 and InvalidInput to 406.
// ErrEmailTaken is the one duplicate reported as 406.
var (
	// ErrInvalidInput marks a request the service refuses to apply: an
	// unparseable state or date, a no-op update, or a deadline in the past.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState indicates a state value outside TO_DO, DOING and DONE.
	ErrInvalidState = fmt.Errorf("%w: invalid task state", ErrInvalidInput)

	// ErrInvalidDeadline indicates a deadline that is not a YYYY-MM-DD date.
	ErrInvalidDeadline = fmt.Errorf("%w: invalid deadline", ErrInvalidInput)

	// ErrStateUnchanged is returned when the requested state equals the current one.
	ErrStateUnchanged = fmt.Errorf("%w: new state and current state are same", ErrInvalidInput)

	// ErrDeadlineUnchanged is returned when the requested deadline equals the current one.
	ErrDeadlineUnchanged = fmt.Errorf(
		"%w: new deadline and current deadline are same",
		ErrInvalidInput,
	)

	// ErrEmailTaken is returned when a user's email is changed to one another
	// user owns. It matches both ErrInvalidInput and store.ErrEmailExists.
	ErrEmailTaken = fmt.Errorf("%w: %w", ErrInvalidInput, store.ErrEmailExists)

	// ErrDeadlinePassed is returned when a new task's deadline is before today.
	ErrDeadlinePassed = fmt.Errorf("%w: deadline is before today", ErrInvalidInput)
)

// invalidInput wraps a domain validation error so that it also matches ErrInvalidInput.
func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
