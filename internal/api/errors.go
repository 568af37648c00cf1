package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/event-calendar-api/internal/api/shared"
	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/service"
	"github.com/phrazzld/event-calendar-api/internal/store"
)

// ErrMalformedRequest marks a request that could not be parsed: a bad path
// id, a missing query parameter or an undecodable body.
var ErrMalformedRequest = errors.New("malformed request")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusNotAcceptable

	case errors.Is(err, ErrMalformedRequest),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, domain.ErrValidation):
		return http.StatusNotAcceptable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	// Conflict
	case errors.Is(err, store.ErrTaskIDExists):
		return "Task id already exists"
	case errors.Is(err, store.ErrTitleExists):
		return "Task title already exists"
	case errors.Is(err, store.ErrUserIDExists):
		return "User id already exists"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrAlreadyAssigned):
		return "User is already assigned to this task"
	case errors.Is(err, store.ErrDuplicate):
		return "Entity already exists"

	// Invalid input
	case errors.Is(err, service.ErrInvalidState):
		return "Invalid task state"
	case errors.Is(err, service.ErrInvalidDeadline):
		return "Invalid deadline"
	case errors.Is(err, service.ErrStateUnchanged):
		return "New state and current state are same"
	case errors.Is(err, service.ErrDeadlineUnchanged):
		return "New deadline and current deadline are same"
	case errors.Is(err, service.ErrDeadlinePassed):
		return "Deadline is before today"
	case errors.Is(err, domain.ErrEmptyTitle):
		return "Title is required"
	case errors.Is(err, domain.ErrEmptyDeadline):
		return "Deadline is required"
	case errors.Is(err, domain.ErrEmptyEmail):
		return "Email is required"
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email format"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid id"
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, domain.ErrValidation):
		return "Invalid input"

	// Malformed request
	case errors.Is(err, ErrMalformedRequest):
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return SanitizeValidationError(verrs)
		}
		return "Invalid request format"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator output into a message naming the
// first failing field, without echoing submitted values.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted error with the request's trace ID. A non-empty message overrides
// the safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// malformed wraps err so that it maps to 400.
func malformed(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
}
