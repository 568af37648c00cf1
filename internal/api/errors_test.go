package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/event-calendar-api/internal/api/shared"
	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/service"
	"github.com/phrazzld/event-calendar-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"wrapped user not found", fmt.Errorf("failed: %w", store.ErrUserNotFound), http.StatusNotFound},
		{"title exists", store.ErrTitleExists, http.StatusConflict},
		{"already assigned", fmt.Errorf("assign: %w", store.ErrAlreadyAssigned), http.StatusConflict},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"email taken on update", fmt.Errorf("failed to update user email: %w", service.ErrEmailTaken), http.StatusNotAcceptable},
		{"invalid state", service.ErrInvalidState, http.StatusNotAcceptable},
		{"deadline passed", service.ErrDeadlinePassed, http.StatusNotAcceptable},
		{"domain validation", domain.ErrInvalidEmail, http.StatusNotAcceptable},
		{"malformed request", malformed(errors.New("bad id")), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"task not found", fmt.Errorf("get: %w", store.ErrTaskNotFound), "Task not found"},
		{"user not found", store.ErrUserNotFound, "User not found"},
		{"title exists", store.ErrTitleExists, "Task title already exists"},
		{"email taken on update", service.ErrEmailTaken, "Email already exists"},
		{"already assigned", store.ErrAlreadyAssigned, "User is already assigned to this task"},
		{"state unchanged", service.ErrStateUnchanged, "New state and current state are same"},
		{"deadline passed", service.ErrDeadlinePassed, "Deadline is before today"},
		{"invalid email", fmt.Errorf("%w: %w", service.ErrInvalidInput, domain.ErrInvalidEmail), "Invalid email format"},
		{"malformed", malformed(errors.New("unexpected EOF")), "Invalid request format"},
		{
			"internal details hidden",
			errors.New("pq: relation tasks does not exist at /srv/app/store.go"),
			"An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(&CreateTaskRequest{ID: -1, Title: "x"})

	assert.Equal(t, "Invalid id: too small", SanitizeValidationError(err))
	assert.Equal(t, "Invalid id: too small", GetSafeErrorMessage(malformed(err)))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("plain")))
}
