package api

import (
	"github.com/phrazzld/event-calendar-api/internal/domain"
)

// CreateTaskRequest defines the payload for POST /tasks. ID is optional;
// when given it must not be in use. State is accepted for compatibility and
// ignored: new tasks always start in TO_DO.
type CreateTaskRequest struct {
	ID          int64       `json:"id"          validate:"gte=0"`
	Title       string      `json:"title"       validate:"max=255"`
	Description string      `json:"description" validate:"max=4096"`
	Deadline    domain.Date `json:"deadline"`
	State       string      `json:"state"`
}

// ToDomain converts the request into a task.
func (r CreateTaskRequest) ToDomain() *domain.Task {
	return &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Deadline:    r.Deadline,
		State:       domain.TaskStateToDo,
	}
}

// CreateUserRequest defines the payload for POST /users.
type CreateUserRequest struct {
	ID        int64  `json:"id"        validate:"gte=0"`
	FirstName string `json:"firstName" validate:"max=255"`
	LastName  string `json:"lastName"  validate:"max=255"`
	Email     string `json:"email"     validate:"max=320"`
}

// ToDomain converts the request into a user.
func (r CreateUserRequest) ToDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

// ClearDoneResponse is returned by DELETE /tasks/done.
type ClearDoneResponse struct {
	Deleted int64 `json:"deleted"`
}
