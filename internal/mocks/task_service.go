package mocks

import (
	"context"

	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	ListFn                  func(ctx context.Context) ([]domain.Task, error)
	GetByIDFn               func(ctx context.Context, id int64) (*domain.Task, error)
	GetByTitleFn            func(ctx context.Context, title string) (*domain.Task, error)
	SearchByTitleFn         func(ctx context.Context, query string) ([]domain.Task, error)
	GetByStateFn            func(ctx context.Context, state string) ([]domain.Task, error)
	GetUntilDeadlineFn      func(ctx context.Context, deadline string) ([]domain.Task, error)
	GetByUserIDFn           func(ctx context.Context, userID int64) ([]domain.Task, error)
	AddFn                   func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdateStateByIDFn       func(ctx context.Context, id int64, state string) (*domain.Task, error)
	UpdateStateByTitleFn    func(ctx context.Context, title, state string) (*domain.Task, error)
	UpdateDeadlineByIDFn    func(ctx context.Context, id int64, deadline string) (*domain.Task, error)
	UpdateDeadlineByTitleFn func(ctx context.Context, title, deadline string) (*domain.Task, error)
	AssignFn                func(ctx context.Context, taskID, userID int64) error
	DeleteFn                func(ctx context.Context, id int64) (*domain.Task, error)
	ClearDoneFn             func(ctx context.Context) (int64, error)

	// Default return values
	Task         *domain.Task
	Tasks        []domain.Task
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// List implements the TaskService.List method
func (m *MockTaskService) List(ctx context.Context) ([]domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// GetByID implements the TaskService.GetByID method
func (m *MockTaskService) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// GetByTitle implements the TaskService.GetByTitle method
func (m *MockTaskService) GetByTitle(ctx context.Context, title string) (*domain.Task, error) {
	if m.GetByTitleFn != nil {
		return m.GetByTitleFn(ctx, title)
	}
	return m.Task, m.DefaultError
}

// SearchByTitle implements the TaskService.SearchByTitle method
func (m *MockTaskService) SearchByTitle(ctx context.Context, query string) ([]domain.Task, error) {
	if m.SearchByTitleFn != nil {
		return m.SearchByTitleFn(ctx, query)
	}
	return m.Tasks, m.DefaultError
}

// GetByState implements the TaskService.GetByState method
func (m *MockTaskService) GetByState(ctx context.Context, state string) ([]domain.Task, error) {
	if m.GetByStateFn != nil {
		return m.GetByStateFn(ctx, state)
	}
	return m.Tasks, m.DefaultError
}

// GetUntilDeadline implements the TaskService.GetUntilDeadline method
func (m *MockTaskService) GetUntilDeadline(ctx context.Context, deadline string) ([]domain.Task, error) {
	if m.GetUntilDeadlineFn != nil {
		return m.GetUntilDeadlineFn(ctx, deadline)
	}
	return m.Tasks, m.DefaultError
}

// GetByUserID implements the TaskService.GetByUserID method
func (m *MockTaskService) GetByUserID(ctx context.Context, userID int64) ([]domain.Task, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return m.Tasks, m.DefaultError
}

// Add implements the TaskService.Add method
func (m *MockTaskService) Add(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if m.AddFn != nil {
		return m.AddFn(ctx, task)
	}
	return m.Task, m.DefaultError
}

// UpdateStateByID implements the TaskService.UpdateStateByID method
func (m *MockTaskService) UpdateStateByID(ctx context.Context, id int64, state string) (*domain.Task, error) {
	if m.UpdateStateByIDFn != nil {
		return m.UpdateStateByIDFn(ctx, id, state)
	}
	return m.Task, m.DefaultError
}

// UpdateStateByTitle implements the TaskService.UpdateStateByTitle method
func (m *MockTaskService) UpdateStateByTitle(ctx context.Context, title, state string) (*domain.Task, error) {
	if m.UpdateStateByTitleFn != nil {
		return m.UpdateStateByTitleFn(ctx, title, state)
	}
	return m.Task, m.DefaultError
}

// UpdateDeadlineByID implements the TaskService.UpdateDeadlineByID method
func (m *MockTaskService) UpdateDeadlineByID(ctx context.Context, id int64, deadline string) (*domain.Task, error) {
	if m.UpdateDeadlineByIDFn != nil {
		return m.UpdateDeadlineByIDFn(ctx, id, deadline)
	}
	return m.Task, m.DefaultError
}

// UpdateDeadlineByTitle implements the TaskService.UpdateDeadlineByTitle method
func (m *MockTaskService) UpdateDeadlineByTitle(ctx context.Context, title, deadline string) (*domain.Task, error) {
	if m.UpdateDeadlineByTitleFn != nil {
		return m.UpdateDeadlineByTitleFn(ctx, title, deadline)
	}
	return m.Task, m.DefaultError
}

// Assign implements the TaskService.Assign method
func (m *MockTaskService) Assign(ctx context.Context, taskID, userID int64) error {
	if m.AssignFn != nil {
		return m.AssignFn(ctx, taskID, userID)
	}
	return m.DefaultError
}

// Delete implements the TaskService.Delete method
func (m *MockTaskService) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// ClearDone implements the TaskService.ClearDone method
func (m *MockTaskService) ClearDone(ctx context.Context) (int64, error) {
	if m.ClearDoneFn != nil {
		return m.ClearDoneFn(ctx)
	}
	return 0, m.DefaultError
}
