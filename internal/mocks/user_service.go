package mocks

import (
	"context"

	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	// Custom behavior functions
	ListFn            func(ctx context.Context) ([]domain.User, error)
	GetByIDFn         func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	GetByTaskIDFn     func(ctx context.Context, taskID int64) ([]domain.User, error)
	AddFn             func(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateEmailByIDFn func(ctx context.Context, id int64, email string) (*domain.User, error)
	UpdateNameByIDFn  func(ctx context.Context, id int64, firstName, lastName *string) (*domain.User, error)
	DeleteByIDFn      func(ctx context.Context, id int64) (*domain.User, error)

	// Default return values
	User         *domain.User
	Users        []domain.User
	DefaultError error
}

var _ service.UserService = (*MockUserService)(nil)

// List implements the UserService.List method
func (m *MockUserService) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Users, m.DefaultError
}

// GetByID implements the UserService.GetByID method
func (m *MockUserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.User, m.DefaultError
}

// GetByEmail implements the UserService.GetByEmail method
func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.User, m.DefaultError
}

// GetByTaskID implements the UserService.GetByTaskID method
func (m *MockUserService) GetByTaskID(ctx context.Context, taskID int64) ([]domain.User, error) {
	if m.GetByTaskIDFn != nil {
		return m.GetByTaskIDFn(ctx, taskID)
	}
	return m.Users, m.DefaultError
}

// Add implements the UserService.Add method
func (m *MockUserService) Add(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.AddFn != nil {
		return m.AddFn(ctx, user)
	}
	return m.User, m.DefaultError
}

// UpdateEmailByID implements the UserService.UpdateEmailByID method
func (m *MockUserService) UpdateEmailByID(ctx context.Context, id int64, email string) (*domain.User, error) {
	if m.UpdateEmailByIDFn != nil {
		return m.UpdateEmailByIDFn(ctx, id, email)
	}
	return m.User, m.DefaultError
}

// UpdateNameByID implements the UserService.UpdateNameByID method
func (m *MockUserService) UpdateNameByID(ctx context.Context, id int64, firstName, lastName *string) (*domain.User, error) {
	if m.UpdateNameByIDFn != nil {
		return m.UpdateNameByIDFn(ctx, id, firstName, lastName)
	}
	return m.User, m.DefaultError
}

// DeleteByID implements the UserService.DeleteByID method
func (m *MockUserService) DeleteByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.DeleteByIDFn != nil {
		return m.DeleteByIDFn(ctx, id)
	}
	return m.User, m.DefaultError
}
