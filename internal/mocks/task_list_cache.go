package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/event-calendar-api/internal/domain"
)

// MockTaskListCache is an in-memory service.TaskListCache.
// GetErr, SetErr and InvalidateErr simulate an unavailable cache.
// BeforeSet, when set, runs before each Set and can simulate a write that
// lands between loading a list and caching it.
type MockTaskListCache struct {
	mu            sync.Mutex
	generation    uint64
	entries       map[string][]domain.Task
	Invalidations int

	GetErr        error
	SetErr        error
	InvalidateErr error
	BeforeSet     func()
}

// NewMockTaskListCache returns an empty cache.
func NewMockTaskListCache() *MockTaskListCache {
	return &MockTaskListCache{entries: make(map[string][]domain.Task)}
}

// Generation implements service.TaskListCache.
func (c *MockTaskListCache) Generation(context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.GetErr != nil {
		return 0, c.GetErr
	}
	return c.generation, nil
}

// Get implements service.TaskListCache.
func (c *MockTaskListCache) Get(_ context.Context, generation uint64, key string) ([]domain.Task, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.GetErr != nil {
		return nil, false, c.GetErr
	}
	if generation != c.generation {
		return nil, false, nil
	}
	tasks, ok := c.entries[key]
	return tasks, ok, nil
}

// Set implements service.TaskListCache. Lists from an earlier generation
// are dropped.
func (c *MockTaskListCache) Set(_ context.Context, generation uint64, key string, tasks []domain.Task) error {
	if c.BeforeSet != nil {
		c.BeforeSet()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SetErr != nil {
		return c.SetErr
	}
	if generation != c.generation {
		return nil
	}
	c.entries[key] = tasks
	return nil
}

// InvalidateAll implements service.TaskListCache.
func (c *MockTaskListCache) InvalidateAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidations++
	if c.InvalidateErr != nil {
		return c.InvalidateErr
	}
	c.generation++
	c.entries = make(map[string][]domain.Task)
	return nil
}

// Has reports whether key is cached in the current generation.
func (c *MockTaskListCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
