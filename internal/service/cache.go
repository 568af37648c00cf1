package service

import (
	"context"
	"strings"

	"github.com/phrazzld/event-calendar-api/internal/domain"
)

// TaskListCache caches the results of task list queries.
//
// Entries belong to a generation. InvalidateAll starts a new generation, so
// a list loaded before an invalidation and stored afterwards under the
// generation read before loading is never served.
type TaskListCache interface {
	// Generation returns the current generation.
	Generation(ctx context.Context) (uint64, error)
	// Get returns the cached tasks for key in generation; ok is false on a miss.
	Get(ctx context.Context, generation uint64, key string) (tasks []domain.Task, ok bool, err error)
	// Set stores tasks under key in generation.
	Set(ctx context.Context, generation uint64, key string, tasks []domain.Task) error
	// InvalidateAll drops every cached list and starts a new generation.
	InvalidateAll(ctx context.Context) error
}

// noopCache is used when no cache is configured.
type noopCache struct{}

func (noopCache) Generation(context.Context) (uint64, error) { return 0, nil }
func (noopCache) Get(context.Context, uint64, string) ([]domain.Task, bool, error) {
	return nil, false, nil
}
func (noopCache) Set(context.Context, uint64, string, []domain.Task) error { return nil }
func (noopCache) InvalidateAll(context.Context) error                    { return nil }

// Cache keys for the task list queries.
const cacheKeyList = "list"

func cacheKeySearch(query string) string {
	return "search:" + strings.ToLower(query)
}

func cacheKeyState(state domain.TaskState) string {
	return "state:" + string(state)
}

func cacheKeyDeadline(date domain.Date) string {
	return "deadline:" + date.String()
}
