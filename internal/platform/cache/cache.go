// Package cache caches task list query results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/phrazzld/event-calendar-api/internal/config"
	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/platform/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	taskListNamespace = "tasks:"
	generationKey     = "tasks-generation"
)

// TaskCache stores JSON-encoded task lists under
// prefix+"tasks:"+generation+":"+key. The generation counter lives outside
// the list namespace so that InvalidateAll never resets it.
type TaskCache struct {
	rdb           *redis.Client
	prefix        string
	generationKey string
	ttl           time.Duration
}

// NewTaskCache returns a TaskCache using rdb.
func NewTaskCache(rdb *redis.Client, prefix string, ttl time.Duration) *TaskCache {
	return &TaskCache{
		rdb:           rdb,
		prefix:        prefix + taskListNamespace,
		generationKey: prefix + generationKey,
		ttl:           ttl,
	}
}

// Connect opens a Redis client from cfg and verifies it with PING.
func Connect(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// Generation returns the current generation, 0 before the first invalidation.
func (c *TaskCache) Generation(ctx context.Context) (uint64, error) {
	gen, err := c.rdb.Get(ctx, c.generationKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		metrics.ObserveCache(metrics.CacheError)
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

func (c *TaskCache) key(generation uint64, key string) string {
	return c.prefix + strconv.FormatUint(generation, 10) + ":" + key
}

// Get returns the cached list for key in generation. The boolean is false
// on a miss.
func (c *TaskCache) Get(ctx context.Context, generation uint64, key string) ([]domain.Task, bool, error) {
	b, err := c.rdb.Get(ctx, c.key(generation, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ObserveCache(metrics.CacheMiss)
		return nil, false, nil
	}
	if err != nil {
		metrics.ObserveCache(metrics.CacheError)
		return nil, false, err
	}

	var tasks []domain.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		metrics.ObserveCache(metrics.CacheError)
		return nil, false, fmt.Errorf("failed to decode cached tasks: %w", err)
	}
	metrics.ObserveCache(metrics.CacheHit)
	return tasks, true, nil
}

// Set stores tasks under key in generation for the configured TTL. A list
// from a superseded generation is written where no reader looks and expires
// with the TTL.
func (c *TaskCache) Set(ctx context.Context, generation uint64, key string, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(generation, key), b, c.ttl).Err()
}

// InvalidateAll starts a new generation, then removes the cached lists.
func (c *TaskCache) InvalidateAll(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, c.generationKey).Err(); err != nil {
		return fmt.Errorf("failed to advance cache generation: %w", err)
	}

	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	keys := make([]string, 0, 16)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
