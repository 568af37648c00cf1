// Package service contains the calendar's use cases: task queries and
// updates, user management, and assignment of users to tasks.
//
// Services depend on the store interfaces and a store.Transactor, never on a
// concrete database. Every read-then-write sequence (existence checks, no-op
// detection, uniqueness checks followed by the write) runs inside one
// transaction so that the check and the mutation are atomic.
//
// Errors:
//   - lookups that find nothing return errors matching store.ErrNotFound
//   - uniqueness failures return errors matching store.ErrDuplicate
//   - rejected input returns errors matching ErrInvalidInput
//
// TaskService can be given a TaskListCache; list queries are then served
// from the cache and every task write invalidates it. Cache failures are
// logged and never fail a request.
package service
