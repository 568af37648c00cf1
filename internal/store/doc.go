// Package store defines the persistence interfaces for tasks, users and
// their assignments, the errors every implementation reports, and the
// transaction helpers services use to keep read-then-write sequences
// atomic. Implementations live under internal/platform.
package store
