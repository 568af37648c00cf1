// Package postgres provides PostgreSQL implementations of the task and user
// stores defined in internal/store, using database/sql with the pgx driver.
// It maps driver errors (unique, foreign key and not-null violations, missing
// rows) to the store package's sentinel errors. The schema lives in the
// embedded goose migrations of the migrations subpackage.
package postgres
