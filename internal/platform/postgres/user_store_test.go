//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/platform/postgres"
	"github.com/phrazzld/event-calendar-api/internal/store"
	"github.com/phrazzld/event-calendar-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreateUser(t *testing.T, s store.UserStore, first, last, email string) *domain.User {
	t.Helper()
	user := &domain.User{FirstName: first, LastName: last, Email: email}
	require.NoError(t, s.Create(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func TestPostgresUserStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()

	testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresUserStore(tx, nil)
		user := mustCreateUser(t, s, "erfan", "sadraiye", "erfan@example.com")

		byID, err := s.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, *user, *byID)

		byEmail, err := s.GetByEmail(ctx, "erfan@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		_, err = s.GetByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		_, err = s.GetByID(ctx, 987654321)
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		ok, err := s.ExistsByEmail(ctx, "erfan@example.com")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.ExistsByID(ctx, 987654321)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPostgresUserStore_DuplicateEmail(t *testing.T) {
	testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresUserStore(tx, nil)
		mustCreateUser(t, s, "a", "b", "dup@example.com")

		err := s.Create(context.Background(), &domain.User{Email: "dup@example.com"})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestPostgresUserStore_DuplicateID(t *testing.T) {
	testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresUserStore(tx, nil)
		first := mustCreateUser(t, s, "a", "b", "first@example.com")

		err := s.Create(context.Background(), &domain.User{ID: first.ID, Email: "second@example.com"})
		assert.ErrorIs(t, err, store.ErrUserIDExists)
	})
}

func TestPostgresUserStore_ClientIDDoesNotRewindSequence(t *testing.T) {
	ctx := context.Background()

	testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresUserStore(tx, nil)
		first := mustCreateUser(t, s, "a", "b", "first@example.com")
		last := mustCreateUser(t, s, "c", "d", "last@example.com")
		require.NoError(t, s.Delete(ctx, first.ID))
		require.NoError(t, s.Delete(ctx, last.ID))

		require.NoError(t, s.Create(ctx, &domain.User{ID: first.ID, Email: "reused@example.com"}))

		next := mustCreateUser(t, s, "e", "f", "next@example.com")
		assert.Greater(t, next.ID, last.ID)
	})
}

func TestPostgresUserStore_ListUpdateDelete(t *testing.T) {
	ctx := context.Background()

	testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
		emptyTables(t, tx)
		s := postgres.NewPostgresUserStore(tx, nil)

		u1 := mustCreateUser(t, s, "a", "one", "one@example.com")
		u2 := mustCreateUser(t, s, "b", "two", "two@example.com")

		all, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, u1.ID, all[0].ID)
		assert.Equal(t, u2.ID, all[1].ID)

		u1.FirstName = "renamed"
		u1.Email = "renamed@example.com"
		require.NoError(t, s.Update(ctx, u1))

		got, err := s.GetByID(ctx, u1.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.FirstName)
		assert.Equal(t, "renamed@example.com", got.Email)

		require.NoError(t, s.Delete(ctx, u1.ID))
		assert.ErrorIs(t, s.Delete(ctx, u1.ID), store.ErrUserNotFound)
		assert.ErrorIs(t, s.Update(ctx, u1), store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_UpdateToTakenEmail(t *testing.T) {
	testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresUserStore(tx, nil)
		mustCreateUser(t, s, "a", "b", "taken@example.com")
		u := mustCreateUser(t, s, "c", "d", "free@example.com")

		u.Email = "taken@example.com"
		assert.ErrorIs(t, s.Update(context.Background(), u), store.ErrEmailExists)
	})
}
