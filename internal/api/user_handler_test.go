package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/mocks"
	"github.com/phrazzld/event-calendar-api/internal/service"
	"github.com/phrazzld/event-calendar-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRouter(users service.UserService) chi.Router {
	r := chi.NewRouter()
	NewUserHandler(users, discardLogger()).RegisterRoutes(r)
	return r
}

var sampleUser = domain.User{ID: 1, FirstName: "erfan", LastName: "sadraiye", Email: "erfan@gmail.com"}

func TestUserHandler_Gets(t *testing.T) {
	users := &mocks.MockUserService{
		GetByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			if id != 1 {
				return nil, store.ErrUserNotFound
			}
			u := sampleUser
			return &u, nil
		},
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email != sampleUser.Email {
				return nil, store.ErrUserNotFound
			}
			u := sampleUser
			return &u, nil
		},
		GetByTaskIDFn: func(ctx context.Context, taskID int64) ([]domain.User, error) {
			if taskID != 1 {
				return nil, store.ErrTaskNotFound
			}
			return []domain.User{sampleUser}, nil
		},
		Users: []domain.User{sampleUser},
	}
	router := newUserRouter(users)

	w := doRequest(t, router, http.MethodGet, "/users/id/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"id":1,"firstName":"erfan","lastName":"sadraiye","email":"erfan@gmail.com"}`,
		w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/users/id/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeError(t, w).Error)

	w = doRequest(t, router, http.MethodGet, "/users/email/erfan@gmail.com", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/users/email/nobody@gmail.com", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Equal(t, []domain.User{sampleUser}, all)

	w = doRequest(t, router, http.MethodGet, "/users/task/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/users/task/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decodeError(t, w).Error)
}

func TestUserHandler_Create(t *testing.T) {
	users := &mocks.MockUserService{
		AddFn: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			if user.Email == sampleUser.Email {
				return nil, store.ErrEmailExists
			}
			created := *user
			created.ID = 2
			return &created, nil
		},
	}
	router := newUserRouter(users)

	w := doRequest(t, router, http.MethodPost, "/users",
		`{"firstName":"ali","lastName":"a","email":"ali@gmail.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(2), created.ID)
	assert.Equal(t, "ali@gmail.com", created.Email)

	w = doRequest(t, router, http.MethodPost, "/users", `{"email":"erfan@gmail.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already exists", decodeError(t, w).Error)

	w = doRequest(t, router, http.MethodPost, "/users", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_UpdateEmail(t *testing.T) {
	var gotID int64
	var gotEmail string
	users := &mocks.MockUserService{
		UpdateEmailByIDFn: func(ctx context.Context, id int64, email string) (*domain.User, error) {
			gotID, gotEmail = id, email
			switch email {
			case "bad":
				return nil, service.ErrInvalidInput
			case "taken@gmail.com":
				return nil, service.ErrEmailTaken
			}
			u := sampleUser
			u.Email = email
			return &u, nil
		},
	}
	router := newUserRouter(users)

	w := doRequest(t, router, http.MethodPut, "/users/email/1?email=new@gmail.com", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), gotID)
	assert.Equal(t, "new@gmail.com", gotEmail)

	w = doRequest(t, router, http.MethodPut, "/users/email/1?email=bad", "")
	assert.Equal(t, http.StatusNotAcceptable, w.Code)

	w = doRequest(t, router, http.MethodPut, "/users/email/1?email=taken@gmail.com", "")
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.Equal(t, "Email already exists", decodeError(t, w).Error)

	w = doRequest(t, router, http.MethodPut, "/users/email/erfan@gmail.com?email=x@gmail.com", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "PUT takes a user id")

	w = doRequest(t, router, http.MethodPut, "/users/email/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_UpdateName(t *testing.T) {
	var first, last *string
	users := &mocks.MockUserService{
		UpdateNameByIDFn: func(ctx context.Context, id int64, firstName, lastName *string) (*domain.User, error) {
			if id != 1 {
				return nil, store.ErrUserNotFound
			}
			first, last = firstName, lastName
			u := sampleUser
			u.Rename(firstName, lastName)
			return &u, nil
		},
	}
	router := newUserRouter(users)

	w := doRequest(t, router, http.MethodPut, "/users/name/1?lastname=rahmani", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, first)
	require.NotNil(t, last)
	assert.Equal(t, "rahmani", *last)

	var got domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "erfan", got.FirstName)
	assert.Equal(t, "rahmani", got.LastName)

	w = doRequest(t, router, http.MethodPut, "/users/name/1?firstname=ali&lastname=", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, first)
	require.NotNil(t, last)
	assert.Equal(t, "ali", *first)
	assert.Equal(t, "", *last)

	w = doRequest(t, router, http.MethodPut, "/users/name/9?firstname=x", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_Delete(t *testing.T) {
	users := &mocks.MockUserService{
		DeleteByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			if id != 1 {
				return nil, store.ErrUserNotFound
			}
			u := sampleUser
			return &u, nil
		},
	}
	router := newUserRouter(users)

	w := doRequest(t, router, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"erfan@gmail.com"`)

	w = doRequest(t, router, http.MethodDelete, "/users/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
