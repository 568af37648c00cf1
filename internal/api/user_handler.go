package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/event-calendar-api/internal/api/shared"
	"github.com/phrazzld/event-calendar-api/internal/platform/logger"
	"github.com/phrazzld/event-calendar-api/internal/service"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("user service cannot be nil for UserHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// RegisterRoutes mounts the user routes under /users.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/id/{id}", h.GetByID)
		r.Get("/task/{taskId}", h.GetByTaskID)
		r.Put("/name/{id}", h.UpdateName)
		r.Delete("/{id}", h.Delete)

		// GET takes an email and PUT a user id in the same position; chi
		// needs one parameter name per position.
		r.Route("/email/{key}", func(r chi.Router) {
			r.Get("/", h.GetByEmail)
			r.Put("/", h.UpdateEmail)
		})
	})
}

// List handles GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// GetByID handles GET /users/id/{id}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// GetByEmail handles GET /users/email/{email}
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email, err := pathString(r, "key")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// GetByTaskID handles GET /users/task/{taskId}
func (h *UserHandler) GetByTaskID(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathInt64(r, "taskId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	users, err := h.users.GetByTaskID(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// Create handles POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		log.Debug("invalid create user request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.Add(r.Context(), req.ToDomain())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("user created", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// UpdateEmail handles PUT /users/email/{id}?email=
func (h *UserHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "key")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	email, err := requiredQuery(r, "email")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.UpdateEmailByID(r.Context(), id, email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateName handles PUT /users/name/{id}?firstname=&lastname=. Either
// parameter may be omitted.
func (h *UserHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.UpdateNameByID(
		r.Context(),
		id,
		optionalQuery(r, "firstname"),
		optionalQuery(r, "lastname"),
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.DeleteByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}
