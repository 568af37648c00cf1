package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/event-calendar-api/internal/api/shared"
	"github.com/phrazzld/event-calendar-api/internal/platform/logger"
	"github.com/phrazzld/event-calendar-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task service cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// RegisterRoutes mounts the task routes under /tasks.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/id/{id}", h.GetByID)
		r.Get("/title/{title}", h.GetByTitle)
		r.Get("/search_title/{query}", h.SearchByTitle)
		r.Get("/state/{state}", h.GetByState)
		r.Get("/deadline/{deadline}", h.GetUntilDeadline)
		r.Get("/user/{userId}", h.GetByUserID)

		r.Put("/state/id/{id}", h.UpdateStateByID)
		r.Put("/state/title/{title}", h.UpdateStateByTitle)
		r.Put("/deadline/id/{id}", h.UpdateDeadlineByID)
		r.Put("/deadline/title/{title}", h.UpdateDeadlineByTitle)
		r.Put("/assign/{taskId}", h.Assign)

		r.Delete("/done", h.ClearDone)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetByID handles GET /tasks/id/{id}
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// GetByTitle handles GET /tasks/title/{title}
func (h *TaskHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	title, err := pathString(r, "title")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.GetByTitle(r.Context(), title)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// SearchByTitle handles GET /tasks/search_title/{query}
func (h *TaskHandler) SearchByTitle(w http.ResponseWriter, r *http.Request) {
	query, err := pathString(r, "query")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.tasks.SearchByTitle(r.Context(), query)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetByState handles GET /tasks/state/{state}
func (h *TaskHandler) GetByState(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.GetByState(r.Context(), chi.URLParam(r, "state"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetUntilDeadline handles GET /tasks/deadline/{deadline}, where deadline
// is YYYY-MM-DD or "today".
func (h *TaskHandler) GetUntilDeadline(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.GetUntilDeadline(r.Context(), chi.URLParam(r, "deadline"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetByUserID handles GET /tasks/user/{userId}
func (h *TaskHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt64(r, "userId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.tasks.GetByUserID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Create handles POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := decodeAndValidate(r, &req); err != nil {
		log.Debug("invalid create task request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Add(r.Context(), req.ToDomain())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// UpdateStateByID handles PUT /tasks/state/id/{id}?state=
func (h *TaskHandler) UpdateStateByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	state, err := requiredQuery(r, "state")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.UpdateStateByID(r.Context(), id, state)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateStateByTitle handles PUT /tasks/state/title/{title}?state=
func (h *TaskHandler) UpdateStateByTitle(w http.ResponseWriter, r *http.Request) {
	title, err := pathString(r, "title")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	state, err := requiredQuery(r, "state")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.UpdateStateByTitle(r.Context(), title, state)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateDeadlineByID handles PUT /tasks/deadline/id/{id}?deadline=
func (h *TaskHandler) UpdateDeadlineByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	deadline, err := requiredQuery(r, "deadline")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.UpdateDeadlineByID(r.Context(), id, deadline)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateDeadlineByTitle handles PUT /tasks/deadline/title/{title}?deadline=
func (h *TaskHandler) UpdateDeadlineByTitle(w http.ResponseWriter, r *http.Request) {
	title, err := pathString(r, "title")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	deadline, err := requiredQuery(r, "deadline")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.UpdateDeadlineByTitle(r.Context(), title, deadline)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Assign handles PUT /tasks/assign/{taskId}?userid=
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathInt64(r, "taskId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	userID, err := queryInt64(r, "userid")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tasks.Assign(r.Context(), taskID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, true)
}

// Delete handles DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ClearDone handles DELETE /tasks/done
func (h *TaskHandler) ClearDone(w http.ResponseWriter, r *http.Request) {
	n, err := h.tasks.ClearDone(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ClearDoneResponse{Deleted: n})
}
