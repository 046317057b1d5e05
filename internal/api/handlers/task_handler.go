package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kavr/tasktrack-be/internal/auth"
	"github.com/kavr/tasktrack-be/internal/models"
	"github.com/kavr/tasktrack-be/internal/services"
	"github.com/kavr/tasktrack-be/internal/validation"
)

// TaskHandler handles HTTP requests for task management. Every route it
// serves sits behind the auth middleware, so the current user is always
// present in the request context.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles task creation for the authenticated user.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var payload models.CreateTaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Malformed request body")
		return
	}
	if fieldErrs := validation.Struct(&payload); fieldErrs != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fieldErrs)
		return
	}

	task, err := h.service.Create(r.Context(), user.ID, &payload)
	if err != nil {
		writeInternalError(w, err, "Failed to create task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// List returns every task owned by the authenticated user, in creation
// order.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	tasks, err := h.service.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeInternalError(w, err, "Failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// Complete marks one of the authenticated user's tasks as done.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	task, err := h.service.Complete(r.Context(), user.ID, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			writeDetail(w, http.StatusNotFound, "Task not found")
			return
		}
		writeInternalError(w, err, "Failed to complete task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Delete removes one of the authenticated user's tasks.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, taskID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			writeDetail(w, http.StatusNotFound, "Task not found")
			return
		}
		writeInternalError(w, err, "Failed to delete task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// taskIDParam parses the {id} path parameter, writing a validation error
// and returning ok=false when it is not an integer.
func taskIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, []validation.FieldError{
			{Field: "id", Error: "value is not a valid integer"},
		})
		return 0, false
	}
	return id, true
}
