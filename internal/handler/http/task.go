package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wforce/workforce-backend-go/internal/domain/task"
	"github.com/wforce/workforce-backend-go/internal/handler/http/response"
)

type TaskHandler interface {
	Assign(w http.ResponseWriter, r *http.Request)
	Respond(w http.ResponseWriter, r *http.Request)
	GetMyTasks(w http.ResponseWriter, r *http.Request)
	GetAssignedTasks(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &taskHandlerImpl{
		taskService: taskService,
	}
}

// Assign implements TaskHandler.
func (h *taskHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req task.AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.taskService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task assigned", result)
}

// Respond implements TaskHandler.
func (h *taskHandlerImpl) Respond(w http.ResponseWriter, r *http.Request) {
	var req task.RespondTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TaskID = chi.URLParam(r, "id")

	result, err := h.taskService.Respond(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyTasks implements TaskHandler.
func (h *taskHandlerImpl) GetMyTasks(w http.ResponseWriter, r *http.Request) {
	result, err := h.taskService.MyTasks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAssignedTasks implements TaskHandler.
func (h *taskHandlerImpl) GetAssignedTasks(w http.ResponseWriter, r *http.Request) {
	result, err := h.taskService.AssignedTasks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
