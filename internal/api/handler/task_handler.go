package handler

import (
	"net/http"

	"stepik_backend/internal/app/service"
	"stepik_backend/internal/common"
	"stepik_backend/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskService *service.TaskService
	log         *logger.Logger
}

func NewTaskHandler(taskService *service.TaskService, log *logger.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, log: log}
}

func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listTasks)
	r.Post("/", h.createTask)
	r.Get("/{taskID}", h.getTask)
	r.Put("/{taskID}", h.updateTask)
	r.Delete("/{taskID}", h.deleteTask)
	r.Get("/{taskID}/input-outputs", h.listInputOutputs)
	r.Post("/{taskID}/input-outputs", h.createInputOutput)
}

// RegisterInputOutputRoutes mounts the standalone /input-outputs resource.
func (h *TaskHandler) RegisterInputOutputRoutes(r chi.Router) {
	r.Delete("/{ioID}", h.deleteInputOutput)
}

func (h *TaskHandler) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.List(r.Context(), actorOf(r), r.URL.Query().Get("module"), includeInactive(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) createTask(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	task, err := h.taskService.Create(r.Context(), actorOf(r), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.Get(r.Context(), actorOf(r), chi.URLParam(r, "taskID"), includeInactive(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) updateTask(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	task, err := h.taskService.Update(r.Context(), actorOf(r), chi.URLParam(r, "taskID"), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.Deactivate(r.Context(), actorOf(r), chi.URLParam(r, "taskID")); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	noContent(w)
}

func (h *TaskHandler) listInputOutputs(w http.ResponseWriter, r *http.Request) {
	ios, err := h.taskService.ListInputOutputs(r.Context(), actorOf(r), chi.URLParam(r, "taskID"), includeInactive(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, ios)
}

func (h *TaskHandler) createInputOutput(w http.ResponseWriter, r *http.Request) {
	var req service.CreateInputOutputRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	io, err := h.taskService.CreateInputOutput(r.Context(), actorOf(r), chi.URLParam(r, "taskID"), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, io)
}

func (h *TaskHandler) deleteInputOutput(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.DeactivateInputOutput(r.Context(), actorOf(r), chi.URLParam(r, "ioID")); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	noContent(w)
}
