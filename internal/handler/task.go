package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklist-sync/internal/model"
	"github.com/BuzzLyutic/tasklist-sync/internal/repo"
	"github.com/BuzzLyutic/tasklist-sync/internal/service"
	"github.com/BuzzLyutic/tasklist-sync/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

// List serves the whole collection; there is no filtering or paging.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.Task
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	idempKey := r.Header.Get("Idempotency-Key")
	task, err := h.service.Create(r.Context(), model.Task{Title: req.Title}, idempKey)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	h.logger.Info("task created", zap.Int64("task_id", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.decodeRef(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	h.logger.Info("task deleted", zap.Int64("task_id", id))
	respond.OK(w, r)
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.decodeRef(w, r)
	if !ok {
		return
	}

	if err := h.service.Complete(r.Context(), id); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	h.logger.Info("task completed", zap.Int64("task_id", id))
	respond.OK(w, r)
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, stats)
}

// decodeRef reads the task posted by the client and returns its id.
// On failure the error response is already written.
func (h *TaskHandler) decodeRef(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var ref model.TaskRef
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return 0, false
	}
	if ref.ID == nil {
		respond.Error(w, r, http.StatusBadRequest, "missing id")
		return 0, false
	}
	return *ref.ID, true
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "validation error")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
