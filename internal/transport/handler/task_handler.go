package handler

import (
	"context"
	"net/http"

	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/request"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/response"
	"github.com/mzielinska/timetable-change-backend/internal/usecase/service"
	"go.uber.org/zap"
)

type TaskService interface {
	ListTasks(ctx context.Context, req *request.ListTasksRequest) (*response.ListTasksResponse, error)
}

type TaskHandler struct {
	svc TaskService
	log *zap.Logger
}

func NewTaskHandler(svc TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		svc: svc,
		log: log,
	}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("user_id")
	if userId == "" {
		h.log.Warn("validation failed: user_id query parameter is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	req := request.ListTasksRequest{
		UserId: userId,
	}

	resp, err := h.svc.ListTasks(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to list tasks",
			zap.String("user_id", userId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	h.log.Info("tasks listed",
		zap.String("user_id", userId),
		zap.Int("task_count", len(resp.Tasks)),
	)

	writeJSON(w, http.StatusOK, resp)
}
