package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/request"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/response"
	"github.com/mzielinska/timetable-change-backend/internal/usecase/service"
	"go.uber.org/zap"
)

type ChangeRequestService interface {
	Create(ctx context.Context, req *request.CreateChangeRequestRequest) (*response.ChangeRequestResponse, error)
	Get(ctx context.Context, req *request.GetChangeRequestRequest) (*response.ChangeRequestResponse, error)
	ListByParticipant(ctx context.Context, req *request.ListChangeRequestsRequest) (*response.ListChangeRequestsResponse, error)
	Accept(ctx context.Context, req *request.AcceptMatchRequest) (*response.AcceptMatchResponse, error)
	Cancel(ctx context.Context, req *request.CancelChangeRequestRequest) (*response.ChangeRequestResponse, error)
}

type ChangeRequestHandler struct {
	svc ChangeRequestService
	log *zap.Logger
}

func NewChangeRequestHandler(svc ChangeRequestService, log *zap.Logger) *ChangeRequestHandler {
	return &ChangeRequestHandler{
		svc: svc,
		log: log,
	}
}

func (h *ChangeRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.log.Info("create change request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	var req request.CreateChangeRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	if req.CourseEventId == "" || req.InitiatorId == "" {
		h.log.Warn("validation failed: course_event_id or initiator_id is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	resp, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to create change request",
			zap.String("course_event_id", req.CourseEventId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"change_request": resp,
	})
}

func (h *ChangeRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	changeRequestId := r.URL.Query().Get("change_request_id")
	if changeRequestId == "" {
		h.log.Warn("validation failed: change_request_id query parameter is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	req := request.GetChangeRequestRequest{
		ChangeRequestId: changeRequestId,
	}

	resp, err := h.svc.Get(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to get change request",
			zap.String("change_request_id", changeRequestId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"change_request": resp,
	})
}

func (h *ChangeRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("user_id")
	if userId == "" {
		h.log.Warn("validation failed: user_id query parameter is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	req := request.ListChangeRequestsRequest{
		UserId: userId,
	}

	resp, err := h.svc.ListByParticipant(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to list change requests",
			zap.String("user_id", userId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ChangeRequestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.log.Info("accept match received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	var req request.AcceptMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	if req.ChangeRequestId == "" || req.ProposalId == "" {
		h.log.Warn("validation failed: change_request_id or proposal_id is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	resp, err := h.svc.Accept(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to accept match",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.String("proposal_id", req.ProposalId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	h.log.Info("match accepted",
		zap.String("change_request_id", resp.ChangeRequestId),
		zap.String("status", resp.Status),
	)

	writeJSON(w, http.StatusOK, resp)
}

func (h *ChangeRequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req request.CancelChangeRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	if req.ChangeRequestId == "" {
		h.log.Warn("validation failed: change_request_id is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	resp, err := h.svc.Cancel(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to cancel change request",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"change_request": resp,
	})
}
