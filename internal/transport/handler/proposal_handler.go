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

type ProposalService interface {
	Submit(ctx context.Context, req *request.CreateProposalRequest) (*response.ProposalResponse, error)
	List(ctx context.Context, req *request.ListProposalsRequest) (*response.ListProposalsResponse, error)
	Common(ctx context.Context, req *request.CommonProposalsRequest) (*response.CommonProposalsResponse, error)
	Withdraw(ctx context.Context, req *request.WithdrawProposalRequest) error
}

type ProposalHandler struct {
	svc ProposalService
	log *zap.Logger
}

func NewProposalHandler(svc ProposalService, log *zap.Logger) *ProposalHandler {
	return &ProposalHandler{
		svc: svc,
		log: log,
	}
}

func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.log.Info("submit proposal received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	var req request.CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	if req.ChangeRequestId == "" || req.UserId == "" || req.Day == "" {
		h.log.Warn("validation failed: change_request_id, user_id or day is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	resp, err := h.svc.Submit(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to submit proposal",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.String("user_id", req.UserId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"proposal": resp,
	})
}

func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	changeRequestId := r.URL.Query().Get("change_request_id")
	if changeRequestId == "" {
		h.log.Warn("validation failed: change_request_id query parameter is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	req := request.ListProposalsRequest{
		ChangeRequestId: changeRequestId,
	}

	resp, err := h.svc.List(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to list proposals",
			zap.String("change_request_id", changeRequestId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ProposalHandler) Common(w http.ResponseWriter, r *http.Request) {
	changeRequestId := r.URL.Query().Get("change_request_id")
	userId := r.URL.Query().Get("user_id")
	if changeRequestId == "" || userId == "" {
		h.log.Warn("validation failed: change_request_id or user_id query parameter is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	req := request.CommonProposalsRequest{
		ChangeRequestId: changeRequestId,
		UserId:          userId,
	}

	resp, err := h.svc.Common(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to compute common proposals",
			zap.String("change_request_id", changeRequestId),
			zap.String("user_id", userId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	h.log.Info("common proposals computed",
		zap.String("change_request_id", changeRequestId),
		zap.Int("common_count", len(resp.Common)),
	)

	writeJSON(w, http.StatusOK, resp)
}

func (h *ProposalHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req request.WithdrawProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	if req.ProposalId == "" || req.UserId == "" {
		h.log.Warn("validation failed: proposal_id or user_id is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	if err := h.svc.Withdraw(r.Context(), &req); err != nil {
		h.log.Error("failed to withdraw proposal",
			zap.String("proposal_id", req.ProposalId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
