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

type RecommendationService interface {
	Generate(ctx context.Context, req *request.GenerateRecommendationsRequest) (*response.GenerateRecommendationsResponse, error)
	List(ctx context.Context, req *request.ListRecommendationsRequest) (*response.ListRecommendationsResponse, error)
	Clear(ctx context.Context, req *request.ClearRecommendationsRequest) error
}

type RecommendationHandler struct {
	svc RecommendationService
	log *zap.Logger
}

func NewRecommendationHandler(svc RecommendationService, log *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		svc: svc,
		log: log,
	}
}

func (h *RecommendationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	h.log.Info("generate recommendations received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	var req request.GenerateRecommendationsRequest
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

	resp, err := h.svc.Generate(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to generate recommendations",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	changeRequestId := r.URL.Query().Get("change_request_id")
	if changeRequestId == "" {
		h.log.Warn("validation failed: change_request_id query parameter is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	req := request.ListRecommendationsRequest{
		ChangeRequestId: changeRequestId,
	}

	resp, err := h.svc.List(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to list recommendations",
			zap.String("change_request_id", changeRequestId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *RecommendationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	var req request.ClearRecommendationsRequest
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

	if err := h.svc.Clear(r.Context(), &req); err != nil {
		h.log.Error("failed to clear recommendations",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
