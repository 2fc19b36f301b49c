package handler

import (
	"context"
	"net/http"

	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/request"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/response"
	"github.com/mzielinska/timetable-change-backend/internal/usecase/service"
	"go.uber.org/zap"
)

type CalendarService interface {
	DaySlots(ctx context.Context, req *request.DaySlotsRequest) (*response.DaySlotsResponse, error)
	Events(ctx context.Context, req *request.CalendarEventsRequest) (*response.CalendarEventsResponse, error)
}

type CalendarHandler struct {
	svc CalendarService
	log *zap.Logger
}

func NewCalendarHandler(svc CalendarService, log *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		svc: svc,
		log: log,
	}
}

func (h *CalendarHandler) DaySlots(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if day == "" {
		h.log.Warn("validation failed: day query parameter is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	req := request.DaySlotsRequest{
		Day: day,
	}

	resp, err := h.svc.DaySlots(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to render day slots",
			zap.String("day", day),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *CalendarHandler) Events(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		h.log.Warn("validation failed: from or to query parameter is empty")
		statusCode, errResp := HandleError(service.ErrInvalidInput)
		WriteError(w, statusCode, errResp)
		return
	}

	req := request.CalendarEventsRequest{
		From: from,
		To:   to,
	}

	resp, err := h.svc.Events(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to list calendar events",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
