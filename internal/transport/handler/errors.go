package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mzielinska/timetable-change-backend/internal/usecase/service"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandleError maps domain errors onto HTTP status codes and an ErrorResponse.
func HandleError(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusOK, ErrorResponse{}
	}

	var domainErr *service.DomainError
	if errors.As(err, &domainErr) {
		statusCode := mapErrorCodeToHTTPStatus(domainErr.Code)
		return statusCode, ErrorResponse{
			Error: ErrorDetail{
				Code:    domainErr.Code,
				Message: domainErr.Message,
			},
		}
	}

	// unknown error
	return http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		},
	}
}

func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound // 404
	case "INVALID_INPUT":
		return http.StatusBadRequest // 400
	case "INVALID_TRANSITION":
		return http.StatusConflict // 409
	case "PROPOSAL_EXISTS":
		return http.StatusConflict // 409
	case "NO_COMMON_SLOT":
		return http.StatusNotFound // 404
	case "NO_ROOM_AVAILABLE":
		return http.StatusNotFound // 404
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteError sends the ErrorResponse to the client.
func WriteError(w http.ResponseWriter, statusCode int, errResp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errResp)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
