package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yieldland/minehub/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceErrorToUserMessage converts backend-facing errors to HTTP status
// codes and messages the caller can act on. Upstream failures surface as 502:
// this service is fine, the backend is not.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnknownSource):
		return http.StatusBadRequest, ErrMsgUnknownSource
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusBadGateway, ErrMsgBackendAuth
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, ErrMsgBackendDown
	case errors.Is(err, domain.ErrDecode):
		return http.StatusBadGateway, ErrMsgBackendResponse
	case errors.Is(err, domain.ErrBusiness):
		// Business rejections carry the backend's own message.
		return http.StatusUnprocessableEntity, err.Error()
	}

	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}
	return http.StatusInternalServerError, ErrMsgGenericError
}

// respondServiceError logs and responds for a failed service call.
func respondServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	slog.Default().WarnContext(r.Context(), operation+" failed", "error", err, "status", status)
	respondError(w, status, message)
}
