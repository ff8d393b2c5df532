package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Common error codes
const (
	ErrNotFound           = "not_found"
	ErrBadRequest         = "bad_request"
	ErrConflict           = "conflict"
	ErrForbidden          = "forbidden"
	ErrInternalError      = "internal_error"
	ErrValidation         = "validation_error"
	ErrUnauthorized       = "unauthorized"
	ErrBookingUnavailable = "booking_unavailable"
	ErrAccessDenied       = "access_denied"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", "error", err)
	}
}

// WriteError writes a JSON error response with the given status code.
func WriteError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{Error: errCode, Message: message})
}

// writeServiceError maps a service error onto the error envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrValidation, Message: ve.Message, Field: ve.Field})
	case domain.IsValidation(err):
		WriteError(w, http.StatusBadRequest, ErrValidation, err.Error())
	case errors.Is(err, domain.ErrBookingUnavailable):
		WriteError(w, http.StatusNotFound, ErrBookingUnavailable, "Cannot process booking")
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, ErrNotFound, "Not found")
	case errors.Is(err, domain.ErrForbidden):
		WriteError(w, http.StatusForbidden, ErrForbidden, "You do not have access to this resource")
	case errors.Is(err, domain.ErrEmailTaken):
		WriteError(w, http.StatusConflict, ErrConflict, "An account with this email already exists")
	case errors.Is(err, domain.ErrEquipmentUnavailable):
		WriteError(w, http.StatusConflict, ErrConflict, "This equipment is not available for booking")
	default:
		logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusInternalServerError, ErrInternalError, "An unexpected error occurred")
	}
}

// redirectTo is the JSON form of a client-side navigation.
type redirectTo struct {
	Redirect string `json:"redirect"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("body", "Invalid request body")
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
