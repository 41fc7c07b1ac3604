// Package response provides standardized JSON response formatting and
// error-to-status mapping for the HTTP handlers.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bookboxapp/bookbox/internal/repository"
	"github.com/bookboxapp/bookbox/internal/service"
	"github.com/bookboxapp/bookbox/internal/validation"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// DeniedPayload is the body of a 403 caused by a plan limit, so clients
// can render an upgrade prompt with the actual numbers.
type DeniedPayload struct {
	Reason    string `json:"reason"`
	Dimension string `json:"dimension"`
	Current   int    `json:"current"`
	Limit     int    `json:"limit"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		Success: status < 400,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}

// Success writes a successful JSON response (200 OK).
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a created response (201 Created).
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a no content response (204 No Content).
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes an error response with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		Success: false,
		Error:   message,
	}

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 Unauthorized response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 Forbidden response.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Conflict writes a 409 Conflict response.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, message)
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

// HandleError maps service and repository errors onto HTTP responses.
// Unknown errors become an opaque 500.
func HandleError(w http.ResponseWriter, err error) {
	var denied *service.DeniedError
	if errors.As(err, &denied) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		envelope := Envelope{
			Success: false,
			Error:   denied.Error(),
			Data: DeniedPayload{
				Reason:    "plan_limit",
				Dimension: denied.Dimension,
				Current:   denied.Current,
				Limit:     denied.Limit,
			},
		}
		if encErr := json.NewEncoder(w).Encode(envelope); encErr != nil {
			slog.Error("failed to encode denial response", "error", encErr)
		}
		return
	}

	if validation.IsValidationError(err) {
		BadRequest(w, err.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrNotOwner):
		Forbidden(w, err.Error())
	case errors.Is(err, service.ErrAlreadyVisited):
		Conflict(w, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameTaken):
		Conflict(w, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		BadRequest(w, err.Error())
	case errors.Is(err, repository.ErrBoxNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrSubscriptionNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, repository.ErrStoreUnavailable):
		slog.Error("store unavailable", "error", err)
		Error(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		slog.Error("unhandled error", "error", err)
		InternalError(w, "internal server error")
	}
}
