// Package response writes the service's JSON envelope: {success, data, message, error, code}.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/echoverse/echo-web/internal/errors"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Write encodes env with the given status code.
func Write(w http.ResponseWriter, status int, env Envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil && logger != nil {
		logger.Error("failed to encode response", "status", status, "error", err)
	}
}

// JSON writes data in an envelope. Success is derived from the status code.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	Write(w, status, Envelope{Success: status < http.StatusBadRequest, Data: data}, logger)
}

// Success writes a 200 OK response.
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Created writes a 201 Created response.
func Created(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusCreated, data, logger)
}

// Error writes a failed envelope with a code and user-facing message.
func Error(w http.ResponseWriter, status int, code domainerrors.Code, message string, logger *slog.Logger) {
	Write(w, status, Envelope{Success: false, Error: message, Code: string(code)}, logger)
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusBadRequest, domainerrors.CodeValidation, message, logger)
}

// TooManyRequests writes a 429 response.
func TooManyRequests(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusTooManyRequests, domainerrors.CodeRateLimited, message, logger)
}

// NotFound writes a 404 response carrying data, typically a not-found view with safe links.
func NotFound(w http.ResponseWriter, message string, data any, logger *slog.Logger) {
	Write(w, http.StatusNotFound, Envelope{
		Success: false,
		Data:    data,
		Error:   message,
		Code:    string(domainerrors.CodeNotFound),
	}, logger)
}

// HandleError maps err to a response. Domain errors keep their code, status, message and
// details; anything else becomes a 500 with a generic message.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var de *domainerrors.Error
	if !errors.As(err, &de) {
		if logger != nil {
			logger.Error("unhandled error", "error", err)
		}
		Error(w, http.StatusInternalServerError, domainerrors.CodeInternal, "internal server error", logger)
		return
	}

	status := de.HTTPStatus()
	if logger != nil {
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", "code", de.Code, "error", err)
		} else {
			logger.Debug("request rejected", "code", de.Code, "error", err)
		}
	}

	Write(w, status, Envelope{
		Success: false,
		Error:   de.Message,
		Code:    string(de.Code),
		Details: de.Details,
	}, logger)
}
