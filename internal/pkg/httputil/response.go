package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
)

// ErrorResponse is the error envelope for every non-2xx answer. Errors holds
// per-field messages when validation fails in detailed mode.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors,omitempty"`
}

// MessageResponse is the body of newsletter and similar plain acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse is the body of form submissions that completed.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON writes data with the given status. Encoding failures are logged; the
// status line has already been sent at that point.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("httputil: json encode failed", "error", err)
	}
}

// OK writes a 200 response with the given data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 response with the given data.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Success writes 200 {success:true, message}.
func Success(w http.ResponseWriter, message string) {
	OK(w, SuccessResponse{Success: true, Message: message})
}

// Message writes {message} with the given status.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageResponse{Message: message})
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// BadRequest writes a 400 error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// NotFound writes a 404 error.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Unauthorized writes a 401 error.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "unauthorized")
}

// ValidationFailed writes 400 {error:"Validation failed", errors:{...}}.
func ValidationFailed(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Errors: fields})
}

// InternalError logs err and writes a 500 carrying only the public message.
func InternalError(w http.ResponseWriter, err error, public string) {
	logger.Error("httputil: internal error", "error", err)
	if public == "" {
		public = "internal server error"
	}
	Error(w, http.StatusInternalServerError, public)
}
