package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	// ErrorCode is the numeric attendance error code (1001-1010), when one applies.
	ErrorCode int `json:"error_code,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// File writes a downloadable attachment.
func File(w http.ResponseWriter, fileName, contentType string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// Error responses

func fail(w http.ResponseWriter, statusCode int, detail ErrorDetail) {
	writeJSON(w, statusCode, Response{Success: false, Error: &detail})
}

// Coded writes a failure carrying a numeric attendance error code.
func Coded(w http.ResponseWriter, statusCode int, code string, errorCode int, message string) {
	fail(w, statusCode, ErrorDetail{Code: code, Message: message, ErrorCode: errorCode})
}

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	fail(w, http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: message, Details: details})
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	fail(w, http.StatusUnprocessableEntity, ErrorDetail{Code: "VALIDATION_ERROR", Message: "Validation failed", Details: details})
}

func Unauthorized(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnauthorized, ErrorDetail{Code: "UNAUTHORIZED", Message: message})
}

func Forbidden(w http.ResponseWriter, message string) {
	fail(w, http.StatusForbidden, ErrorDetail{Code: "FORBIDDEN", Message: message})
}

func NotFound(w http.ResponseWriter, message string) {
	fail(w, http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: message})
}

func Conflict(w http.ResponseWriter, message string) {
	fail(w, http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: message})
}

func InternalServerError(w http.ResponseWriter, message string) {
	fail(w, http.StatusInternalServerError, ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: message})
}
