package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorBody is the JSON body of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// JSON writes data as a JSON response with the given status code.
func JSON(ctx context.Context, w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.ErrorContext(ctx, "failed to encode JSON response", "error", err)
	}
}

// Error writes an error response with the given status code.
func Error(ctx context.Context, w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	JSON(ctx, w, status, errorBody{Error: message}, logger)
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(ctx context.Context, w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(ctx, w, http.StatusBadRequest, message, logger)
}

// NotFound writes a 404 Not Found response.
func NotFound(ctx context.Context, w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(ctx, w, http.StatusNotFound, message, logger)
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(ctx context.Context, w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(ctx, w, http.StatusInternalServerError, message, logger)
}
