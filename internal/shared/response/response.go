package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"favorites-server/internal/shared/errors"
)

const internalErrorMessage = "Internal server error"

// ErrorResponse represents the JSON error response sent to clients
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of successful operations that return no entity
type MessageResponse struct {
	Msg string `json:"msg"`
}

// Error logs an error and sends a JSON error response to the client
// This should be the only place where errors are logged in the application
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	errorType := errors.GetType(err)
	statusCode := statusCodeFor(err, errorType)

	logError(logger, r, err, errorType, statusCode)

	sendErrorResponse(w, clientMessage(err, errorType), statusCode)
}

// statusCodeFor maps error types to HTTP status codes
func statusCodeFor(err error, errorType errors.ErrorType) int {
	switch errorType {
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeConflict:
		return http.StatusConflict
	case errors.ErrorTypeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrorTypeApplication:
		if appErr, ok := errors.As(err); ok && appErr.Status >= 400 {
			return appErr.Status
		}
		return http.StatusBadRequest
	case errors.ErrorTypeConstraint, errors.ErrorTypeMalformed, errors.ErrorTypeInternal:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage hides wrapped causes and internal details from clients.
func clientMessage(err error, errorType errors.ErrorType) string {
	switch errorType {
	case errors.ErrorTypeInternal, errors.ErrorTypeConstraint:
		return internalErrorMessage
	}
	if appErr, ok := errors.As(err); ok {
		return appErr.Message
	}
	return internalErrorMessage
}

// logError logs the error with appropriate level and context
func logError(logger *slog.Logger, r *http.Request, err error, errorType errors.ErrorType, statusCode int) {
	logCtx := logger.With(
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", statusCode,
	)

	switch errorType {
	case errors.ErrorTypeNotFound, errors.ErrorTypeMethodNotAllowed:
		logCtx.Debug("Resource not found", "error", err)
	case errors.ErrorTypeConflict:
		logCtx.Info("Conflict error", "error", err)
	case errors.ErrorTypeApplication:
		logCtx.Warn("Application error", "error", err)
	case errors.ErrorTypeConstraint:
		logCtx.Error("Store constraint violation", "error", err)
	case errors.ErrorTypeMalformed:
		logCtx.Error("Malformed request", "error", err)
	case errors.ErrorTypeInternal:
		fallthrough
	default:
		logCtx.Error("Internal server error", "error", err)
	}
}

// sendErrorResponse sends a JSON error response to the client
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// The status code has already been sent, nothing left to do on failure
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// Success sends a JSON success response to the client
func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Message sends {"msg": ...} with the given status
func Message(w http.ResponseWriter, statusCode int, msg string) {
	Success(w, statusCode, MessageResponse{Msg: msg})
}
