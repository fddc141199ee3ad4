package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"favorites-server/internal/shared/errors"
	"favorites-server/internal/shared/response"
)

// Recovery turns a handler panic into a 500 JSON error.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger := slog.With("component", "recovery", "request_id", GetRequestID(r.Context()))
				logger.Error("Panic recovered", "panic", rec, "stack", string(debug.Stack()))
				response.Error(w, r, logger, errors.Internalf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
