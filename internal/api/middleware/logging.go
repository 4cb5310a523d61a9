package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type wrappedWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *wrappedWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

type requestIDKey struct{}

// RequestID returns the request ID set by the Logger middleware, or "".
func RequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

// silentPaths are high-frequency polling endpoints that are only logged on errors (status >= 400).
var silentPaths = map[string]bool{
	"/api/health": true,
	"/api/jobs":   true,
}

// Logger tags each request with an ID and logs method, path, status and
// duration once the request completes.
func Logger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.New().String()

			ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
			w.Header().Set("X-Request-ID", requestID)

			wrapped := &wrappedWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			if silentPaths[r.URL.Path] && wrapped.statusCode < 400 {
				return
			}

			log.Info().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapped.statusCode).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
