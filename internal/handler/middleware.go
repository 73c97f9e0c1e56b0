package handler

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/config"
)

// RequestLogger assigns each request an ID and logs method, path, status and
// duration once the request completes.
func RequestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set("X-Request-ID", requestID)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			logger.Info().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", recorder.status).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}

// Recoverer converts panics into a uniform error envelope. Stack detail is
// included in the response only outside production.
func Recoverer(logger *zerolog.Logger, cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				stack := string(debug.Stack())
				logger.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("stack", stack).
					Msgf("panic recovered: %v", rec)

				body := map[string]any{
					"success": false,
					"error": map[string]any{
						"message":     "internal server error",
						"code":        http.StatusInternalServerError,
						"operational": false,
					},
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				}
				if !cfg.Production() {
					body["error"].(map[string]any)["details"] = fmt.Sprint(rec)
					body["error"].(map[string]any)["stack"] = stack
				}

				writeJSON(w, http.StatusInternalServerError, body)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
