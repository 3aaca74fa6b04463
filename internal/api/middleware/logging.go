package middleware

import (
	"net/http"
	"time"

	"stepik_backend/internal/platform/logger"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger writes one structured entry per request.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			// Filled by WithActor once the authenticator has run.
			holder := &actorHolder{}
			next.ServeHTTP(ww, r.WithContext(withActorHolder(r.Context(), holder)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			kv := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chiMiddleware.GetReqID(r.Context()),
			}
			if holder.actor.UserID != "" {
				kv = append(kv, "user_id", holder.actor.UserID)
			}
			switch {
			case status >= http.StatusInternalServerError:
				log.Error("http request", kv...)
			case status >= http.StatusBadRequest:
				log.Warn("http request", kv...)
			default:
				log.Info("http request", kv...)
			}
		})
	}
}
