package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs one line per request at debug level, and at warn
// level for server errors.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				kv := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"bytes", ww.BytesWritten(),
					"elapsed", time.Since(start).Round(time.Microsecond),
					"request_id", middleware.GetReqID(r.Context()),
				}
				if status >= http.StatusInternalServerError {
					logger.Warn("request", kv...)
					return
				}
				logger.Debug("request", kv...)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
