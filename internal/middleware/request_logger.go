package middleware

import (
	"net/http"
	"strconv"
	"time"

	"petclinic-microservices/internal/platform/logger"
	"petclinic-microservices/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger loguea cada request al terminar (método, ruta, status,
// duración, requestId) y lo cuenta en m (puede ser nil).
// /health y /metrics van a DEBUG para no ensuciar los logs.
func RequestLogger(log logger.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			m.ObserveHTTP(r.Method, route, strconv.Itoa(status))

			fields := map[string]any{
				"requestId":  GetRequestID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"route":      route,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"durationMs": time.Since(started).Milliseconds(),
			}
			switch {
			case route == "/health" || route == "/metrics":
				log.Debug("http request", fields)
			case status >= http.StatusInternalServerError:
				log.Warn("http request", fields)
			default:
				log.Info("http request", fields)
			}
		})
	}
}

// routePattern usa el patrón de chi ("/owners/{ownerId}") para no explotar
// la cardinalidad de las métricas con ids.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
