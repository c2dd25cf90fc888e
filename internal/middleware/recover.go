package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"petclinic-microservices/internal/platform/logger"
)

// Recover reemplaza a chimw.Recoverer: el panic se loguea por el logger del
// servicio (no stderr) y el cliente recibe un 500 con el documento de error.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// http.ErrAbortHandler se re-lanza, como hace net/http.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered", map[string]any{
					"requestId": GetRequestID(r.Context()),
					"method":    r.Method,
					"path":      r.URL.Path,
					"panic":     fmt.Sprint(rec),
					"stack":     string(debug.Stack()),
				})

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"status":  http.StatusInternalServerError,
					"error":   http.StatusText(http.StatusInternalServerError),
					"message": "internal error",
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
