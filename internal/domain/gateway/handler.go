package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"petclinic-microservices/internal/platform/httpclient"
	"petclinic-microservices/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta las rutas del gateway bajo /api/gateway.
// mounts permite colgar más rutas del mismo prefijo (p.ej. recording).
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, mounts ...func(chi.Router)) {
	if log == nil {
		log = logger.NewNop()
	}
	r.Route("/api/gateway", func(gr chi.Router) {
		gr.Get("/owners/{ownerId}", getOwnerDetailsHandler(svc, log))

		for _, mount := range mounts {
			mount(gr)
		}
	})
}

// ErrorResponse es el documento de error del gateway.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// getOwnerDetailsHandler godoc
// @Summary Owner con mascotas y visitas
// @Description Trae el owner del customers-service y le agrega las visitas de cada mascota. Si visits no responde (o el breaker está abierto) las mascotas vuelven con `visits: []`.
// @Tags gateway
// @Produce json
// @Param ownerId path int true "ID del owner"
// @Success 200 {object} OwnerDetails
// @Failure 400 {object} ErrorResponse "ownerId inválido"
// @Failure 404 {object} ErrorResponse "owner not found"
// @Failure 502 {object} ErrorResponse "customers-service no disponible"
// @Router /api/gateway/owners/{ownerId} [get]
func getOwnerDetailsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "ownerId")
		ownerID, ok := parseOwnerID(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "ownerId must be a positive integer")
			return
		}

		reqLog := log.With(map[string]any{"ownerId": ownerID})
		reqLog.Info("get owner details", nil)

		owner, err := svc.GetOwnerDetails(r.Context(), ownerID)
		if err != nil {
			reqLog.Error("owner fetch failed", map[string]any{"err": err})

			kind, _ := httpclient.KindOf(err)
			switch kind {
			case httpclient.KindNotFound:
				writeError(w, http.StatusNotFound, "owner "+raw+" not found")
			default:
				writeError(w, http.StatusBadGateway, "customers service unavailable")
			}
			return
		}

		writeJSON(w, http.StatusOK, owner)
	}
}

// parseOwnerID acepta solo la forma canónica: dígitos, sin signo ni ceros a
// la izquierda, >= 1.
func parseOwnerID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 || strconv.Itoa(id) != raw {
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
