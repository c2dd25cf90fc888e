package recording

import (
	"net/http"

	"petclinic-microservices/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Options struct {
	// TrailingNewline agrega "\n" al cuerpo de saveRecording.
	TrailingNewline bool
}

// Routes devuelve una función para montar startRecording / saveRecording/*
// dentro de un prefijo ya ruteado (p.ej. /api/gateway u /owners).
// Las fallas del Recorder se loguean y nunca cambian la respuesta.
func Routes(rec Recorder, log logger.Logger, opts Options) func(chi.Router) {
	if log == nil {
		log = logger.NewNop()
	}
	return func(r chi.Router) {
		r.Get("/startRecording", startHandler(rec, log))
		r.Get("/saveRecording/*", saveHandler(rec, log, opts))
	}
}

// startHandler godoc
// @Summary Iniciar grabación de diagnóstico
// @Tags diagnostics
// @Success 200
// @Router /api/gateway/startRecording [get]
func startHandler(rec Recorder, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		log.Info("start recording", nil)
		if err := rec.Start(); err != nil {
			log.Error("recorder start failed", map[string]any{"err": err})
		}
		w.WriteHeader(http.StatusOK)
	}
}

// saveHandler godoc
// @Summary Guardar y detener la grabación
// @Description Guarda la grabación en el path que sigue a saveRecording/ (sin la primera "/"). Sin path usa recording-<uuid>.undo.
// @Tags diagnostics
// @Produce plain
// @Param path path string true "Archivo destino"
// @Success 200 {string} string "Recording saved to <path>"
// @Router /api/gateway/saveRecording/{path} [get]
func saveHandler(rec Recorder, log logger.Logger, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// El "/" que sigue a saveRecording ya lo consume el patrón.
		filename := chi.URLParam(r, "*")
		if filename == "" {
			filename = "recording-" + uuid.NewString() + ".undo"
		}

		log.Info("save recording", map[string]any{"path": filename})
		if err := rec.Save(filename); err != nil {
			log.Error("recorder save failed", map[string]any{"err": err, "path": filename})
		} else {
			log.Info("recording saved", nil)
			if err := rec.Stop(); err != nil {
				log.Error("recorder stop failed", map[string]any{"err": err})
			} else {
				log.Info("recording stopped", nil)
			}
		}

		body := "Recording saved to " + filename
		if opts.TrailingNewline {
			body += "\n"
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}
