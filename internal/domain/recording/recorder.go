package recording

import (
	"sync"

	"petclinic-microservices/internal/platform/logger"
)

// Recorder controla una grabación de ejecución del proceso.
type Recorder interface {
	Start() error
	Save(path string) error
	Stop() error
}

// NopRecorder no graba nada: sólo deja rastro en el log y recuerda si hay
// una grabación "activa" para que Save sin Start se note.
type NopRecorder struct {
	log logger.Logger

	mu     sync.Mutex
	active bool
}

func NewNopRecorder(log logger.Logger) *NopRecorder {
	if log == nil {
		log = logger.NewNop()
	}
	return &NopRecorder{log: log}
}

func (r *NopRecorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = true
	r.log.Debug("recorder start (nop)", nil)
	return nil
}

func (r *NopRecorder) Save(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Debug("recorder save (nop)", map[string]any{"path": path, "active": r.active})
	return nil
}

func (r *NopRecorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = false
	r.log.Debug("recorder stop (nop)", nil)
	return nil
}

// Active indica si hubo Start sin Stop.
func (r *NopRecorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}
