package circuitbreaker

import (
	"context"
	"errors"
	"sync"

	"petclinic-microservices/internal/platform/logger"
	"petclinic-microservices/internal/platform/metrics"

	"github.com/sony/gobreaker"
)

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
	StateUnknown  State = "unknown"
)

type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

type Option func(*Factory)

// WithConfig fija la política de un breaker por nombre. Los campos en cero
// toman el valor de la política por defecto del factory.
func WithConfig(name string, cfg Config) Option {
	return func(f *Factory) {
		f.configs[name] = cfg
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Factory) {
		f.metrics = m
	}
}

// Factory entrega breakers por nombre. El mismo nombre siempre devuelve la
// misma instancia, compartida por todos los requests concurrentes.
type Factory struct {
	mu       sync.RWMutex
	breakers map[string]*Breaker
	configs  map[string]Config
	defaults Config

	log     logger.Logger
	metrics *metrics.Metrics
}

func NewFactory(log logger.Logger, defaults Config, opts ...Option) *Factory {
	if log == nil {
		log = logger.NewNop()
	}
	f := &Factory{
		breakers: make(map[string]*Breaker),
		configs:  make(map[string]Config),
		defaults: defaults.merge(DefaultConfig()),
		log:      log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create devuelve el breaker existente o lo crea.
func (f *Factory) Create(name string) *Breaker {
	f.mu.RLock()
	b, ok := f.breakers[name]
	f.mu.RUnlock()
	if ok {
		return b
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check con el write lock tomado
	if b, ok = f.breakers[name]; ok {
		return b
	}

	cfg := f.configs[name].merge(f.defaults)
	b = &Breaker{name: name, log: f.log.With(map[string]any{"breaker": name})}
	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.PermittedCallsInHalfOpenState,
		Interval:    cfg.interval(),
		Timeout:     cfg.WaitDurationInOpenState,
		ReadyToTrip: readyToTrip(cfg),
		OnStateChange: func(_ string, from, to gobreaker.State) {
			f.onStateChange(name, from, to)
		},
	})
	f.breakers[name] = b
	f.metrics.SetBreakerState(name, stateValue(gobreaker.StateClosed))

	f.log.Info("circuit breaker created", map[string]any{
		"breaker":                  name,
		"failureRateThreshold":     cfg.FailureRateThreshold,
		"slidingWindow":            cfg.SlidingWindow.String(),
		"minimumNumberOfCalls":     cfg.MinimumNumberOfCalls,
		"waitDurationInOpenState":  cfg.WaitDurationInOpenState.String(),
		"permittedCallsInHalfOpen": cfg.PermittedCallsInHalfOpenState,
	})

	return b
}

func (f *Factory) onStateChange(name string, from, to gobreaker.State) {
	f.log.Warn("circuit breaker state changed", map[string]any{
		"breaker": name,
		"from":    string(convertState(from)),
		"to":      string(convertState(to)),
	})
	f.metrics.SetBreakerState(name, stateValue(to))
}

// Breaker es un breaker con nombre. Se obtiene siempre desde Factory.Create.
type Breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker
	log  logger.Logger
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() State {
	return convertState(b.cb.State())
}

func (b *Breaker) Counts() Counts {
	c := b.cb.Counts()
	return Counts{
		Requests:             c.Requests,
		TotalSuccesses:       c.TotalSuccesses,
		TotalFailures:        c.TotalFailures,
		ConsecutiveSuccesses: c.ConsecutiveSuccesses,
		ConsecutiveFailures:  c.ConsecutiveFailures,
	}
}

// Run ejecuta fn a través del breaker y nunca devuelve error:
// - cerrado + éxito => valor de fn
// - cerrado + falla => registra la falla y devuelve fallback(err)
// - abierto => fallback(ErrOpenState) sin ejecutar fn
// - half-open => fn como llamada de prueba; si se agotó el cupo, fallback
//
// Cualquier error de fn cuenta como falla, incluido context.Canceled: una
// prueba en half-open que se cancela no puede cerrar el circuito.
func Run[T any](ctx context.Context, b *Breaker, fn func(context.Context) (T, error), fallback func(error) T) T {
	if b == nil {
		v, err := fn(ctx)
		if err != nil {
			return fallback(err)
		}
		return v
	}

	res, err := b.cb.Execute(func() (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			b.log.Debug("circuit breaker short-circuited call", map[string]any{"state": string(b.State())})
		default:
			b.log.Debug("call failed, using fallback", map[string]any{"err": err})
		}
		return fallback(err)
	}

	v, _ := res.(T)
	return v
}

func readyToTrip(cfg Config) func(gobreaker.Counts) bool {
	return func(c gobreaker.Counts) bool {
		if c.Requests == 0 || c.Requests < cfg.MinimumNumberOfCalls {
			return false
		}
		rate := float64(c.TotalFailures) / float64(c.Requests) * 100
		return rate >= cfg.FailureRateThreshold
	}
}

func convertState(s gobreaker.State) State {
	switch s {
	case gobreaker.StateClosed:
		return StateClosed
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateUnknown
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
