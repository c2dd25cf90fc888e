package circuitbreaker

import "time"

// Config es la política de un breaker.
type Config struct {
	// FailureRateThreshold en porcentaje (0-100). Con la tasa de fallas igual
	// o superior, el circuito se abre.
	FailureRateThreshold float64
	// SlidingWindow es el período tras el cual se limpian los contadores en
	// estado cerrado. Negativo => no se limpian nunca; cero toma el default.
	SlidingWindow time.Duration
	// MinimumNumberOfCalls antes de evaluar la tasa de fallas.
	MinimumNumberOfCalls uint32
	// WaitDurationInOpenState antes de pasar a half-open.
	WaitDurationInOpenState time.Duration
	// PermittedCallsInHalfOpenState es la cantidad de llamadas de prueba.
	PermittedCallsInHalfOpenState uint32
}

func DefaultConfig() Config {
	return Config{
		FailureRateThreshold:          50,
		SlidingWindow:                 time.Minute,
		MinimumNumberOfCalls:          5,
		WaitDurationInOpenState:       10 * time.Second,
		PermittedCallsInHalfOpenState: 3,
	}
}

// merge completa los campos en cero de c con los de def.
func (c Config) merge(def Config) Config {
	if c.FailureRateThreshold <= 0 {
		c.FailureRateThreshold = def.FailureRateThreshold
	}
	if c.SlidingWindow == 0 {
		c.SlidingWindow = def.SlidingWindow
	}
	if c.MinimumNumberOfCalls == 0 {
		c.MinimumNumberOfCalls = def.MinimumNumberOfCalls
	}
	if c.WaitDurationInOpenState <= 0 {
		c.WaitDurationInOpenState = def.WaitDurationInOpenState
	}
	if c.PermittedCallsInHalfOpenState == 0 {
		c.PermittedCallsInHalfOpenState = def.PermittedCallsInHalfOpenState
	}
	return c
}

// interval traduce SlidingWindow a gobreaker: 0 es "nunca limpiar". Un valor
// negativo le dejaría el vencimiento en el pasado y limpiaría en cada llamada.
func (c Config) interval() time.Duration {
	if c.SlidingWindow < 0 {
		return 0
	}
	return c.SlidingWindow
}
