package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"petclinic-microservices/internal/platform/circuitbreaker"
	"petclinic-microservices/internal/platform/httpclient"

	"github.com/go-yaml/yaml"
)

// Duration acepta strings de Go ("2s", "150ms") en el YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Server    Server             `yaml:"server"`
	Log       Log                `yaml:"log"`
	Tracing   Tracing            `yaml:"tracing"`
	Customers Upstream           `yaml:"customers"`
	Visits    Upstream           `yaml:"visits"`
	Upstream  UpstreamDefaults   `yaml:"upstream"`
	Breaker   map[string]Breaker `yaml:"breaker"`
	Database  Database           `yaml:"database"`
}

type Server struct {
	Port         string   `yaml:"port"`
	// WriteTimeout del http.Server. En cero se deriva del timeout de upstream.
	WriteTimeout Duration `yaml:"write-timeout"`
}

// writeTimeoutMargin cubre splice, encoding y escritura después de las dos
// llamadas a upstream.
const writeTimeoutMargin = 5 * time.Second

// WriteTimeout devuelve el timeout de escritura del gateway. Owner y visits se
// llaman en serie, así que tiene que superar 2 * upstream.timeout; si no, el
// 200 con visitas vacías nunca llega al cliente.
func (c Config) WriteTimeout() time.Duration {
	if wt := c.Server.WriteTimeout.Std(); wt > 0 {
		return wt
	}
	return 2*c.upstreamTimeout() + writeTimeoutMargin
}

// upstreamTimeout es el timeout efectivo de los clientes: cero usa el default
// de httpclient.
func (c Config) upstreamTimeout() time.Duration {
	if t := c.Upstream.Timeout.Std(); t > 0 {
		return t
	}
	return httpclient.DefaultTimeout
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

type Tracing struct {
	// Endpoint OTLP/HTTP (host:port). Vacío => tracing deshabilitado.
	Endpoint string `yaml:"endpoint"`
}

type Upstream struct {
	BaseURL string `yaml:"base-url"`
}

type UpstreamDefaults struct {
	Timeout Duration `yaml:"timeout"`
}

type Breaker struct {
	FailureRateThreshold          float64  `yaml:"failure-rate-threshold"`
	SlidingWindow                 Duration `yaml:"sliding-window"`
	MinimumNumberOfCalls          uint32   `yaml:"minimum-number-of-calls"`
	WaitDurationInOpenState       Duration `yaml:"wait-duration-in-open-state"`
	PermittedCallsInHalfOpenState uint32   `yaml:"permitted-calls-in-half-open-state"`
}

// CircuitBreaker traduce la sección del YAML a la política del breaker.
func (b Breaker) CircuitBreaker() circuitbreaker.Config {
	return circuitbreaker.Config{
		FailureRateThreshold:          b.FailureRateThreshold,
		SlidingWindow:                 b.SlidingWindow.Std(),
		MinimumNumberOfCalls:          b.MinimumNumberOfCalls,
		WaitDurationInOpenState:       b.WaitDurationInOpenState.Std(),
		PermittedCallsInHalfOpenState: b.PermittedCallsInHalfOpenState,
	}
}

type Database struct {
	// Driver: "pgx" o "mysql". Vacío => repos in-memory.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Default es la configuración de dev: upstreams locales y sin DB.
func Default() Config {
	return Config{
		Server:    Server{Port: "8080"},
		Log:       Log{Level: "info", Format: "text"},
		Customers: Upstream{BaseURL: "http://localhost:8081"},
		Visits:    Upstream{BaseURL: "http://localhost:8082"},
		Upstream:  UpstreamDefaults{Timeout: Duration(5 * time.Second)},
		Breaker:   map[string]Breaker{},
	}
}

// Load lee el YAML (si path no está vacío) sobre Default() y después aplica
// overrides de env:
// - PORT, WRITE_TIMEOUT, LOG_LEVEL, LOG_FORMAT, APP_NAME
// - CUSTOMERS_BASE_URL, VISITS_BASE_URL, UPSTREAM_TIMEOUT
// - DB_DRIVER, DB_DSN, TRACE_ENDPOINT
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv es Load con el path tomado de CONFIG_FILE (opcional).
func FromEnv() (Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

func applyEnv(cfg *Config) error {
	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	setString(&cfg.Log.App, "APP_NAME")
	setString(&cfg.Customers.BaseURL, "CUSTOMERS_BASE_URL")
	setString(&cfg.Visits.BaseURL, "VISITS_BASE_URL")
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.DSN, "DB_DSN")
	setString(&cfg.Tracing.Endpoint, "TRACE_ENDPOINT")

	setDuration := func(dst *Duration, key string) error {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = Duration(d)
		return nil
	}

	if err := setDuration(&cfg.Upstream.Timeout, "UPSTREAM_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&cfg.Server.WriteTimeout, "WRITE_TIMEOUT")
}

func (c Config) validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("config: server.port must be numeric, got %q", c.Server.Port)
	}
	if c.Upstream.Timeout.Std() < 0 {
		return errors.New("config: upstream.timeout must not be negative")
	}
	if wt := c.Server.WriteTimeout.Std(); wt < 0 {
		return errors.New("config: server.write-timeout must not be negative")
	} else if wt > 0 && wt <= 2*c.upstreamTimeout() {
		return fmt.Errorf("config: server.write-timeout (%s) must exceed twice upstream.timeout (%s)", wt, c.upstreamTimeout())
	}
	switch c.Database.Driver {
	case "", "pgx", "mysql":
	default:
		return fmt.Errorf("config: database.driver must be pgx or mysql, got %q", c.Database.Driver)
	}
	if c.Database.Driver != "" && strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("config: database.dsn required when database.driver is set")
	}
	for name, b := range c.Breaker {
		if b.FailureRateThreshold < 0 || b.FailureRateThreshold > 100 {
			return fmt.Errorf("config: breaker.%s.failure-rate-threshold must be in [0,100]", name)
		}
	}
	return nil
}
