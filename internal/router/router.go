package router

import (
	"database/sql"
	"net/http"

	_ "petclinic-microservices/docs"
	mem "petclinic-microservices/internal/adapters/storage/memory"
	"petclinic-microservices/internal/adapters/storage/sqldb"
	"petclinic-microservices/internal/domain/gateway"
	"petclinic-microservices/internal/domain/owners"
	"petclinic-microservices/internal/domain/recording"
	"petclinic-microservices/internal/middleware"
	"petclinic-microservices/internal/platform/circuitbreaker"
	"petclinic-microservices/internal/platform/logger"
	"petclinic-microservices/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type GatewayOptions struct {
	Customers gateway.CustomersClient
	Visits    gateway.VisitsClient

	// Opcionales
	Breakers *circuitbreaker.Factory // nil => factory con la política por defecto
	Recorder recording.Recorder      // nil => NopRecorder
	Logger   logger.Logger
	Metrics  *metrics.Metrics
}

// NewGatewayRouter arma el api-gateway:
// - GET /api/gateway/owners/{ownerId}
// - GET /api/gateway/startRecording, /api/gateway/saveRecording/*
// - /health, /metrics, /swagger/*
func NewGatewayRouter(opts GatewayOptions) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	breakers := opts.Breakers
	if breakers == nil {
		breakers = circuitbreaker.NewFactory(log, circuitbreaker.DefaultConfig(), circuitbreaker.WithMetrics(opts.Metrics))
	}
	rec := opts.Recorder
	if rec == nil {
		rec = recording.NewNopRecorder(log)
	}

	r := newBaseRouter("api-gateway", "gateway", log, opts.Metrics)

	svc := gateway.NewService(opts.Customers, opts.Visits, breakers, log)
	gateway.RegisterRoutes(r, svc, log, recording.Routes(rec, log, recording.Options{}))

	return r
}

type CustomersOptions struct {
	// Opcional: si viene, usa SQL (Postgres o MySQL según Dialect). Si no, in-memory.
	DB      *sql.DB
	Dialect sqldb.Dialect

	Recorder recording.Recorder
	Logger   logger.Logger
	Metrics  *metrics.Metrics
}

// NewCustomersRouter arma el customers-service:
// - /owners (CRUD + mascotas), /petTypes
// - GET /owners/startRecording, /owners/saveRecording/*
// - /health, /metrics, /swagger/*
func NewCustomersRouter(opts CustomersOptions) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	rec := opts.Recorder
	if rec == nil {
		rec = recording.NewNopRecorder(log)
	}

	var repo owners.Repository
	if opts.DB != nil {
		repo = sqldb.NewOwnersRepo(opts.DB, opts.Dialect)
	} else {
		repo = mem.NewOwnerRepo()
	}

	r := newBaseRouter("customers-service", "customers", log, opts.Metrics)

	svc := owners.NewService(repo, log)
	owners.RegisterRoutes(r, svc, log, recording.Routes(rec, log, recording.Options{TrailingNewline: true}))

	return r
}

// newBaseRouter monta el middleware común y las rutas operativas.
func newBaseRouter(serviceName, swaggerInstance string, log logger.Logger, m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(log, m))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.InstanceName(swaggerInstance)))

	return r
}
