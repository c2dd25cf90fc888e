// @title Petclinic API Gateway
// @version 1.0
// @description Agrega owners del customers-service con las visitas del visits-service.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petclinic-microservices/internal/adapters/services/customers"
	"petclinic-microservices/internal/adapters/services/visits"
	"petclinic-microservices/internal/platform/circuitbreaker"
	"petclinic-microservices/internal/platform/config"
	"petclinic-microservices/internal/platform/logger"
	"petclinic-microservices/internal/platform/metrics"
	"petclinic-microservices/internal/platform/tracing"
	"petclinic-microservices/internal/router"
)

const serviceName = "api-gateway"

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"err": err})
		os.Exit(1)
	}

	app := cfg.Log.App
	if app == "" {
		app = serviceName
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    app,
	})
	defer func() { _ = logger.Sync(log) }()

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"err": err})
		_ = logger.Sync(log)
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing.Endpoint, serviceName)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	m := metrics.New()
	timeout := cfg.Upstream.Timeout.Std()

	custClient, err := customers.NewClient(customers.Config{
		BaseURL: cfg.Customers.BaseURL,
		Timeout: timeout,
		Metrics: m,
	})
	if err != nil {
		return err
	}
	visitsClient, err := visits.NewClient(visits.Config{
		BaseURL: cfg.Visits.BaseURL,
		Timeout: timeout,
		Metrics: m,
	})
	if err != nil {
		return err
	}

	opts := []circuitbreaker.Option{circuitbreaker.WithMetrics(m)}
	for name, b := range cfg.Breaker {
		opts = append(opts, circuitbreaker.WithConfig(name, b.CircuitBreaker()))
	}
	breakers := circuitbreaker.NewFactory(log, circuitbreaker.DefaultConfig(), opts...)

	r := router.NewGatewayRouter(router.GatewayOptions{
		Customers: custClient,
		Visits:    visitsClient,
		Breakers:  breakers,
		Logger:    log,
		Metrics:   m,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":      srv.Addr,
			"customers": cfg.Customers.BaseURL,
			"visits":    cfg.Visits.BaseURL,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
