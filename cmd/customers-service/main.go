// @title Petclinic Customers Service
// @version 1.0
// @description Owners, mascotas y catálogo de tipos.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petclinic-microservices/internal/adapters/storage/sqldb"
	"petclinic-microservices/internal/platform/config"
	"petclinic-microservices/internal/platform/logger"
	"petclinic-microservices/internal/platform/metrics"
	"petclinic-microservices/internal/platform/tracing"
	"petclinic-microservices/internal/router"
)

const serviceName = "customers-service"

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

	// Sin database.driver => in-memory (modo dev)
	var (
		db      *sql.DB
		dialect sqldb.Dialect
	)
	if cfg.Database.Driver != "" {
		db, dialect, err = sqldb.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := sqldb.Migrate(ctx, db, dialect); err != nil {
			return err
		}
		log.Info("database ready", map[string]any{"driver": string(dialect)})
	} else {
		log.Warn("no database configured, using in-memory storage", nil)
	}

	r := router.NewCustomersRouter(router.CustomersOptions{
		DB:      db,
		Dialect: dialect,
		Logger:  log,
		Metrics: metrics.New(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
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
