package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	pg "dog-users-api/internal/adapters/storage/postgres"
	"dog-users-api/internal/config"
	"dog-users-api/internal/platform/logger"
	"dog-users-api/internal/platform/metrics"
	"dog-users-api/internal/router"
)

// @title Dog Users API
// @version 1.0
// @description Proxy de razas e imágenes de dog.ceo y CRUD de usuarios.
// @BasePath /api
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.NewFromEnv().Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(metrics.WithGoCollectors())
	}

	var db *sql.DB
	if cfg.UsesPostgres() {
		db, err = pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.DBAutoMigrate {
			if err := pg.Migrate(ctx, db, log); err != nil {
				return err
			}
		}
		log.Info("using postgres user store", nil)
	} else {
		log.Info("using in-memory user store", nil)
	}

	h, err := router.NewRouter(router.Options{
		Config:  cfg,
		Logger:  log,
		Metrics: m,
		DB:      db,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr, "dog_api": cfg.DogAPIBaseURL})
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

	log.Info("shutting down", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
