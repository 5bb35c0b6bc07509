package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Simplici0/costeo/internal/catalog"
	"github.com/Simplici0/costeo/internal/config"
	"github.com/Simplici0/costeo/internal/db"
	"github.com/Simplici0/costeo/internal/kv"
	"github.com/Simplici0/costeo/internal/logger"
	"github.com/Simplici0/costeo/internal/metrics"
	"github.com/Simplici0/costeo/internal/migrations"
	"github.com/Simplici0/costeo/internal/seed"
	"github.com/Simplici0/costeo/internal/session"
	"github.com/Simplici0/costeo/internal/theme"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	cat := catalog.Load(store, catalog.Options{PersistOnRemove: cfg.PersistRemovals, Logger: log})
	if cfg.SeedDemo {
		stats := seed.Run(cat, seed.Demo)
		log.Info("seed applied", "inserts", stats.Inserts, "skipped", stats.Skipped)
	}

	srv := newServer(session.New(cat, m), theme.Load(store, theme.Theme(cfg.DefaultTheme)), log)

	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(metricsHandler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			stop()
		}
	}()
	log.Info("listening", "addr", httpSrv.Addr, "store", cfg.StoreDriver, "materials", cat.Len())

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}

// openStore returns the configured key-value store and a func releasing it.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (kv.Store, func(), error) {
	var (
		database *sql.DB
		dialect  string
		err      error
	)

	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on exit")
		return kv.NewMemory(), func() {}, nil
	case config.StorePostgres:
		database, err = db.OpenPostgres(ctx, cfg.DatabaseDSN)
		dialect = migrations.Postgres
	default:
		database, err = db.Open(cfg.DBPath)
		dialect = migrations.SQLite
	}
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() { _ = database.Close() }

	if err := migrations.Up(database, dialect); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("migrate %s store: %w", dialect, err)
	}

	store, err := kv.NewSQL(database, dialect, log)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return store, closeDB, nil
}
