package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"warehouse/loadmap/internal/api"
	"warehouse/loadmap/internal/client"
	"warehouse/loadmap/internal/common"
	"warehouse/loadmap/internal/config"
	"warehouse/loadmap/internal/db"
	"warehouse/loadmap/internal/db/migrations"
	"warehouse/loadmap/internal/editor"
	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/metrics"
	"warehouse/loadmap/internal/realtime"
	"warehouse/loadmap/internal/routes"
	"warehouse/loadmap/internal/ui"
)

const (
	uiSessionTTLSeconds     = 30 * 60
	uiSessionCleanupSeconds = 5 * 60
	shutdownTimeout         = 10 * time.Second
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Load map server starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.Database.Driver,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect to DB with GORM
	orm, err := db.OpenORM(cfg.Database)
	if err != nil {
		logging.Fatal("Failed to open database (GORM)", "error", err.Error())
	}
	if err := migrations.Run(orm); err != nil {
		logging.Fatal("Failed to run migrations", "error", err.Error())
	}
	logging.Info("Database migrated", "driver", cfg.Database.Driver)

	// Connect to DB with sqlx
	raw, err := db.OpenSQLX(cfg.Database, orm)
	if err != nil {
		logging.Fatal("Failed to open database (sqlx)", "error", err.Error())
	}
	defer raw.Close()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)
	hub := realtime.NewHub(metricsReg)

	deps, err := api.InitDependencies(cfg, orm, raw, hub, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err.Error())
	}
	defer deps.Close()

	render, err := ui.NewRenderer()
	if err != nil {
		logging.Fatal("Failed to parse UI templates", "error", err.Error())
	}
	sessions := ui.NewSessionStore(
		common.NewCacheService(uiSessionTTLSeconds, uiSessionCleanupSeconds),
		func() editor.Backend { return client.NewLoadMapClient(cfg.APIURL) },
		metricsReg,
	)
	uiHandler := ui.NewUIHandler(sessions, render, cfg.PublicURL)

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, uiHandler, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logging.Info("Server starting", "port", cfg.Port, "api_url", cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server stopped with error", "error", err.Error())
		os.Exit(1)
	}
	logging.Info("Server stopped")
}
