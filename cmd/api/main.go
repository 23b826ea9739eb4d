package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/parksense/parksense-backend/api/controllers"
	"github.com/parksense/parksense-backend/api/routes"
	authsvc "github.com/parksense/parksense-backend/internal/auth"
	"github.com/parksense/parksense-backend/internal/cameras"
	"github.com/parksense/parksense-backend/internal/spaces"
	"github.com/parksense/parksense-backend/internal/users"
	"github.com/parksense/parksense-backend/internal/vehicles"
	"github.com/parksense/parksense-backend/internal/violations"
	"github.com/parksense/parksense-backend/internal/zones"
	"github.com/parksense/parksense-backend/pkg/config"
	"github.com/parksense/parksense-backend/pkg/db"
	"github.com/parksense/parksense-backend/pkg/logger"
	"github.com/parksense/parksense-backend/pkg/metrics"
	"github.com/parksense/parksense-backend/pkg/migrate"
	"github.com/parksense/parksense-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, dbClient, logg); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	pingers := map[string]controllers.Pinger{"database": dbClient}

	var rateLimiter *redis.Client
	if cfg.Redis.Enabled() {
		rateLimiter, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := rateLimiter.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		pingers["redis"] = rateLimiter
	}

	userRepo := users.NewRepo(dbClient.DB())

	svcs := routes.Services{
		Auth:       authsvc.NewService(userRepo, cfg.JWT, cfg.Password),
		Users:      users.NewService(userRepo),
		Principals: userRepo,
		Zones:      zones.NewService(dbClient.DB()),
		Cameras:    cameras.NewService(dbClient.DB()),
		Spaces:     spaces.NewService(dbClient.DB()),
		Vehicles:   vehicles.NewService(dbClient.DB()),
		Violations: violations.NewService(dbClient.DB()),
	}

	deps := routes.Dependencies{
		Pingers: pingers,
		Metrics: metrics.NewHTTPMetrics(),
	}
	if rateLimiter != nil {
		deps.RateLimiter = rateLimiter
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, svcs, deps),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
