package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/campusradius/internal/adapters/http"
	"github.com/samirrijal/campusradius/internal/bootstrap"
	"github.com/samirrijal/campusradius/internal/pkg/config"
	"github.com/samirrijal/campusradius/internal/pkg/logging"
	"github.com/samirrijal/campusradius/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.Load("campusradius-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(logging.LevelFromEnv(), "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer func() {
				sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer scancel()
				_ = shutdown(sctx)
			}()
		}
	}

	svc, err := bootstrap.New(ctx, cfg, bootstrap.Options{Cache: true, Events: true})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer svc.Close()

	// Build the campus index up front so a bad catalogue fails at startup.
	if err := svc.Campuses.Reload(ctx); err != nil {
		log.Fatalf("campus catalogue: %v", err)
	}

	deps := &http.Dependencies{
		Campuses:    svc.Campuses,
		Postcodes:   svc.Postcodes,
		Eligibility: svc.Eligibility,
		Theme:       cfg.Theme,
		Version:     version,
	}
	if svc.DB != nil {
		deps.DB = svc.DB
		go svc.DB.ReportStats(ctx, 15*time.Second)
	}
	if svc.Cache != nil {
		deps.Cache = svc.Cache
	}
	if svc.Publisher != nil {
		deps.NATS = svc.Publisher
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024,
		AppName:      "Campus Radius API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000, http://localhost:5173",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr,
			"postcode_source", cfg.Postcode.Source, "campus_source", cfg.Campus.Source)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
