package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "weather-widget/internal/api/http"
	"weather-widget/internal/config"
	"weather-widget/internal/forecast"
	"weather-widget/internal/geo"
	"weather-widget/internal/locations"
	"weather-widget/internal/scheduler"
	"weather-widget/internal/storage"
	"weather-widget/internal/widget"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	// Shared HTTP client for outbound collaborator calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Persistent widget state (the tracked-location list).
	state, err := storage.NewSQLite(cfg.StatePath)
	if err != nil {
		zlog.Fatal("failed to open state store", zap.Error(err))
	}
	defer state.Close()

	store := locations.NewStore(state)
	resolver := geo.NewResolver(geo.NewOpenMeteoGeocoder(httpClient, cfg.GeocodingBaseURL), zlog)
	aggregator := forecast.NewAggregator(forecast.NewOpenMeteoClient(httpClient, cfg.ForecastBaseURL), zlog)
	geolocator := geo.NewIPGeolocator(httpClient, cfg.GeolocationBaseURL)

	controller := widget.NewController(store, resolver, aggregator, geolocator, zlog)

	// Restore the tracked set (or fall back to geolocation) and render
	// the initial cards.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := controller.Startup(startupCtx); err != nil {
		cancelStartup()
		zlog.Fatal("startup failed", zap.Error(err))
	}
	cancelStartup()

	// Background refresh keeps cards current between manual refreshes.
	sched := scheduler.New(controller, cfg.RefreshInterval, cfg.RefreshTimeout, zlog)
	if err := sched.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-widget",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-widget",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, controller)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
}
