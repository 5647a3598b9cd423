// Package main is the entry point for the trip simulation service.
//
//	@title						Trip Simulation API
//	@version					1.0.0
//	@description				A trip simulation service that aggregates flight, hotel and tour candidates for Brazilian destinations and persists costed simulations.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/trip-sim/trip-simulation-and-aggregation-system/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	// Import generated docs for swagger
	_ "github.com/trip-sim/trip-simulation-and-aggregation-system/docs"

	// Application layers
	triphttp "github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/http"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/http/middleware"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/provider/geonames"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/provider/googleflights"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/provider/hotels4"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/provider/searchapi"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/storage"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/config"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/infrastructure/logger"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/tours"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "trip-simulation",
	})
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	// Open the simulations store
	db, err := storage.Open(cfg.Storage.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	store := storage.NewStore(db)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Setup middleware
	middleware.Setup(e, log.Logger)
	e.Use(middleware.RateLimit(cfg.Server.RateLimit))

	// Setup routes
	setupRoutes(e, cfg, store, log)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, log)
}

// setupRoutes wires the providers, use case and handler onto the Echo
// instance.
func setupRoutes(e *echo.Echo, cfg *config.Config, store domain.SimulationStore, log *logger.Logger) {
	timeout := cfg.Providers.SearchTimeout

	flightProviders := []domain.FlightProvider{
		googleflights.NewAdapter(cfg.Providers.FlightBaseURL, cfg.Providers.FlightAPIKey, timeout),
	}
	if cfg.Providers.SearchAPIKey != "" {
		flightProviders = append(flightProviders,
			searchapi.NewAdapter(cfg.Providers.SearchAPIBaseURL, cfg.Providers.SearchAPIKey, timeout))
	}

	hotelProvider := hotels4.NewAdapter(cfg.Providers.HotelBaseURL, cfg.Providers.HotelAPIKey, timeout)
	places := geonames.NewAdapter(cfg.Providers.GeonamesBaseURL, cfg.Providers.GeonamesUsername, timeout)

	flow := usecase.NewTripFlow(
		flightProviders,
		hotelProvider,
		places,
		store,
		tours.NewGenerator(),
		&usecase.Config{SearchTimeout: timeout},
		log,
	)

	handler := triphttp.NewTripHandler(flow, usecase.NewRegistry())
	triphttp.RegisterRoutes(e, handler, cfg.Auth.JWTSecret)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
