package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casavia/casavia-be/internal/api"
	"github.com/casavia/casavia-be/internal/auth"
	"github.com/casavia/casavia-be/internal/config"
	"github.com/casavia/casavia-be/internal/database"
	"github.com/casavia/casavia-be/internal/logger"
	"github.com/casavia/casavia-be/internal/metrics"
	"github.com/casavia/casavia-be/internal/monitoring"
	"github.com/casavia/casavia-be/internal/services"
	"github.com/casavia/casavia-be/internal/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	auth.Configure(cfg.JWTSecret, cfg.JWTTTL)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	if cfg.SeedDemoData {
		if err := database.SeedDemoData(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	// Set up WebSocket Hub for the live event feed
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db)
	propertyService := services.NewPropertyService(db)
	bookingService := services.NewBookingService(db, propertyService)

	// Set up metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Set up and run the background maintenance loop
	maintenance, err := monitoring.NewMaintenance(eventService, cfg.MaintenanceSpec, cfg.EventRetention)
	if err != nil {
		log.Fatal().Err(err).Str("spec", cfg.MaintenanceSpec).Msg("Invalid maintenance cron expression")
	}
	go maintenance.Run()

	// Set up router
	router := api.NewRouter(api.Deps{
		Hub:        hub,
		Users:      userService,
		Properties: propertyService,
		Bookings:   bookingService,
		Events:     eventService,
		Collector:  collector,
		Registry:   registry,
		CORSOrigin: cfg.CORSOrigin,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	maintenance.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
