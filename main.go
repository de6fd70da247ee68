package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appLogger "github.com/FACorreiaa/go-voice-trip-planner/app/logger"
	"github.com/FACorreiaa/go-voice-trip-planner/config"
	generativeAI "github.com/FACorreiaa/go-voice-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/api/planner"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/api/sourcing"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Generative client ---
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.Generative.Model, cfg.Generative.Timeout)
	if err != nil {
		logger.Error("Failed to initialize generative client", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Dependency Injection ---
	freeSource := sourcing.NewFreeDataSource(cfg.Providers.NominatimURL, cfg.Providers.OverpassURL, cfg.Providers.Timeout, logger)
	paidSource := sourcing.NewPaidDataSource(cfg.Providers.OpenTripMapURL, cfg.Providers.GooglePlacesURL, cfg.Providers.Timeout, logger)
	genSource := sourcing.NewGenerativeSource(aiClient, cfg.Generative.Temperature, logger)
	contextProvider := sourcing.NewContextProvider(freeSource, cfg.Providers.WikipediaURL, cfg.Providers.OpenMeteoURL, cfg.Providers.Timeout, logger)

	sourcingService := sourcing.NewSourcingService(
		[]sourcing.CandidateSource{freeSource, paidSource, genSource},
		genSource,
		contextProvider,
		logger,
	)

	plannerService := planner.NewPlannerService(aiClient, cfg.Generative.Temperature, logger)
	plannerHandler := planner.NewHandler(plannerService, logger)

	itineraryService := itinerary.NewItineraryService(sourcingService, aiClient, cfg.Generative.Temperature, logger)
	itineraryHandler := itinerary.NewHandler(itineraryService, logger)

	// --- Router Setup ---
	apiRouter := router.SetupRouter(&router.Config{
		PlannerHandler:   plannerHandler,
		ItineraryHandler: itineraryHandler,
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Mount("/", apiRouter)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
