package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/api/planner"
)

// Config contains the handlers the router wires up.
type Config struct {
	PlannerHandler   *planner.Handler
	ItineraryHandler *itinerary.Handler
}

// SetupRouter configures the application routes. Server-wide middleware
// (requestID, logger, recoverer) is applied before mounting this router
// in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Voice Trip Planner API"))
	})
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze-intent", cfg.PlannerHandler.AnalyzeIntent)
		r.Post("/plan-trip", cfg.ItineraryHandler.PlanTrip)
	})

	return r
}
