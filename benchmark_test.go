package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/api/planner"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/api/sourcing"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/router"
)

// setupBenchmarkRouter wires the API with no generative client and no
// provider sources, so benchmarks measure the deterministic paths only.
func setupBenchmarkRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sourcingService := sourcing.NewSourcingService(nil, nil, nil, logger)
	plannerService := planner.NewPlannerService(nil, 0.5, logger)
	itineraryService := itinerary.NewItineraryService(sourcingService, nil, 0.5, logger)

	return router.SetupRouter(&router.Config{
		PlannerHandler:   planner.NewHandler(plannerService, logger),
		ItineraryHandler: itinerary.NewHandler(itineraryService, logger),
	})
}

func BenchmarkAnalyzeIntent(b *testing.B) {
	handler := setupBenchmarkRouter()
	payload, _ := json.Marshal(map[string]any{
		"text": "5 days in Jaipur starting tomorrow, I want to visit the Amber Fort and love shopping",
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-intent", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}

func BenchmarkPlanTrip(b *testing.B) {
	handler := setupBenchmarkRouter()
	payload, _ := json.Marshal(map[string]any{
		"destination_city": "Jaipur",
		"duration_days":    3,
		"start_date":       "2025-03-11",
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/plan-trip", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
