package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/api/sourcing"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

var itinerariesBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "itineraries_built_total",
	Help: "Completed planning requests by outcome.",
}, []string{"curated"})

// ContentGenerator abstracts the underlying model client so tests can fake it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service builds one Itinerary per planning request.
type Service interface {
	BuildItinerary(ctx context.Context, req types.BuildItineraryRequest) (*types.Itinerary, error)
}

// ServiceImpl orchestrates pool sourcing, context fetches, deterministic
// allocation and the optional curation pass. It degrades quality before
// availability: a well-formed request always yields an itinerary.
type ServiceImpl struct {
	logger      *slog.Logger
	sourcingSvc sourcing.Service
	ai          ContentGenerator
	temperature float32
}

func NewItineraryService(sourcingSvc sourcing.Service, ai ContentGenerator, temperature float32, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		sourcingSvc: sourcingSvc,
		ai:          ai,
		temperature: temperature,
	}
}

// BuildItinerary assembles the draft and attempts curation. Invalid input
// is corrected by substitution, never rejected.
func (s *ServiceImpl) BuildItinerary(ctx context.Context, req types.BuildItineraryRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "BuildItinerary", trace.WithAttributes(
		attribute.String("city", req.City),
		attribute.Int("days", req.Days),
	))
	defer span.End()

	l := s.logger.With(slog.String("city", req.City), slog.Int("days", req.Days))

	if req.City == "" {
		l.ErrorContext(ctx, "No city provided for itinerary")
		req.City = "Unknown City"
	}
	if req.Days < 1 {
		l.WarnContext(ctx, "Invalid duration, defaulting to 1 day", slog.Int("days", req.Days))
		req.Days = 1
	}

	// The four fetches are independent; each degrades on its own failure
	// and they are all joined before allocation.
	var (
		attractions []types.POI
		restaurants []types.POI
		weatherInfo = "Not available"
		citySummary string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pool, err := s.sourcingSvc.FindPOIs(gctx, req.City, req.Interests, sourcing.CategoryAttractions, req.Days*2)
		if err != nil {
			l.ErrorContext(gctx, "Attraction sourcing failed", slog.Any("error", err))
			return nil
		}
		if len(req.MustVisit) > 0 {
			mustVisit, err := s.sourcingSvc.GenerateMustVisitPOIs(gctx, req.City, req.MustVisit)
			if err != nil {
				l.WarnContext(gctx, "Could not resolve must-visit places", slog.Any("error", err))
			} else if len(mustVisit) > 0 {
				pool = append(mustVisit, pool...)
			}
		}
		attractions = pool
		return nil
	})
	g.Go(func() error {
		pool, err := s.sourcingSvc.FindPOIs(gctx, req.City, req.Interests, sourcing.CategoryRestaurants, req.Days)
		if err != nil {
			l.WarnContext(gctx, "Restaurant sourcing failed", slog.Any("error", err))
			return nil
		}
		restaurants = pool
		return nil
	})
	g.Go(func() error {
		forecast, err := s.sourcingSvc.GetWeatherForecast(gctx, req.City, req.Days)
		if err != nil {
			l.WarnContext(gctx, "Could not fetch weather forecast", slog.Any("error", err))
			return nil
		}
		if summary := summarizeForecast(forecast); summary != "" {
			weatherInfo = summary
		}
		return nil
	})
	g.Go(func() error {
		summary, err := s.sourcingSvc.GetCitySummary(gctx, req.City)
		if err != nil {
			l.WarnContext(gctx, "Could not fetch city summary", slog.Any("error", err))
			return nil
		}
		citySummary = summary
		return nil
	})
	// Closures swallow their errors, the join only waits.
	_ = g.Wait()

	days := allocateDays(req.Days, attractions, restaurants)

	if curated := s.curateItinerary(ctx, req, days, weatherInfo, citySummary); curated != nil {
		l.InfoContext(ctx, "Successfully curated itinerary")
		itinerariesBuilt.WithLabelValues("true").Inc()
		return curated, nil
	}

	l.InfoContext(ctx, "Built draft itinerary", slog.Int("days", len(days)))
	itinerariesBuilt.WithLabelValues("false").Inc()
	return &types.Itinerary{
		TripTitle:         fmt.Sprintf("%d-Day Adventure in %s", req.Days, req.City),
		SummaryRationale:  "Initial draft based on your interests.",
		WeatherForecast:   weatherInfo,
		Days:              days,
		TotalCostEstimate: req.Budget,
	}, nil
}

// summarizeForecast flattens the first three forecast days into the short
// context string the curation prompt expects.
func summarizeForecast(forecast *types.WeatherForecast) string {
	if forecast == nil || len(forecast.Days) == 0 {
		return ""
	}
	days := forecast.Days
	if len(days) > 3 {
		days = days[:3]
	}
	parts := make([]string, 0, len(days))
	for _, day := range days {
		parts = append(parts, fmt.Sprintf("%s: %s (%.0f°C)", day.Date, day.Weather, day.TempMax))
	}
	return strings.Join(parts, ", ")
}
