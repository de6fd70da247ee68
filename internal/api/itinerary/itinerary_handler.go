package itinerary

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/api"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

type Handler struct {
	itineraryService Service
	logger           *slog.Logger
}

func NewHandler(itineraryService Service, logger *slog.Logger) *Handler {
	return &Handler{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// PlanTrip builds an itinerary from the accumulated constraints.
func (h *Handler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "PlanTrip", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/plan-trip"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PlanTrip"))
	l.DebugContext(ctx, "Plan trip handler invoked")

	var constraints types.TripConstraints
	if err := api.DecodeJSONBody(w, r, &constraints); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if constraints.DestinationCity == "" {
		l.ErrorContext(ctx, "Missing destination city")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing destination city")
		return
	}

	days := constraints.DurationDays
	if days < 1 {
		days = 3
	}
	pace := constraints.Pace
	if pace == "" {
		pace = "moderate"
	}
	budget := constraints.BudgetLevel
	if budget == "" {
		budget = "Moderate"
	}

	req := types.BuildItineraryRequest{
		City:      constraints.DestinationCity,
		Days:      days,
		Pace:      pace,
		Interests: constraints.Interests,
		MustVisit: constraints.MustVisit,
		Budget:    budget,
		StartDate: constraints.StartDate,
	}

	plan, err := h.itineraryService.BuildItinerary(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Trip planning failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Trip planning failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, plan)
}
