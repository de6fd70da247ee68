package planner

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/api"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

type Handler struct {
	plannerService Service
	logger         *slog.Logger
}

func NewHandler(plannerService Service, logger *slog.Logger) *Handler {
	return &Handler{
		plannerService: plannerService,
		logger:         logger,
	}
}

type analyzeIntentRequest struct {
	Text                string                   `json:"text"`
	ExistingConstraints *types.TripConstraints   `json:"existing_constraints"`
	History             []types.ConversationTurn `json:"history"`
}

// AnalyzeIntent merges one conversational turn into the trip constraints.
func (h *Handler) AnalyzeIntent(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "AnalyzeIntent", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/analyze-intent"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "AnalyzeIntent"))
	l.DebugContext(ctx, "Analyze intent handler invoked")

	var req analyzeIntentRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		l.ErrorContext(ctx, "Text is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Text is required")
		return
	}

	constraints, err := h.plannerService.Merge(ctx, req.ExistingConstraints, req.Text, req.History)
	if err != nil {
		l.ErrorContext(ctx, "Constraint merge failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Intent analysis failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, constraints)
}
