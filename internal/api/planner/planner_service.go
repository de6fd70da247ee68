package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	generativeAI "github.com/FACorreiaa/go-voice-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

const historyWindow = 20

// ContentGenerator abstracts the underlying model client so tests can fake it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service folds one conversational turn into the accumulated trip
// constraints and decides what to say back.
type Service interface {
	Merge(ctx context.Context, prev *types.TripConstraints, text string, history []types.ConversationTurn) (*types.TripConstraints, error)
}

// ServiceImpl extracts constraints with the generative model first and
// falls back to the deterministic rule pass when the model errors. Merge
// never fails for well-formed input: the fallback always produces a result.
type ServiceImpl struct {
	logger      *slog.Logger
	ai          ContentGenerator
	temperature float32
	now         func() time.Time
}

func NewPlannerService(ai ContentGenerator, temperature float32, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		ai:          ai,
		temperature: temperature,
		now:         time.Now,
	}
}

// Merge produces the next constraints snapshot from the previous one plus
// the newest utterance. The previous snapshot is never mutated.
func (s *ServiceImpl) Merge(ctx context.Context, prev *types.TripConstraints, text string, history []types.ConversationTurn) (*types.TripConstraints, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "Merge", trace.WithAttributes(
		attribute.Int("history_turns", len(history)),
	))
	defer span.End()

	if prev == nil {
		prev = types.DefaultTripConstraints()
	}

	next, err := s.extractWithModel(ctx, prev, text, history)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model extraction failed, using rule fallback")
		s.logger.WarnContext(ctx, "Constraint extraction via model failed, using rule fallback", slog.Any("error", err))
		next = extractConstraintsSimple(s.now(), text, prev)
	}

	applyDefaults(next)
	deriveEndDate(next)
	next.EvaluateCompleteness()
	shapeResponse(prev, next)

	span.SetAttributes(attribute.Bool("is_complete", next.IsComplete))
	return next, nil
}

func (s *ServiceImpl) extractWithModel(ctx context.Context, prev *types.TripConstraints, text string, history []types.ConversationTurn) (*types.TripConstraints, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("no content generator configured")
	}

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	prompt := getConstraintExtractionPrompt(s.now(), prev, text, history)
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](s.temperature)}

	response, err := s.ai.GenerateContent(ctx, prompt, config)
	if err != nil && generativeAI.IsRateLimited(err) {
		// One bounded retry for rate-limit-class failures only.
		s.logger.WarnContext(ctx, "Extractor rate limited, retrying once", slog.Any("error", err))
		response, err = s.ai.GenerateContent(ctx, prompt, config)
	}
	if err != nil {
		return nil, fmt.Errorf("constraint extraction failed: %w", err)
	}

	var next types.TripConstraints
	if err := json.Unmarshal([]byte(cleanJSONResponse(response)), &next); err != nil {
		return nil, fmt.Errorf("failed to parse extracted constraints: %w", err)
	}
	return &next, nil
}

// applyDefaults fills the documented defaults for fields the extractor left
// unset.
func applyDefaults(tc *types.TripConstraints) {
	if tc.BudgetLevel == "" {
		tc.BudgetLevel = "Moderate"
	}
	if tc.Pace == "" {
		tc.Pace = "Moderate"
	}
	if tc.TravelersCount < 1 {
		tc.TravelersCount = 1
	}
	if tc.Interests == nil {
		tc.Interests = []string{}
	}
	if tc.MustVisit == nil {
		tc.MustVisit = []string{}
	}
	if tc.Avoid == nil {
		tc.Avoid = []string{}
	}
	if tc.MissingInfo == nil {
		tc.MissingInfo = []string{}
	}
}

// deriveEndDate computes the end date whenever start date and duration are
// both known and the extractor did not already resolve it.
func deriveEndDate(tc *types.TripConstraints) {
	if tc.EndDate != "" || tc.StartDate == "" || tc.DurationDays <= 0 {
		return
	}
	start, err := time.Parse("2006-01-02", tc.StartDate)
	if err != nil {
		return
	}
	tc.EndDate = start.AddDate(0, 0, tc.DurationDays-1).Format("2006-01-02")
}

// cleanJSONResponse strips markdown fences and surrounding prose, keeping
// the outermost JSON object.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	lastBrace := strings.LastIndex(response, "}")
	if firstBrace == -1 || lastBrace == -1 || lastBrace <= firstBrace {
		return response
	}
	return strings.TrimSpace(response[firstBrace : lastBrace+1])
}
