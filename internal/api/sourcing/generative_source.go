package sourcing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	generativeAI "github.com/FACorreiaa/go-voice-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

const generationBatchSize = 10

// ContentGenerator abstracts the underlying model client so tests can fake it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// GenerativeSource is tier 3 and the backfill provider: it synthesizes
// candidate batches from the generative model.
type GenerativeSource struct {
	logger      *slog.Logger
	ai          ContentGenerator
	temperature float32
}

var (
	_ CandidateSource = (*GenerativeSource)(nil)
	_ Generator       = (*GenerativeSource)(nil)
)

func NewGenerativeSource(ai ContentGenerator, temperature float32, logger *slog.Logger) *GenerativeSource {
	return &GenerativeSource{
		logger:      logger,
		ai:          ai,
		temperature: temperature,
	}
}

func (s *GenerativeSource) Tag() string { return "gen" }

func (s *GenerativeSource) FindCandidates(ctx context.Context, city string, interests []string, category string) ([]types.RawCandidate, error) {
	return s.GenerateCandidates(ctx, city, interests, category)
}

func (s *GenerativeSource) GenerateCandidates(ctx context.Context, city string, interests []string, category string) ([]types.RawCandidate, error) {
	prompt := getPOIGenerationPrompt(city, interests, category, generationBatchSize)
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](s.temperature)}

	response, err := s.ai.GenerateContent(ctx, prompt, config)
	if err != nil && generativeAI.IsRateLimited(err) {
		// One bounded retry for rate-limit-class failures only.
		s.logger.WarnContext(ctx, "Generator rate limited, retrying once", slog.Any("error", err))
		response, err = s.ai.GenerateContent(ctx, prompt, config)
	}
	if err != nil {
		return nil, fmt.Errorf("POI generation failed: %w", err)
	}

	var candidates []types.RawCandidate
	if err := json.Unmarshal([]byte(cleanJSONArray(response)), &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse generated POI JSON: %w", err)
	}

	s.logger.InfoContext(ctx, "Generated POI candidates",
		slog.String("city", city), slog.String("category", category), slog.Int("count", len(candidates)))
	return candidates, nil
}

// cleanJSONArray strips markdown fences and surrounding prose, keeping the
// outermost JSON array.
func cleanJSONArray(response string) string {
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

	firstBracket := strings.Index(response, "[")
	lastBracket := strings.LastIndex(response, "]")
	if firstBracket == -1 || lastBracket == -1 || lastBracket <= firstBracket {
		return response
	}
	return strings.TrimSpace(response[firstBracket : lastBracket+1])
}
