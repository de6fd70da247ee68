package sourcing

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

const (
	CategoryAttractions = "attractions"
	CategoryRestaurants = "restaurants"
)

// CandidateSource is one tier of the POI fallback chain. Implementations
// must treat their own provider failures as errors; the coordinator decides
// what a failure means.
type CandidateSource interface {
	Tag() string
	FindCandidates(ctx context.Context, city string, interests []string, category string) ([]types.RawCandidate, error)
}

// Generator is the generative fallback capability, also used for backfill.
type Generator interface {
	GenerateCandidates(ctx context.Context, city string, interests []string, category string) ([]types.RawCandidate, error)
}

// ContextSource provides the soft context fetched alongside POI pools.
type ContextSource interface {
	GetWeatherForecast(ctx context.Context, city string, days int) (*types.WeatherForecast, error)
	GetCitySummary(ctx context.Context, city string) (string, error)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service exposes POI sourcing plus the context lookups the itinerary
// builder needs alongside the pools.
type Service interface {
	FindPOIs(ctx context.Context, city string, interests []string, category string, targetCount int) ([]types.POI, error)
	GenerateMustVisitPOIs(ctx context.Context, city string, names []string) ([]types.POI, error)
	GetWeatherForecast(ctx context.Context, city string, days int) (*types.WeatherForecast, error)
	GetCitySummary(ctx context.Context, city string) (string, error)
}

// ServiceImpl walks an ordered list of candidate sources, normalizes
// whatever the first productive tier returns, and backfills short pools
// from the generator. It never returns an error for a well-formed request.
type ServiceImpl struct {
	logger    *slog.Logger
	sources   []CandidateSource
	generator Generator
	context   ContextSource
	cache     *cache.Cache
}

func NewSourcingService(sources []CandidateSource, generator Generator, contextProvider ContextSource, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		sources:   sources,
		generator: generator,
		context:   contextProvider,
		cache:     cache.New(30*time.Minute, 10*time.Minute),
	}
}

// FindPOIs tries each tier in priority order, stopping at the first one
// that yields candidates. Tier errors are logged and swallowed; the next
// tier takes over. The final pool is padded up to targetCount with one
// generated batch, then with the deterministic generic set if everything
// failed.
func (s *ServiceImpl) FindPOIs(ctx context.Context, city string, interests []string, category string, targetCount int) ([]types.POI, error) {
	ctx, span := otel.Tracer("SourcingService").Start(ctx, "FindPOIs", trace.WithAttributes(
		attribute.String("city", city),
		attribute.String("category", category),
		attribute.Int("target_count", targetCount),
	))
	defer span.End()

	l := s.logger.With(slog.String("city", city), slog.String("category", category))

	cacheKey := poolCacheKey(city, category, targetCount)
	if cached, found := s.cache.Get(cacheKey); found {
		if pool, ok := cached.([]types.POI); ok {
			l.DebugContext(ctx, "POI pool served from cache", slog.Int("count", len(pool)))
			return pool, nil
		}
	}

	var pool []types.POI
	for _, source := range s.sources {
		candidates, err := source.FindCandidates(ctx, city, interests, category)
		if err != nil {
			l.WarnContext(ctx, "Candidate source failed, falling through",
				slog.String("tier", source.Tag()), slog.Any("error", err))
			tierFailures.WithLabelValues(source.Tag(), category).Inc()
			continue
		}
		if len(candidates) == 0 {
			l.InfoContext(ctx, "Candidate source returned nothing, falling through",
				slog.String("tier", source.Tag()))
			tierFallthroughs.WithLabelValues(source.Tag(), category).Inc()
			continue
		}
		pool = normalizeCandidates(l, candidates, source.Tag())
		if len(pool) > 0 {
			span.SetAttributes(attribute.String("tier", source.Tag()), attribute.Int("pool_size", len(pool)))
			l.InfoContext(ctx, "Retrieved POIs", slog.String("tier", source.Tag()), slog.Int("count", len(pool)))
			break
		}
	}

	pool = s.backfillPool(ctx, l, pool, city, interests, category, targetCount)

	if len(pool) == 0 {
		if category == CategoryRestaurants {
			// The allocator synthesizes a per-day dinner slot itself; an
			// empty restaurant pool is a valid outcome.
			l.WarnContext(ctx, "No restaurants from any tier, allocator will synthesize dinner slots")
			return nil, nil
		}
		span.SetStatus(codes.Error, "all tiers exhausted")
		l.WarnContext(ctx, "All tiers exhausted, using generic fallback POIs")
		pool = genericFallbackPOIs(city, category)
	}

	s.cache.Set(cacheKey, pool, cache.DefaultExpiration)
	return pool, nil
}

// backfillPool tops a short pool up to targetCount with a single generated
// batch, skipping candidates whose name (case-insensitive) already exists.
func (s *ServiceImpl) backfillPool(ctx context.Context, l *slog.Logger, pool []types.POI, city string, interests []string, category string, targetCount int) []types.POI {
	if s.generator == nil || len(pool) >= targetCount {
		return pool
	}

	l.InfoContext(ctx, "Pool below target, backfilling from generator",
		slog.Int("have", len(pool)), slog.Int("want", targetCount))

	generated, err := s.generator.GenerateCandidates(ctx, city, interests, category)
	if err != nil {
		l.WarnContext(ctx, "Backfill generation failed", slog.Any("error", err))
		tierFailures.WithLabelValues("generative-backfill", category).Inc()
		return pool
	}

	seen := make(map[string]bool, len(pool))
	for _, p := range pool {
		seen[strings.ToLower(p.Name)] = true
	}

	for _, p := range normalizeCandidates(l, generated, "gen") {
		if len(pool) >= targetCount {
			break
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		pool = append(pool, p)
	}
	return pool
}

// GenerateMustVisitPOIs resolves user-named must-visit places into POIs via
// the generator so they can be scheduled ahead of the general pool.
func (s *ServiceImpl) GenerateMustVisitPOIs(ctx context.Context, city string, names []string) ([]types.POI, error) {
	if s.generator == nil || len(names) == 0 {
		return nil, nil
	}
	candidates, err := s.generator.GenerateCandidates(ctx, city, names, CategoryAttractions)
	if err != nil {
		return nil, fmt.Errorf("must-visit generation failed: %w", err)
	}
	return normalizeCandidates(s.logger, candidates, "must-visit"), nil
}

// GetWeatherForecast degrades to nil on any provider failure.
func (s *ServiceImpl) GetWeatherForecast(ctx context.Context, city string, days int) (*types.WeatherForecast, error) {
	if s.context == nil {
		return nil, nil
	}
	return s.context.GetWeatherForecast(ctx, city, days)
}

// GetCitySummary returns an empty string when the summary provider fails,
// caching successful lookups for the session.
func (s *ServiceImpl) GetCitySummary(ctx context.Context, city string) (string, error) {
	if s.context == nil {
		return "", nil
	}
	cacheKey := "summary:" + strings.ToLower(city)
	if cached, found := s.cache.Get(cacheKey); found {
		if summary, ok := cached.(string); ok {
			return summary, nil
		}
	}
	summary, err := s.context.GetCitySummary(ctx, city)
	if err != nil {
		return "", err
	}
	if summary != "" {
		s.cache.Set(cacheKey, summary, cache.DefaultExpiration)
	}
	return summary, nil
}

// genericFallbackPOIs is the absolute last resort: three distinctly named
// places so a multi-day allocation never repeats a single entry back to back.
func genericFallbackPOIs(city, category string) []types.POI {
	build := func(id, name, description string) types.POI {
		return types.POI{
			ID:                     id,
			Name:                   name,
			Category:               category,
			Description:            description,
			Location:               types.GeoPoint{},
			AverageDurationMinutes: 120,
			Rating:                 4.0,
			Details:                map[string]string{"cost": "Free", "tips": "Ask locals for their favourite spots."},
		}
	}
	return []types.POI{
		build("fallback-old-town", fmt.Sprintf("Old Town %s", city),
			fmt.Sprintf("Wander the historic heart of %s at your own pace and soak in the local atmosphere.", city)),
		build("fallback-city-park", fmt.Sprintf("%s City Park", city),
			fmt.Sprintf("Relax in the largest green space %s has to offer.", city)),
		build("fallback-museum", fmt.Sprintf("%s Museum", city),
			fmt.Sprintf("Learn about the history and culture of %s.", city)),
	}
}

func poolCacheKey(city, category string, targetCount int) string {
	return fmt.Sprintf("pois:%s:%s:%d", strings.ToLower(city), category, targetCount)
}

func newProviderClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
