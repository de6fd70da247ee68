package sourcing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

// normalizeCandidates converts raw provider records into canonical POIs.
// One malformed item never fails the batch: it is logged and skipped.
func normalizeCandidates(logger *slog.Logger, raw []types.RawCandidate, sourceTag string) []types.POI {
	nonce := uuid.NewString()[:8]
	pois := make([]types.POI, 0, len(raw))
	for i, item := range raw {
		if item.Name == "" {
			logger.WarnContext(context.Background(), "Skipping candidate without a name",
				slog.String("source", sourceTag), slog.Int("index", i))
			continue
		}

		category := item.Category
		if category == "" {
			category = "attraction"
		}
		rating := item.Rating
		if rating <= 0 || rating > 5 {
			rating = 4.0
		}
		details := item.Details
		if details == nil {
			details = map[string]string{}
		}
		description := item.Description
		if description == "" {
			description = details["description"]
		}

		pois = append(pois, types.POI{
			ID:                     fmt.Sprintf("%s-poi-%s-%d", sourceTag, nonce, i),
			Name:                   item.Name,
			Category:               category,
			Description:            description,
			Location:               types.GeoPoint{Lat: item.Location.Lat, Lon: item.Location.Longitude()},
			AverageDurationMinutes: 60,
			Rating:                 rating,
			Details:                details,
		})
	}
	return pois
}
