package sourcing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

const userAgent = "go-voice-trip-planner/1.0"

// FreeDataSource is tier 1: OpenStreetMap data via Nominatim geocoding and
// an Overpass around-radius query. No API keys required.
type FreeDataSource struct {
	logger       *slog.Logger
	client       *http.Client
	nominatimURL string
	overpassURL  string
}

func NewFreeDataSource(nominatimURL, overpassURL string, timeout time.Duration, logger *slog.Logger) *FreeDataSource {
	return &FreeDataSource{
		logger:       logger,
		client:       newProviderClient(timeout),
		nominatimURL: nominatimURL,
		overpassURL:  overpassURL,
	}
}

func (s *FreeDataSource) Tag() string { return "free" }

func (s *FreeDataSource) FindCandidates(ctx context.Context, city string, _ []string, category string) ([]types.RawCandidate, error) {
	lat, lon, err := s.Geocode(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("geocoding %s failed: %w", city, err)
	}

	tag := overpassTags(category)[0]
	query := fmt.Sprintf(`
[out:json][timeout:25];
(
  node[%s](around:5000,%f,%f);
  way[%s](around:5000,%f,%f);
  relation[%s](around:5000,%f,%f);
);
out center 50;`, tag, lat, lon, tag, lat, lon, tag, lat, lon)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.overpassURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	var payload struct {
		Elements []struct {
			Type   string            `json:"type"`
			Lat    float64           `json:"lat"`
			Lon    float64           `json:"lon"`
			Center *struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"center"`
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	candidates := make([]types.RawCandidate, 0, len(payload.Elements))
	for _, element := range payload.Elements {
		if len(candidates) >= 20 {
			break
		}
		name := element.Tags["name"]
		if name == "" {
			name = element.Tags["name:en"]
		}
		if name == "" {
			continue
		}

		poiLat, poiLon := element.Lat, element.Lon
		if element.Type != "node" {
			if element.Center == nil {
				continue
			}
			poiLat, poiLon = element.Center.Lat, element.Center.Lon
		}

		candidates = append(candidates, types.RawCandidate{
			Name:        name,
			Category:    category,
			Description: element.Tags["description"],
			Rating:      4.0, // OSM carries no ratings
			Location:    types.RawLocation{Lat: poiLat, Lon: &poiLon},
			Details: map[string]string{
				"address":       element.Tags["addr:street"],
				"website":       element.Tags["website"],
				"phone":         element.Tags["phone"],
				"opening_hours": element.Tags["opening_hours"],
				"cuisine":       element.Tags["cuisine"],
				"wikipedia":     element.Tags["wikipedia"],
			},
		})
	}

	s.logger.InfoContext(ctx, "Overpass search completed",
		slog.String("city", city), slog.Int("count", len(candidates)))
	return candidates, nil
}

// Geocode resolves a city name to coordinates via Nominatim. Also used by
// the context provider for the weather lookup.
func (s *FreeDataSource) Geocode(ctx context.Context, city string) (float64, float64, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", s.nominatimURL, url.QueryEscape(city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding result for %q", city)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}
	return lat, lon, nil
}

// overpassTags maps an itinerary category to OSM tag filters. Only the
// first tag is queried; it covers the bulk of results for each category.
func overpassTags(category string) []string {
	switch category {
	case "attractions", "sightseeing", "tourist_spots":
		return []string{"tourism=attraction", "tourism=museum", "tourism=viewpoint", "historic=monument"}
	case "restaurants", "food", "dining":
		return []string{"amenity=restaurant", "amenity=cafe", "amenity=fast_food"}
	case "hotels", "accommodation":
		return []string{"tourism=hotel", "tourism=hostel", "tourism=guest_house"}
	case "shopping", "malls":
		return []string{"shop=mall", "shop=department_store", "amenity=marketplace"}
	default:
		return []string{category}
	}
}
