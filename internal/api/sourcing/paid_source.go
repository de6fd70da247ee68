package sourcing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

// PaidDataSource is tier 2: licensed providers (OpenTripMap and Google
// Places). Results of both catalogs are concatenated before normalization.
// Each catalog is skipped silently when its API key is not configured.
type PaidDataSource struct {
	logger          *slog.Logger
	client          *http.Client
	openTripMapURL  string
	googlePlacesURL string
	openTripMapKey  string
	googlePlacesKey string
}

func NewPaidDataSource(openTripMapURL, googlePlacesURL string, timeout time.Duration, logger *slog.Logger) *PaidDataSource {
	return &PaidDataSource{
		logger:          logger,
		client:          newProviderClient(timeout),
		openTripMapURL:  openTripMapURL,
		googlePlacesURL: googlePlacesURL,
		openTripMapKey:  os.Getenv("OPENTRIPMAP_API_KEY"),
		googlePlacesKey: os.Getenv("GOOGLE_PLACES_API_KEY"),
	}
}

func (s *PaidDataSource) Tag() string { return "paid" }

func (s *PaidDataSource) FindCandidates(ctx context.Context, city string, _ []string, category string) ([]types.RawCandidate, error) {
	var candidates []types.RawCandidate

	if isAttractionCategory(category) {
		fromTripMap, err := s.searchOpenTripMap(ctx, city)
		if err != nil {
			s.logger.WarnContext(ctx, "OpenTripMap search failed", slog.Any("error", err))
		}
		candidates = append(candidates, fromTripMap...)
	}

	fromPlaces, err := s.searchGooglePlaces(ctx, city, category)
	if err != nil {
		s.logger.WarnContext(ctx, "Google Places search failed", slog.Any("error", err))
	}
	candidates = append(candidates, fromPlaces...)

	return candidates, nil
}

func isAttractionCategory(category string) bool {
	switch category {
	case "attractions", "sightseeing", "tourist_spots":
		return true
	}
	return false
}

func (s *PaidDataSource) searchOpenTripMap(ctx context.Context, city string) ([]types.RawCandidate, error) {
	if s.openTripMapKey == "" {
		return nil, nil
	}

	var geo struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	geonameURL := fmt.Sprintf("%s/places/geoname?name=%s&apikey=%s",
		s.openTripMapURL, url.QueryEscape(city), s.openTripMapKey)
	if err := s.getJSON(ctx, geonameURL, &geo); err != nil {
		return nil, fmt.Errorf("opentripmap geoname: %w", err)
	}

	var radius struct {
		Features []struct {
			Properties struct {
				XID string `json:"xid"`
			} `json:"properties"`
		} `json:"features"`
	}
	radiusURL := fmt.Sprintf("%s/places/radius?radius=5000&lon=%f&lat=%f&kinds=interesting_places&limit=20&apikey=%s",
		s.openTripMapURL, geo.Lon, geo.Lat, s.openTripMapKey)
	if err := s.getJSON(ctx, radiusURL, &radius); err != nil {
		return nil, fmt.Errorf("opentripmap radius: %w", err)
	}

	candidates := make([]types.RawCandidate, 0, 10)
	for _, feature := range radius.Features {
		if len(candidates) >= 10 {
			break
		}
		var details struct {
			Name  string `json:"name"`
			Kinds string `json:"kinds"`
			Point struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"point"`
			WikipediaExtracts struct {
				Text string `json:"text"`
			} `json:"wikipedia_extracts"`
			Preview struct {
				Source string `json:"source"`
			} `json:"preview"`
		}
		detailsURL := fmt.Sprintf("%s/places/xid/%s?apikey=%s", s.openTripMapURL, feature.Properties.XID, s.openTripMapKey)
		if err := s.getJSON(ctx, detailsURL, &details); err != nil {
			s.logger.DebugContext(ctx, "Skipping OpenTripMap place", slog.String("xid", feature.Properties.XID), slog.Any("error", err))
			continue
		}
		if details.Name == "" {
			continue
		}
		lon := details.Point.Lon
		candidates = append(candidates, types.RawCandidate{
			Name:        details.Name,
			Category:    CategoryAttractions,
			Description: details.WikipediaExtracts.Text,
			Rating:      4.0,
			Location:    types.RawLocation{Lat: details.Point.Lat, Lng: &lon},
			Details: map[string]string{
				"kinds": details.Kinds,
				"image": details.Preview.Source,
			},
		})
	}
	return candidates, nil
}

func (s *PaidDataSource) searchGooglePlaces(ctx context.Context, city, category string) ([]types.RawCandidate, error) {
	if s.googlePlacesKey == "" {
		return nil, nil
	}

	var geocode struct {
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	geocodeURL := fmt.Sprintf("%s/geocode/json?address=%s&key=%s",
		s.googlePlacesURL, url.QueryEscape(city), s.googlePlacesKey)
	if err := s.getJSON(ctx, geocodeURL, &geocode); err != nil {
		return nil, fmt.Errorf("places geocode: %w", err)
	}
	if len(geocode.Results) == 0 {
		return nil, nil
	}
	location := geocode.Results[0].Geometry.Location

	keyword, placeType := placesQuery(category)
	var search struct {
		Results []struct {
			Name     string   `json:"name"`
			Types    []string `json:"types"`
			Rating   float64  `json:"rating"`
			Vicinity string   `json:"vicinity"`
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
			PriceLevel       int `json:"price_level"`
			UserRatingsTotal int `json:"user_ratings_total"`
		} `json:"results"`
	}
	searchURL := fmt.Sprintf("%s/place/nearbysearch/json?location=%f,%f&radius=5000&keyword=%s&type=%s&key=%s",
		s.googlePlacesURL, location.Lat, location.Lng, url.QueryEscape(keyword), placeType, s.googlePlacesKey)
	if err := s.getJSON(ctx, searchURL, &search); err != nil {
		return nil, fmt.Errorf("places nearbysearch: %w", err)
	}

	candidates := make([]types.RawCandidate, 0, 10)
	for _, place := range search.Results {
		if len(candidates) >= 10 {
			break
		}
		if place.Name == "" {
			continue
		}
		placeCategory := category
		if len(place.Types) > 0 {
			placeCategory = place.Types[0]
		}
		priceLevel := place.PriceLevel
		if priceLevel == 0 {
			priceLevel = 2
		}
		lng := place.Geometry.Location.Lng
		candidates = append(candidates, types.RawCandidate{
			Name:     place.Name,
			Category: placeCategory,
			Rating:   place.Rating,
			Location: types.RawLocation{Lat: place.Geometry.Location.Lat, Lng: &lng},
			Details: map[string]string{
				"address":            place.Vicinity,
				"price_level":        strings.Repeat("$", priceLevel),
				"user_ratings_total": fmt.Sprintf("%d", place.UserRatingsTotal),
			},
		})
	}
	return candidates, nil
}

func placesQuery(category string) (keyword, placeType string) {
	switch category {
	case "attractions", "sightseeing", "tourist_spots":
		return "tourist attraction", "tourist_attraction"
	case "restaurants", "food", "dining":
		return "restaurant", "restaurant"
	case "hotels", "accommodation", "lodging":
		return "hotel", "lodging"
	case "shopping", "malls":
		return "shopping", "shopping_mall"
	default:
		return category, ""
	}
}

func (s *PaidDataSource) getJSON(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
