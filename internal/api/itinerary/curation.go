package itinerary

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

// draftActivity is the slimmed-down block shape sent to the refiner.
// Internal ids are deliberately left out of the prompt.
type draftActivity struct {
	Slot          string            `json:"slot"`
	Name          string            `json:"name"`
	Category      string            `json:"category"`
	Rating        float64           `json:"rating"`
	SourceDesc    string            `json:"source_desc"`
	SourceDetails map[string]string `json:"source_details"`
}

type draftDay struct {
	Day        int             `json:"day"`
	Activities []draftActivity `json:"activities"`
}

// curateItinerary attempts the optional generative refinement of the draft.
// Any failure (provider error, malformed response) returns nil and the
// caller keeps the draft; this pass is never the only path to a result.
func (s *ServiceImpl) curateItinerary(ctx context.Context, req types.BuildItineraryRequest, days []types.DayItinerary, weatherInfo, citySummary string) *types.Itinerary {
	if s.ai == nil {
		return nil
	}

	richDraft := make([]draftDay, 0, len(days))
	for _, day := range days {
		dd := draftDay{Day: day.DayNumber}
		for _, block := range day.Blocks {
			dd.Activities = append(dd.Activities, draftActivity{
				Slot:          block.TimeBlock,
				Name:          block.POI.Name,
				Category:      block.POI.Category,
				Rating:        block.POI.Rating,
				SourceDesc:    block.POI.Description,
				SourceDetails: block.POI.Details,
			})
		}
		richDraft = append(richDraft, dd)
	}
	draftJSON, err := json.Marshal(richDraft)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to serialize draft for curation", slog.Any("error", err))
		return nil
	}

	prompt := getCurationPrompt(req, string(draftJSON), weatherInfo, citySummary)
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](s.temperature)}

	response, err := s.ai.GenerateContent(ctx, prompt, config)
	if err != nil && generativeAI.IsRateLimited(err) {
		// One bounded retry for rate-limit-class failures only.
		s.logger.WarnContext(ctx, "Refiner rate limited, retrying once", slog.Any("error", err))
		response, err = s.ai.GenerateContent(ctx, prompt, config)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Curation failed, using draft", slog.Any("error", err))
		return nil
	}

	curated, err := parseCuratedItinerary(response, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to parse curated itinerary, using draft", slog.Any("error", err))
		return nil
	}
	return curated
}

// parseCuratedItinerary reconstructs the refiner JSON into domain types,
// assigning fresh slot-scoped POI ids.
func parseCuratedItinerary(response string, req types.BuildItineraryRequest) (*types.Itinerary, error) {
	var data struct {
		TripTitle               string `json:"trip_title"`
		SummaryRationale        string `json:"summary_rationale"`
		WeatherForecast         string `json:"weather_forecast"`
		TransportationTips      string `json:"transportation_tips"`
		AccommodationSuggestion string `json:"accommodation_suggestion"`
		TotalCostEstimate       string `json:"total_cost_estimate"`
		Days                    []struct {
			DayNumber int `json:"day_number"`
			Blocks    []struct {
				TimeBlock              string `json:"time_block"`
				StartTime              string `json:"start_time"`
				EndTime                string `json:"end_time"`
				TravelTimeFromPrevious string `json:"travel_time_from_previous"`
				ActivityCost           string `json:"activity_cost"`
				LocalTip               string `json:"local_tip"`
				POI                    struct {
					Name        string            `json:"name"`
					Category    string            `json:"category"`
					Description string            `json:"description"`
					Rating      float64           `json:"rating"`
					SourceURL   string            `json:"source_url"`
					Location    types.RawLocation `json:"location"`
					Details     map[string]string `json:"details"`
				} `json:"poi"`
			} `json:"blocks"`
		} `json:"days"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(response)), &data); err != nil {
		return nil, fmt.Errorf("failed to parse curated itinerary JSON: %w", err)
	}
	if len(data.Days) == 0 {
		return nil, fmt.Errorf("curated itinerary contains no days")
	}

	days := make([]types.DayItinerary, 0, len(data.Days))
	for _, d := range data.Days {
		day := types.DayItinerary{DayNumber: d.DayNumber}
		for _, b := range d.Blocks {
			name := b.POI.Name
			if name == "" {
				name = "Unknown"
			}
			category := b.POI.Category
			if category == "" {
				category = "sightseeing"
			}
			rating := b.POI.Rating
			if rating <= 0 {
				rating = 4.0
			}
			details := b.POI.Details
			if details == nil {
				details = map[string]string{}
			}
			day.Blocks = append(day.Blocks, types.ItineraryBlock{
				TimeBlock:              b.TimeBlock,
				StartTime:              b.StartTime,
				EndTime:                b.EndTime,
				TravelTimeFromPrevious: b.TravelTimeFromPrevious,
				ActivityCost:           b.ActivityCost,
				LocalTip:               b.LocalTip,
				POI: types.POI{
					ID:                     fmt.Sprintf("curated-%d-%s", d.DayNumber, b.TimeBlock),
					Name:                   name,
					Category:               category,
					Description:            b.POI.Description,
					Rating:                 rating,
					SourceURL:              b.POI.SourceURL,
					Location:               types.GeoPoint{Lat: b.POI.Location.Lat, Lon: b.POI.Location.Longitude()},
					AverageDurationMinutes: 60,
					Details:                details,
				},
			})
		}
		days = append(days, day)
	}

	title := data.TripTitle
	if title == "" {
		title = fmt.Sprintf("Trip to %s", req.City)
	}
	costEstimate := data.TotalCostEstimate
	if costEstimate == "" {
		costEstimate = req.Budget
	}
	return &types.Itinerary{
		TripTitle:               title,
		SummaryRationale:        data.SummaryRationale,
		WeatherForecast:         data.WeatherForecast,
		TransportationTips:      data.TransportationTips,
		AccommodationSuggestion: data.AccommodationSuggestion,
		Days:                    days,
		TotalCostEstimate:       costEstimate,
	}, nil
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
