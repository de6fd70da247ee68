package types

// ItineraryBlock pairs one time slot of a day with a POI.
type ItineraryBlock struct {
	TimeBlock              string `json:"time_block"` // "Morning", "Afternoon", "Evening"
	POI                    POI    `json:"poi"`
	StartTime              string `json:"start_time,omitempty"`
	EndTime                string `json:"end_time,omitempty"`
	TravelTimeFromPrevious string `json:"travel_time_from_previous,omitempty"`
	ActivityCost           string `json:"activity_cost,omitempty"`
	LocalTip               string `json:"local_tip,omitempty"`
}

// DayItinerary holds the three blocks of one trip day.
type DayItinerary struct {
	DayNumber int              `json:"day_number"`
	Blocks    []ItineraryBlock `json:"blocks"`
}

// Itinerary is the terminal artifact of one planning request. It is built
// once and replaced wholesale if the curation pass succeeds, never mutated.
type Itinerary struct {
	TripTitle               string         `json:"trip_title"`
	SummaryRationale        string         `json:"summary_rationale,omitempty"`
	WeatherForecast         string         `json:"weather_forecast,omitempty"`
	TransportationTips      string         `json:"transportation_tips,omitempty"`
	AccommodationSuggestion string         `json:"accommodation_suggestion,omitempty"`
	Days                    []DayItinerary `json:"days"`
	TotalCostEstimate       string         `json:"total_cost_estimate,omitempty"`
}

// BuildItineraryRequest is the planning entry point payload.
type BuildItineraryRequest struct {
	City      string   `json:"city"`
	Days      int      `json:"days"`
	Pace      string   `json:"pace"`
	Interests []string `json:"interests"`
	MustVisit []string `json:"must_visit"`
	Budget    string   `json:"budget"`
	StartDate string   `json:"start_date,omitempty"`
}

// DayForecast is one day of the weather provider response.
type DayForecast struct {
	Date          string  `json:"date"`
	Weather       string  `json:"weather"`
	TempMax       float64 `json:"temp_max"`
	TempMin       float64 `json:"temp_min"`
	Precipitation float64 `json:"precipitation"`
}

// WeatherForecast is the per-city forecast used as curation context.
type WeatherForecast struct {
	City string        `json:"city"`
	Days []DayForecast `json:"days"`
}
