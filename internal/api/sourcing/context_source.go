package sourcing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Foggy",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	95: "Thunderstorm",
	96: "Thunderstorm with hail",
}

var _ ContextSource = (*ContextProvider)(nil)

// ContextProvider fetches the soft context (weather, city summary) that
// accompanies a plan. Both lookups degrade to empty values on failure.
type ContextProvider struct {
	logger       *slog.Logger
	client       *http.Client
	geocoder     *FreeDataSource
	wikipediaURL string
	openMeteoURL string
}

func NewContextProvider(geocoder *FreeDataSource, wikipediaURL, openMeteoURL string, timeout time.Duration, logger *slog.Logger) *ContextProvider {
	return &ContextProvider{
		logger:       logger,
		client:       newProviderClient(timeout),
		geocoder:     geocoder,
		wikipediaURL: wikipediaURL,
		openMeteoURL: openMeteoURL,
	}
}

// GetWeatherForecast looks up the Open-Meteo daily forecast for the city.
func (p *ContextProvider) GetWeatherForecast(ctx context.Context, city string, days int) (*types.WeatherForecast, error) {
	lat, lon, err := p.geocoder.Geocode(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("geocoding for weather failed: %w", err)
	}

	if days <= 0 {
		days = 7
	}
	endpoint := fmt.Sprintf("%s/forecast?latitude=%f&longitude=%f&daily=temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode&timezone=auto&forecast_days=%d",
		p.openMeteoURL, lat, lon, days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo returned status %d", resp.StatusCode)
	}

	var payload struct {
		Daily struct {
			Time             []string  `json:"time"`
			TemperatureMax   []float64 `json:"temperature_2m_max"`
			TemperatureMin   []float64 `json:"temperature_2m_min"`
			PrecipitationSum []float64 `json:"precipitation_sum"`
			WeatherCode      []int     `json:"weathercode"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode open-meteo response: %w", err)
	}

	forecast := &types.WeatherForecast{City: city}
	for i := range payload.Daily.Time {
		weather := "Unknown"
		if i < len(payload.Daily.WeatherCode) {
			if text, ok := weatherCodes[payload.Daily.WeatherCode[i]]; ok {
				weather = text
			}
		}
		day := types.DayForecast{Date: payload.Daily.Time[i], Weather: weather}
		if i < len(payload.Daily.TemperatureMax) {
			day.TempMax = payload.Daily.TemperatureMax[i]
		}
		if i < len(payload.Daily.TemperatureMin) {
			day.TempMin = payload.Daily.TemperatureMin[i]
		}
		if i < len(payload.Daily.PrecipitationSum) {
			day.Precipitation = payload.Daily.PrecipitationSum[i]
		}
		forecast.Days = append(forecast.Days, day)
	}

	p.logger.InfoContext(ctx, "Retrieved weather forecast",
		slog.String("city", city), slog.Int("days", len(forecast.Days)))
	return forecast, nil
}

// GetCitySummary fetches the Wikipedia extract for the city page.
func (p *ContextProvider) GetCitySummary(ctx context.Context, city string) (string, error) {
	endpoint := fmt.Sprintf("%s/page/summary/%s", p.wikipediaURL, url.PathEscape(strings.ReplaceAll(city, " ", "_")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}

	var payload struct {
		Extract string `json:"extract"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode wikipedia response: %w", err)
	}
	return payload.Extract, nil
}
