package itinerary

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

func getCurationPrompt(req types.BuildItineraryRequest, draftJSON, weatherInfo, citySummary string) string {
	mustVisit := "None specified"
	if len(req.MustVisit) > 0 {
		mustVisit = strings.Join(req.MustVisit, ", ")
	}
	// Truncate on a rune boundary, summaries are arbitrary Unicode text.
	if runes := []rune(citySummary); len(runes) > 500 {
		citySummary = string(runes[:500])
	}

	return fmt.Sprintf(`You are a master travel curator and local expert.
Task: Refine this %d-day trip to %s into a premium, detailed travel guide.

*** CORE OPTIMIZATION LOGIC ***
You MUST generate the itinerary based on this "Efficiency & Value" protocol:
1. OPTIMIZE EFFORT (Logistics): strictly group activities geographically. Minimize travel time between slots.
2. MAXIMIZE TIME (Density): The user wants to "max out" high-quality experiences. If a main activity leaves a time gap, insert a quick, high-quality nearby stop.
3. OPTIMIZE MONEY (Value): ensure every dollar spent returns high engagement.
4. QUALITY OVER QUANTITY: "Maxing out" means 3-4 *impactful* memories per day.

USER CONSTRAINTS:
Interests: %s
Pace: %s
Budget: %s
Must Visit: %s

CONTEXT:
Weather: %s
City Overview: %s...

Draft Itinerary (Skeleton with raw data): %s

REQUIREMENTS FOR EACH ACTIVITY:
1. Precise Timings (e.g., 09:00 AM - 11:30 AM).
2. Deep Qualitative Description: You MUST structure the description to cover these 4 points using Markdown bolding:
   - **Significance & Vibe**: The historical/cultural importance, plus the "vibe" (e.g., "Chaotic but thrilling").
   - **Reviewer Verdict**: Synthesize insights from traveler reviews (e.g., "Travelers love the sunset view but warn about the queues").
   - **Why Chosen**: Specific rationale for THIS user and THIS time slot (e.g., "Scheduled for morning to beat the crowds").
   - **Best Use**: Strategic advice (e.g., "Enter via the East Gate," "Order the signature matcha latte").
3. Activity Cost: Specific estimate.
4. Local Tip: A secret "pro-tip" to avoid crowds, save money, or find a hidden gem.
5. Deep Link: A URL to more info.

REQUIREMENTS FOR TRIP OVERVIEW:
1. Summary Rationale: Explain how you optimized their Time, Money, and Effort.
2. Accommodation Suggestion: Recommend a specific area or hotel type.
3. Transportation: How should they get around?
4. Snacking/Food Tips: Specific local snacks to try.

Return ONLY a valid JSON object matching this schema:
{
    "trip_title": string,
    "summary_rationale": string,
    "weather_forecast": string,
    "transportation_tips": string,
    "accommodation_suggestion": string,
    "total_cost_estimate": string,
    "days": [
        {
            "day_number": int,
            "blocks": [
                {
                    "time_block": "Morning" | "Afternoon" | "Evening",
                    "start_time": string,
                    "end_time": string,
                    "travel_time_from_previous": string | null,
                    "activity_cost": string,
                    "local_tip": string,
                    "poi": {
                        "name": string,
                        "category": string,
                        "description": string (The 4-point qualitative description),
                        "rating": float,
                        "source_url": string,
                        "location": {"lat": float, "lon": float},
                        "details": { "tips": string, "cost": string }
                    }
                }
            ]
        }
    ]
}`, req.Days, req.City, strings.Join(req.Interests, ", "), req.Pace, req.Budget, mustVisit, weatherInfo, citySummary, draftJSON)
}
