package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

const (
	slotMorning   = "Morning"
	slotAfternoon = "Afternoon"
	slotEvening   = "Evening"
)

var timeSlots = []string{slotMorning, slotAfternoon, slotEvening}

// allocateDays distributes the two pools across days x slots. Both pools
// are treated as cyclic sequences via modulo indexing, so allocation never
// runs out regardless of day count. Evenings draw from the restaurant pool
// and fall back to a synthesized per-day dinner POI when it is empty.
func allocateDays(days int, attractions, restaurants []types.POI) []types.DayItinerary {
	result := make([]types.DayItinerary, 0, days)
	attractionIndex := 0
	restaurantIndex := 0

	for d := 1; d <= days; d++ {
		blocks := make([]types.ItineraryBlock, 0, len(timeSlots))
		for _, slot := range timeSlots {
			var poi types.POI
			switch {
			case slot == slotEvening && len(restaurants) > 0:
				poi = restaurants[restaurantIndex%len(restaurants)]
				restaurantIndex++
			case slot == slotEvening:
				poi = dinnerFallbackPOI(d)
			case len(attractions) > 0:
				poi = attractions[attractionIndex%len(attractions)]
				attractionIndex++
			default:
				// Guard only: the sourcing coordinator never hands over an
				// empty attraction pool.
				poi = attractionFallbackPOI(d, slot)
			}

			start, end := slotTimes(slot)
			block := types.ItineraryBlock{
				TimeBlock: slot,
				POI:       poi,
				StartTime: start,
				EndTime:   end,
			}
			if slot != slotMorning {
				block.TravelTimeFromPrevious = "30 mins"
			}
			blocks = append(blocks, block)
		}
		result = append(result, types.DayItinerary{DayNumber: d, Blocks: blocks})
	}
	return result
}

func slotTimes(slot string) (start, end string) {
	switch slot {
	case slotMorning:
		return "09:00 AM", "12:00 PM"
	case slotAfternoon:
		return "01:00 PM", "05:00 PM"
	default:
		return "07:00 PM", "10:00 PM"
	}
}

// dinnerFallbackPOI is the per-day synthesized Evening entry used when no
// restaurant data could be sourced.
func dinnerFallbackPOI(day int) types.POI {
	return types.POI{
		ID:                     fmt.Sprintf("dinner-%d", day),
		Name:                   "Local Dinner Experience",
		Category:               "restaurants",
		Description:            "Enjoy dinner at a well-reviewed local spot of your choice.",
		Location:               types.GeoPoint{},
		AverageDurationMinutes: 120,
		Rating:                 4.0,
		Details:                map[string]string{"cost": "Moderate", "tips": "Ask your accommodation for their favourite nearby table."},
	}
}

func attractionFallbackPOI(day int, slot string) types.POI {
	return types.POI{
		ID:                     fmt.Sprintf("activity-%d-%s", day, slot),
		Name:                   fmt.Sprintf("Neighbourhood Walk %d", day),
		Category:               "attractions",
		Description:            "Stroll through a different neighbourhood and take in daily life.",
		Location:               types.GeoPoint{},
		AverageDurationMinutes: 90,
		Rating:                 4.0,
		Details:                map[string]string{"cost": "Free"},
	}
}
