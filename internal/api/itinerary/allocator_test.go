package itinerary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

func TestAllocateDays_Shape(t *testing.T) {
	attractions := []types.POI{
		testPOI("a1", "Fort", "landmark"),
		testPOI("a2", "Garden", "park"),
		testPOI("a3", "Bazaar", "market"),
		testPOI("a4", "Temple", "religious"),
	}
	restaurants := []types.POI{
		testPOI("r1", "Rooftop Grill", "restaurants"),
		testPOI("r2", "Spice House", "restaurants"),
	}

	days := allocateDays(2, attractions, restaurants)
	require.Len(t, days, 2)

	for i, day := range days {
		assert.Equal(t, i+1, day.DayNumber)
		require.Len(t, day.Blocks, 3)

		morning, afternoon, evening := day.Blocks[0], day.Blocks[1], day.Blocks[2]
		assert.Equal(t, "Morning", morning.TimeBlock)
		assert.Equal(t, "09:00 AM", morning.StartTime)
		assert.Equal(t, "12:00 PM", morning.EndTime)
		assert.Empty(t, morning.TravelTimeFromPrevious)

		assert.Equal(t, "Afternoon", afternoon.TimeBlock)
		assert.Equal(t, "01:00 PM", afternoon.StartTime)
		assert.Equal(t, "05:00 PM", afternoon.EndTime)
		assert.Equal(t, "30 mins", afternoon.TravelTimeFromPrevious)

		assert.Equal(t, "Evening", evening.TimeBlock)
		assert.Equal(t, "07:00 PM", evening.StartTime)
		assert.Equal(t, "10:00 PM", evening.EndTime)
		assert.Equal(t, "30 mins", evening.TravelTimeFromPrevious)
	}

	// Attractions are consumed in order across the non-evening slots.
	assert.Equal(t, "Fort", days[0].Blocks[0].POI.Name)
	assert.Equal(t, "Garden", days[0].Blocks[1].POI.Name)
	assert.Equal(t, "Bazaar", days[1].Blocks[0].POI.Name)
	assert.Equal(t, "Temple", days[1].Blocks[1].POI.Name)
	assert.Equal(t, "Rooftop Grill", days[0].Blocks[2].POI.Name)
	assert.Equal(t, "Spice House", days[1].Blocks[2].POI.Name)
}

func TestAllocateDays_CyclesShortPools(t *testing.T) {
	attractions := []types.POI{testPOI("a1", "Fort", "landmark")}
	restaurants := []types.POI{testPOI("r1", "Spice House", "restaurants")}

	days := allocateDays(3, attractions, restaurants)
	require.Len(t, days, 3)

	// A one-entry pool repeats rather than running out.
	for _, day := range days {
		assert.Equal(t, "Fort", day.Blocks[0].POI.Name)
		assert.Equal(t, "Fort", day.Blocks[1].POI.Name)
		assert.Equal(t, "Spice House", day.Blocks[2].POI.Name)
	}
}

func TestAllocateDays_SynthesizesDinnerWhenNoRestaurants(t *testing.T) {
	attractions := []types.POI{
		testPOI("a1", "Fort", "landmark"),
		testPOI("a2", "Garden", "park"),
	}

	days := allocateDays(2, attractions, nil)
	require.Len(t, days, 2)

	for d, day := range days {
		evening := day.Blocks[2]
		assert.Equal(t, fmt.Sprintf("dinner-%d", d+1), evening.POI.ID)
		assert.Equal(t, "Local Dinner Experience", evening.POI.Name)
		assert.Equal(t, "restaurants", evening.POI.Category)
	}
}

func TestAllocateDays_EmptyAttractionPoolGuard(t *testing.T) {
	days := allocateDays(1, nil, nil)
	require.Len(t, days, 1)
	require.Len(t, days[0].Blocks, 3)

	assert.Equal(t, "Neighbourhood Walk 1", days[0].Blocks[0].POI.Name)
	assert.Equal(t, "activity-1-Morning", days[0].Blocks[0].POI.ID)
	assert.Equal(t, "activity-1-Afternoon", days[0].Blocks[1].POI.ID)
	assert.Equal(t, "dinner-1", days[0].Blocks[2].POI.ID)
}
