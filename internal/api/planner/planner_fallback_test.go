package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

func TestExtractConstraintsSimple(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) // Monday

	t.Run("full utterance", func(t *testing.T) {
		result := extractConstraintsSimple(now, "5 days in Jaipur starting tomorrow, I want to visit the Amber Fort and love shopping", types.DefaultTripConstraints())

		assert.Equal(t, "Jaipur", result.DestinationCity)
		assert.Equal(t, 5, result.DurationDays)
		assert.Equal(t, "2025-03-11", result.StartDate)
		assert.Contains(t, result.Interests, "Shopping")
		assert.Contains(t, result.MustVisit, "Amber Fort")
	})

	t.Run("keeps previous values for unmatched fields", func(t *testing.T) {
		prev := types.DefaultTripConstraints()
		prev.DestinationCity = "Tokyo"
		prev.DurationDays = 4

		result := extractConstraintsSimple(now, "I also enjoy art", prev)
		assert.Equal(t, "Tokyo", result.DestinationCity)
		assert.Equal(t, 4, result.DurationDays)
		assert.Contains(t, result.Interests, "Art")
	})

	t.Run("does not mutate previous snapshot", func(t *testing.T) {
		prev := types.DefaultTripConstraints()
		prev.Interests = []string{"History"}

		_ = extractConstraintsSimple(now, "love museums in Paris", prev)
		assert.Equal(t, []string{"History"}, prev.Interests)
		assert.Empty(t, prev.DestinationCity)
	})
}

func TestLastMentionedCity(t *testing.T) {
	assert.Equal(t, "Tokyo", lastMentionedCity("forget paris, let's do tokyo instead"))
	assert.Equal(t, "New York", lastMentionedCity("flying into new york"))
	assert.Equal(t, "", lastMentionedCity("somewhere warm"))
	// Word boundaries: no partial matches.
	assert.Equal(t, "", lastMentionedCity("the parisian cafe style"))
}

func TestExtractDuration(t *testing.T) {
	assert.Equal(t, 3, extractDuration("3 days"))
	assert.Equal(t, 10, extractDuration("10 days of wandering"))
	assert.Equal(t, 2, extractDuration("two days maybe"))
	assert.Equal(t, 7, extractDuration("a week off"))
	assert.Equal(t, 14, extractDuration("two weeks in asia"))
	assert.Equal(t, 0, extractDuration("not sure yet"))
}

func TestResolveRelativeDate(t *testing.T) {
	monday := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-11", resolveRelativeDate(monday, "starting tomorrow"))
	assert.Equal(t, "2025-03-14", resolveRelativeDate(monday, "next friday works"))
	assert.Equal(t, "2025-03-15", resolveRelativeDate(monday, "next weekend"))
	assert.Equal(t, "", resolveRelativeDate(monday, "sometime in june"))

	// A named weekday matching today rolls a full week forward.
	friday := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-21", resolveRelativeDate(friday, "next friday"))
}

func TestExtractBudget(t *testing.T) {
	assert.Equal(t, "50000 rupees", extractBudget("i have 50000 rupees"))
	assert.Equal(t, "2000 usd", extractBudget("around 2000 usd total"))
	assert.Equal(t, "30,000 INR", extractBudget("my budget is 30,000"))
	assert.Equal(t, "Luxury", extractBudget("make it a luxury trip"))
	assert.Equal(t, "Budget Friendly", extractBudget("keep it cheap"))
	assert.Equal(t, "", extractBudget("no idea about money"))
}

func TestExtractMustVisit(t *testing.T) {
	places := extractMustVisit("I want to visit the Eiffel Tower and see Notre Dame")
	assert.Equal(t, []string{"Eiffel Tower", "Notre Dame"}, places)

	// City names are destinations, not must-visit entries.
	assert.Empty(t, extractMustVisit("I want to visit Paris"))
}

func TestUnionTags(t *testing.T) {
	existing := []string{"History", "Art"}
	result := unionTags(existing, []string{"Art", "Museums"})
	assert.Equal(t, []string{"History", "Art", "Museums"}, result)
}
