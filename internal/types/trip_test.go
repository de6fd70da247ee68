package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCompleteness(t *testing.T) {
	cases := []struct {
		name        string
		destination string
		duration    int
		startDate   string
		complete    bool
		missing     []string
	}{
		{"nothing known", "", 0, "", false, []string{"destination", "duration", "start_date"}},
		{"destination only", "Paris", 0, "", false, []string{"duration", "start_date"}},
		{"duration only", "", 3, "", false, []string{"destination", "start_date"}},
		{"start date only", "", 0, "2025-03-11", false, []string{"destination", "duration"}},
		{"missing start date", "Paris", 3, "", false, []string{"start_date"}},
		{"missing duration", "Paris", 0, "2025-03-11", false, []string{"duration"}},
		{"missing destination", "", 3, "2025-03-11", false, []string{"destination"}},
		{"all known", "Paris", 3, "2025-03-11", true, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			constraints := DefaultTripConstraints()
			constraints.DestinationCity = tc.destination
			constraints.DurationDays = tc.duration
			constraints.StartDate = tc.startDate

			constraints.EvaluateCompleteness()

			assert.Equal(t, tc.complete, constraints.IsComplete)
			assert.Equal(t, tc.missing, constraints.MissingInfo)
		})
	}

	t.Run("negative duration counts as missing", func(t *testing.T) {
		constraints := DefaultTripConstraints()
		constraints.DestinationCity = "Paris"
		constraints.DurationDays = -1
		constraints.StartDate = "2025-03-11"

		constraints.EvaluateCompleteness()
		assert.False(t, constraints.IsComplete)
		assert.Equal(t, []string{"duration"}, constraints.MissingInfo)
	})
}

func TestRawLocationLongitude(t *testing.T) {
	lon := 2.3522
	lng := 139.6917

	assert.Equal(t, 2.3522, RawLocation{Lon: &lon}.Longitude())
	assert.Equal(t, 139.6917, RawLocation{Lng: &lng}.Longitude())
	// lon wins when both spellings are present
	assert.Equal(t, 2.3522, RawLocation{Lon: &lon, Lng: &lng}.Longitude())
	assert.Equal(t, 0.0, RawLocation{}.Longitude())
}
