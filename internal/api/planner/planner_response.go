package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

// shapeResponse fills the conversational fields of the merged snapshot:
// a delta acknowledgement when anything changed, a ready-to-plan note when
// the record is complete, or exactly one clarification question otherwise.
// Clarifications follow the fixed priority destination, duration, start date.
func shapeResponse(prev, next *types.TripConstraints) {
	changes := describeChanges(prev, next)

	switch {
	case len(changes) > 0:
		next.SuggestedResponse = fmt.Sprintf("I've updated your %s. Anything else?", strings.Join(changes, ", "))
		next.ClarificationQuestion = ""
	case next.IsComplete:
		if next.SuggestedResponse == "" {
			next.SuggestedResponse = "I've noted that down. Your trip plan is looking good! Ready to generate the itinerary?"
		}
		next.ClarificationQuestion = ""
	default:
		next.SuggestedResponse = ""
		next.ClarificationQuestion = clarificationFor(next)
	}
}

func describeChanges(prev, next *types.TripConstraints) []string {
	var changes []string
	if next.DestinationCity != "" && next.DestinationCity != prev.DestinationCity {
		changes = append(changes, fmt.Sprintf("destination to %s", next.DestinationCity))
	}
	if next.DurationDays > 0 && next.DurationDays != prev.DurationDays {
		changes = append(changes, fmt.Sprintf("duration to %d days", next.DurationDays))
	}
	if next.BudgetLevel != "" && next.BudgetLevel != prev.BudgetLevel {
		changes = append(changes, fmt.Sprintf("budget to %s", next.BudgetLevel))
	}
	if added := newEntries(prev.Interests, next.Interests); len(added) > 0 {
		changes = append(changes, fmt.Sprintf("added %s to preferences", strings.Join(added, ", ")))
	}
	if added := newEntries(prev.MustVisit, next.MustVisit); len(added) > 0 {
		changes = append(changes, fmt.Sprintf("added %s to your must-visit list", strings.Join(added, ", ")))
	}
	return changes
}

func newEntries(before, after []string) []string {
	seen := make(map[string]bool, len(before))
	for _, entry := range before {
		seen[entry] = true
	}
	var added []string
	for _, entry := range after {
		if !seen[entry] {
			added = append(added, entry)
		}
	}
	sort.Strings(added)
	return added
}

func clarificationFor(tc *types.TripConstraints) string {
	switch {
	case tc.DestinationCity == "":
		return "Which city would you like to visit?"
	case tc.DurationDays <= 0:
		return fmt.Sprintf("Great, a trip to %s. How many days are you planning for?", tc.DestinationCity)
	case tc.StartDate == "":
		return fmt.Sprintf("When are you planning to visit %s? (e.g., 'tomorrow', 'next friday')", tc.DestinationCity)
	}
	return ""
}
