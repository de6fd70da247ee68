package types

// ConversationTurn is one prior exchange passed along for extraction context.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// TripConstraints is the accumulated requirements record for one planning
// conversation. It is never mutated in place; each turn produces a new
// version via the planner's Merge.
type TripConstraints struct {
	DestinationCity string   `json:"destination_city,omitempty"`
	StartDate       string   `json:"start_date,omitempty"` // ISO YYYY-MM-DD
	EndDate         string   `json:"end_date,omitempty"`
	DurationDays    int      `json:"duration_days,omitempty"`
	BudgetLevel     string   `json:"budget_level,omitempty"` // e.g. "Budget Friendly", "Moderate", "Luxury"
	TravelersCount  int      `json:"travelers_count"`
	Pace            string   `json:"pace,omitempty"` // e.g. "relaxed", "moderate", "fast"
	Interests       []string `json:"interests"`
	MustVisit       []string `json:"must_visit"`
	Avoid           []string `json:"avoid"`

	// Status flags derived on every merge.
	IsComplete            bool     `json:"is_complete"`
	MissingInfo           []string `json:"missing_info"`
	ClarificationQuestion string   `json:"clarification_question,omitempty"`
	SuggestedResponse     string   `json:"suggested_response,omitempty"`
}

// DefaultTripConstraints returns an empty record with the documented defaults.
func DefaultTripConstraints() *TripConstraints {
	return &TripConstraints{
		BudgetLevel:    "Moderate",
		TravelersCount: 1,
		Pace:           "Moderate",
		Interests:      []string{},
		MustVisit:      []string{},
		Avoid:          []string{},
		MissingInfo:    []string{},
	}
}

// EvaluateCompleteness recomputes the completeness flag and the ordered
// missing-field list. A trip is plannable once destination, duration and
// start date are all known.
func (tc *TripConstraints) EvaluateCompleteness() {
	tc.MissingInfo = tc.MissingInfo[:0]
	if tc.DestinationCity == "" {
		tc.MissingInfo = append(tc.MissingInfo, "destination")
	}
	if tc.DurationDays <= 0 {
		tc.MissingInfo = append(tc.MissingInfo, "duration")
	}
	if tc.StartDate == "" {
		tc.MissingInfo = append(tc.MissingInfo, "start_date")
	}
	tc.IsComplete = len(tc.MissingInfo) == 0
}
