package planner

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

func getConstraintExtractionPrompt(now time.Time, prev *types.TripConstraints, text string, history []types.ConversationTurn) string {
	prevJSON, err := json.Marshal(prev)
	if err != nil {
		prevJSON = []byte("{}")
	}

	var historyLines strings.Builder
	for _, turn := range history {
		historyLines.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
	}

	return fmt.Sprintf(`You are an AI travel assistant. Extract trip constraints from the user's input, considering the conversation history.

Today's Date: %s

Current Known Constraints: %s

Conversation History:
%s
User Input: %q

Extract: Destination City, Start/End Date, Duration (days), Budget Level, Travelers Count, Pace, Interests, Must Visit, Avoid.

CRITICAL: Calculate specific YYYY-MM-DD dates if the user uses relative terms like "next friday", "tomorrow", or "in 2 weeks".
If Start Date and Duration are known, YOU MUST CALCULATE the End Date.
Do not ask for End Date if you can calculate it from Start + Duration.

Also generate a 'suggested_response':
- If the user asks a question (e.g., "places to eat"), ANSWER it briefly in 'suggested_response'.
- If the user provides info, confirm it politely in 'suggested_response'.
- If info is missing, ask for it in 'clarification_question' (and keep 'suggested_response' null or a polite acknowledgement).

Return ONLY a JSON object (no markdown, no explanation) matching this schema:
{
    "destination_city": string | null,
    "start_date": string | null,
    "end_date": string | null,
    "duration_days": int | null,
    "budget_level": string | null,
    "travelers_count": int,
    "pace": string,
    "interests": [string],
    "must_visit": [string],
    "avoid": [string],
    "is_complete": bool,
    "missing_info": [string],
    "clarification_question": string | null,
    "suggested_response": string | null
}`, now.Format("2006-01-02 (Monday)"), string(prevJSON), historyLines.String(), text)
}
