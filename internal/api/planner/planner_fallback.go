package planner

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

// knownCities is the whole-word city matcher vocabulary for the rule-based
// pass. The model path handles arbitrary destinations; this list only needs
// to cover the common cases when the model is unreachable.
var knownCities = []string{
	"paris", "tokyo", "jaipur", "delhi", "london", "dubai", "singapore", "new york", "mumbai",
	"agra", "bangalore", "hyderabad", "chennai", "kolkata", "pune", "goa", "kerala", "himachal",
	"manali", "shimla", "rishikesh", "varanasi", "udaipur", "jodhpur", "kyoto", "osaka", "rome",
	"venice", "florence", "milan", "barcelona", "madrid", "berlin", "munich", "amsterdam",
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var interestKeywords = map[string]string{
	"shopping": "Shopping", "shop": "Shopping", "souvenir": "Shopping",
	"food": "Local Cuisine", "cuisine": "Local Cuisine", "eat": "Local Cuisine", "restaurant": "Local Cuisine",
	"history": "History", "historic": "History",
	"culture": "Culture",
	"museum":  "Museums",
	"art":     "Art",
	"nature":  "Nature", "park": "Nature",
	"adventure": "Adventure", "hiking": "Adventure",
	"nightlife": "Nightlife", "club": "Nightlife", "party": "Nightlife",
	"relax": "Relaxation", "spa": "Relaxation",
	"monuments": "Monuments", "fort": "Monuments", "palace": "Monuments",
}

var (
	durationPattern       = regexp.MustCompile(`(\d+)\s*days?`)
	budgetDigitsPattern   = regexp.MustCompile(`budget (?:of|is|around)?\s*([\d,]+)`)
	budgetCurrencyPattern = regexp.MustCompile(`([\d,]+)\s*(rupees|rs|usd|dollars|euro|gbp)`)
	mustVisitPattern      = regexp.MustCompile(`(?:visit|go to|see) (?:the )?([A-Z][a-z]+(?: [A-Z][a-z]+)*)`)
)

// extractConstraintsSimple is the deterministic rule pass used when the
// model extractor errors. It never fails; unmatched fields keep the
// previous turn's values.
func extractConstraintsSimple(now time.Time, text string, prev *types.TripConstraints) *types.TripConstraints {
	next := cloneConstraints(prev)
	lower := strings.ToLower(text)

	if city := lastMentionedCity(lower); city != "" {
		next.DestinationCity = city
	}
	if days := extractDuration(lower); days > 0 {
		next.DurationDays = days
	}
	if date := resolveRelativeDate(now, lower); date != "" {
		next.StartDate = date
		next.EndDate = ""
	}
	if budget := extractBudget(lower); budget != "" {
		next.BudgetLevel = budget
	}
	next.Interests = unionTags(next.Interests, extractInterests(lower))
	next.MustVisit = unionTags(next.MustVisit, extractMustVisit(text))

	return next
}

func cloneConstraints(prev *types.TripConstraints) *types.TripConstraints {
	next := *prev
	next.Interests = append([]string(nil), prev.Interests...)
	next.MustVisit = append([]string(nil), prev.MustVisit...)
	next.Avoid = append([]string(nil), prev.Avoid...)
	next.MissingInfo = append([]string(nil), prev.MissingInfo...)
	next.ClarificationQuestion = ""
	next.SuggestedResponse = ""
	return &next
}

// lastMentionedCity scans for known city names with word boundaries and
// returns the last occurrence by position, title-cased.
func lastMentionedCity(lower string) string {
	bestPos := -1
	found := ""
	for _, city := range knownCities {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(city) + `\b`)
		locs := re.FindAllStringIndex(lower, -1)
		for _, loc := range locs {
			if loc[0] > bestPos {
				bestPos = loc[0]
				found = titleCase(city)
			}
		}
	}
	return found
}

func titleCase(s string) string {
	parts := strings.Fields(s)
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func extractDuration(lower string) int {
	if match := durationPattern.FindStringSubmatch(lower); match != nil {
		if days, err := strconv.Atoi(match[1]); err == nil {
			return days
		}
	}
	for word, value := range numberWords {
		if strings.Contains(lower, word+" day") {
			return value
		}
	}
	if strings.Contains(lower, "one week") || strings.Contains(lower, "a week") {
		return 7
	}
	if strings.Contains(lower, "two weeks") {
		return 14
	}
	return 0
}

// resolveRelativeDate maps relative phrases to concrete dates. Named
// weekdays resolve to the next future occurrence; if today already matches,
// the date rolls forward a full week.
func resolveRelativeDate(now time.Time, lower string) string {
	switch {
	case strings.Contains(lower, "next weekend"):
		return nextWeekday(now, time.Saturday).Format("2006-01-02")
	case strings.Contains(lower, "next friday"):
		return nextWeekday(now, time.Friday).Format("2006-01-02")
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	}
	return ""
}

func nextWeekday(now time.Time, target time.Weekday) time.Time {
	daysAhead := (int(target) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return now.AddDate(0, 0, daysAhead)
}

func extractBudget(lower string) string {
	if match := budgetCurrencyPattern.FindStringSubmatch(lower); match != nil {
		return fmt.Sprintf("%s %s", match[1], match[2])
	}
	if match := budgetDigitsPattern.FindStringSubmatch(lower); match != nil {
		return fmt.Sprintf("%s INR", match[1])
	}
	if strings.Contains(lower, "luxury") || strings.Contains(lower, "expensive") {
		return "Luxury"
	}
	if strings.Contains(lower, "budget") || strings.Contains(lower, "cheap") {
		return "Budget Friendly"
	}
	return ""
}

func extractInterests(lower string) []string {
	tags := map[string]bool{}
	for keyword, tag := range interestKeywords {
		if strings.Contains(lower, keyword) {
			tags[tag] = true
		}
	}
	found := make([]string, 0, len(tags))
	for tag := range tags {
		found = append(found, tag)
	}
	sort.Strings(found)
	return found
}

// extractMustVisit pulls capitalized phrases following visit/go to/see from
// the original-case text, skipping known city names.
func extractMustVisit(text string) []string {
	places := map[string]bool{}
	for _, match := range mustVisitPattern.FindAllStringSubmatch(text, -1) {
		place := match[1]
		if isKnownCity(place) {
			continue
		}
		places[place] = true
	}
	found := make([]string, 0, len(places))
	for place := range places {
		found = append(found, place)
	}
	sort.Strings(found)
	return found
}

func isKnownCity(name string) bool {
	lower := strings.ToLower(name)
	for _, city := range knownCities {
		if city == lower {
			return true
		}
	}
	return false
}

// unionTags appends new tags that are not already present, preserving the
// existing order.
func unionTags(existing, added []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, tag := range existing {
		seen[tag] = true
	}
	for _, tag := range added {
		if !seen[tag] {
			seen[tag] = true
			existing = append(existing, tag)
		}
	}
	return existing
}
