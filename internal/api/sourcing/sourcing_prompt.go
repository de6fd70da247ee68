package sourcing

import (
	"fmt"
	"strings"
)

func getPOIGenerationPrompt(city string, interests []string, category string, count int) string {
	interestList := "General sightseeing"
	if len(interests) > 0 {
		interestList = strings.Join(interests, ", ")
	}
	return fmt.Sprintf(`Generate a JSON array of %d %s in %s.
Include specific places based on these interests: %s.

For each item, provide:
- name: string
- category: "%s"
- description: string (concise)
- rating: float (1-5)
- location: {"lat": float, "lon": float}
- details: {
    "timings": string,
    "cost": string,
    "tips": string
  }

Return ONLY a valid JSON array. No markdown, no intro/outro.`, count, category, city, interestList, category)
}
