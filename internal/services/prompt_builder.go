package services

import (
	"fmt"
	"strings"
)

const DefaultInterests = "general sightseeing"

// BuildItineraryPrompt renders the single-turn prompt for a days-long
// itinerary. User values are embedded as given.
func BuildItineraryPrompt(destination string, days int, interests string) string {
	interests = interestsOrDefault(interests)

	var prompt strings.Builder
	prompt.WriteString("You are an AI travel planner. ")
	prompt.WriteString(fmt.Sprintf("Generate a realistic %d-day itinerary for %s with interests: %s.\n", days, destination, interests))
	prompt.WriteString("Follow these rules strictly:\n")
	prompt.WriteString("- Output valid JSON only. Do NOT include any extra text, comments, markdown or explanation.\n")
	prompt.WriteString("- Format exactly as follows:\n")
	prompt.WriteString(`{
  "Day 1": [
    { "time": "9:00 AM", "activity": "Visit XYZ" },
    { "time": "11:00 AM", "activity": "Lunch at ABC" }
  ],
  "Day 2": [
    { "time": "9:30 AM", "activity": "Visit DEF" }
  ]
}
`)
	prompt.WriteString(fmt.Sprintf("- Use the keys \"Day 1\" through \"Day %d\", in order.\n", days))
	prompt.WriteString("- Use 12-hour time format (AM/PM) for all activities.\n")
	prompt.WriteString("- Each day should have 4-6 activities.\n")
	prompt.WriteString("- Activity times must increase chronologically within a day.\n")
	prompt.WriteString("- Do not use vague prefixes like \"Morning\", \"Afternoon\" or \"Evening\". Only real times in H:MM AM/PM format.\n")
	prompt.WriteString("- Ensure all JSON keys and values are properly quoted.\n")
	prompt.WriteString(fmt.Sprintf("- Keep the activities realistic and enjoyable, considering %s.\n", interests))

	return prompt.String()
}

// BuildSuggestionsPrompt renders the prompt for a flat list of extra
// activities that are not tied to a day or a time.
func BuildSuggestionsPrompt(destination, interests string) string {
	interests = interestsOrDefault(interests)

	var prompt strings.Builder
	prompt.WriteString("You are an AI travel assistant. ")
	prompt.WriteString(fmt.Sprintf("Suggest 8-12 extra activities for %s considering interests: %s.\n", destination, interests))
	prompt.WriteString("Follow these rules strictly:\n")
	prompt.WriteString("- Output valid JSON only.\n")
	prompt.WriteString("- Format as a JSON array of strings:\n")
	prompt.WriteString(`[
  "Activity 1",
  "Activity 2",
  "Activity 3"
]
`)
	prompt.WriteString("- Do NOT include times or assign them to specific days.\n")
	prompt.WriteString("- Keep activities realistic, fun, and specific.\n")

	return prompt.String()
}

// SplitInterestTags turns "food, art ,, hiking" into [food art hiking].
func SplitInterestTags(interests string) []string {
	tags := []string{}
	for _, part := range strings.Split(interests, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func interestsOrDefault(interests string) string {
	if strings.TrimSpace(interests) == "" {
		return DefaultInterests
	}
	return interests
}
