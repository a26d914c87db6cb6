package analysis

import (
	"fmt"
	"strings"
)

// categoryRubrics maps each category to its rating guide line. Categories not
// in the table are omitted from the guide but still requested from the model.
var categoryRubrics = map[string]string{
	"snow_quality":       "snow_quality: 1-2 = bare/icy, 3-4 = thin/crusty, 5-6 = average groomed, 7-8 = good coverage, 9-10 = fresh powder",
	"visibility":         "visibility: 1-2 = whiteout/can't see, 3-4 = foggy/poor, 5-6 = hazy, 7-8 = mostly clear, 9-10 = crystal clear",
	"weather_conditions": "weather_conditions: 1-2 = storm/rain, 3-4 = heavy snow, 5-6 = overcast, 7-8 = partly sunny, 9-10 = blue sky sunny",
	"activity":           "activity: 1-2 = empty/no movement, 3-4 = few people/quiet, 5-6 = moderate activity, 7-8 = busy/lively, 9-10 = bustling/energetic",
}

// BuildPrompt composes the analysis prompt for a camera's requested
// categories.
func BuildPrompt(categories []string) string {
	var guides []string
	for _, category := range categories {
		if rubric, ok := categoryRubrics[category]; ok {
			guides = append(guides, "- "+rubric)
		}
	}

	return fmt.Sprintf(`Analyze this ski resort webcam image and rate these categories: %s

Be decisive and honest. Avoid defaulting to safe middle scores (5-6). Use the full 1-10 range based on what you actually see.

Rating guide (1-10 scale):
%s

- confidence: 1-2 = can barely see anything, 3-4 = very blurry/dark, 5-6 = somewhat unclear, 7-8 = mostly clear image, 9-10 = crystal clear sharp image

Respond with ONLY valid JSON in this exact format:
{
    "confidence": <1-10>,
    "notes": "<one sentence observation>",
    "categories": {%s}
}

If conditions are clearly good, rate them high. If conditions are clearly bad, rate them low. If nighttime/dark, rate based on visible snow coverage and note "nighttime" in notes.`,
		strings.Join(categories, ", "),
		strings.Join(guides, "\n"),
		categoriesSchema(categories),
	)
}

func categoriesSchema(categories []string) string {
	fields := make([]string, 0, len(categories))
	for _, category := range categories {
		fields = append(fields, fmt.Sprintf("%q: <1-10>", category))
	}
	return strings.Join(fields, ", ")
}
