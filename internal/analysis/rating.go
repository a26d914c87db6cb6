package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Rating is the structured model output for one camera. Every score,
// confidence included, lies in [1,10].
type Rating struct {
	Confidence int            `json:"confidence"`
	Notes      string         `json:"notes"`
	Categories map[string]int `json:"categories"`
}

// ParseRating validates a raw model response against the requested
// categories.
//
// Policy: integral out-of-range scores are clamped into [1,10]. Unparseable
// JSON, a missing confidence, a missing requested category, or a non-integer
// score is an error, which the analyzer treats as a failed attempt.
// Categories the camera did not request are dropped.
func ParseRating(raw string, categories []string) (*Rating, error) {
	var parsed struct {
		Confidence *float64           `json:"confidence"`
		Notes      string             `json:"notes"`
		Categories map[string]float64 `json:"categories"`
	}

	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	if parsed.Confidence == nil {
		return nil, fmt.Errorf("response is missing confidence")
	}
	confidence, err := clampScore("confidence", *parsed.Confidence)
	if err != nil {
		return nil, err
	}

	rating := &Rating{
		Confidence: confidence,
		Notes:      strings.TrimSpace(parsed.Notes),
		Categories: make(map[string]int, len(categories)),
	}

	for _, category := range categories {
		value, ok := parsed.Categories[category]
		if !ok {
			return nil, fmt.Errorf("response is missing category %q", category)
		}
		score, err := clampScore(category, value)
		if err != nil {
			return nil, err
		}
		rating.Categories[category] = score
	}

	return rating, nil
}

func clampScore(name string, value float64) (int, error) {
	if value != math.Trunc(value) {
		return 0, fmt.Errorf("%s score %v is not an integer", name, value)
	}
	score := int(value)
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score, nil
}

// stripFences trims markdown code blocks some models wrap JSON in.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}
