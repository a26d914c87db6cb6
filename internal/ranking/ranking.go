// Package ranking folds camera analyses into per-resort summaries and orders
// resorts by composite score.
package ranking

import (
	"sort"

	"github.com/cascadia-snow/resortwatch/internal/analysis"
)

// Fields that appear in the averages but never count toward the composite.
var compositeExclusions = map[string]bool{
	"confidence":        true,
	"snow_depth_inches": true,
}

// ResortSummary is the aggregation result for one resort.
type ResortSummary struct {
	ResortName     string
	ResortKey      string
	CameraAnalyses []analysis.CameraAnalysis
	// Averages maps each rated field to its mean across the cameras that
	// rated it. Cameras with a reduced category set do not drag down
	// categories they did not rate.
	Averages       map[string]float64
	CompositeScore float64
}

// CalcAverages computes per-field means across a list of rating maps,
// considering for each field only the maps that contain it, plus the
// composite: the mean of the field averages minus the excluded fields. Empty
// input yields an empty map and a zero composite.
func CalcAverages(ratings []map[string]float64) (map[string]float64, float64) {
	averages := make(map[string]float64)
	if len(ratings) == 0 {
		return averages, 0
	}

	fieldValues := make(map[string][]float64)
	for _, rating := range ratings {
		for field, value := range rating {
			fieldValues[field] = append(fieldValues[field], value)
		}
	}

	for field, values := range fieldValues {
		var sum float64
		for _, v := range values {
			sum += v
		}
		averages[field] = sum / float64(len(values))
	}

	var compositeSum float64
	var compositeCount int
	for field, avg := range averages {
		if compositeExclusions[field] {
			continue
		}
		compositeSum += avg
		compositeCount++
	}

	composite := 0.0
	if compositeCount > 0 {
		composite = compositeSum / float64(compositeCount)
	}
	return averages, composite
}

// Summarize builds a ResortSummary from a resort's camera analyses. Zero
// successful analyses is a valid terminal state, not an error: averages stay
// empty and the composite is 0.
func Summarize(resortName, resortKey string, analyses []analysis.CameraAnalysis) ResortSummary {
	summary := ResortSummary{
		ResortName:     resortName,
		ResortKey:      resortKey,
		CameraAnalyses: analyses,
	}

	var ratings []map[string]float64
	for _, a := range analyses {
		if a.Rating == nil {
			continue
		}
		rating := make(map[string]float64, len(a.Rating.Categories)+1)
		for category, score := range a.Rating.Categories {
			rating[category] = float64(score)
		}
		rating["confidence"] = float64(a.Rating.Confidence)
		ratings = append(ratings, rating)
	}

	summary.Averages, summary.CompositeScore = CalcAverages(ratings)
	return summary
}

// Sort orders summaries by composite score descending. Ties keep their
// original catalog order.
func Sort(summaries []ResortSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CompositeScore > summaries[j].CompositeScore
	})
}
