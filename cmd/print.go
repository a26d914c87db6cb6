package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cascadia-snow/resortwatch/internal/ranking"
)

// printRankings writes a formatted resort ranking to stdout.
func printRankings(summaries []ranking.ResortSummary) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("SKI RESORT RANKINGS - CURRENT CONDITIONS")
	fmt.Println(strings.Repeat("=", 70))

	for i, summary := range summaries {
		successful := 0
		for _, a := range summary.CameraAnalyses {
			if a.Rating != nil {
				successful++
			}
		}

		fmt.Printf("\n#%d %s\n", i+1, summary.ResortName)
		fmt.Printf("   Composite Score: %.1f/10\n", summary.CompositeScore)
		fmt.Printf("   Cameras analyzed: %d/%d\n", successful, len(summary.CameraAnalyses))

		for _, field := range sortedFields(summary.Averages) {
			if field == "snow_depth_inches" {
				continue
			}
			fmt.Printf("   %s: %.1f/10\n", field, summary.Averages[field])
		}

		for _, a := range summary.CameraAnalyses {
			if a.Rating != nil {
				fmt.Printf("   %s: %s\n", a.CameraName, a.Rating.Notes)
			}
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	if len(summaries) > 0 {
		best := summaries[0]
		fmt.Printf("RECOMMENDATION: %s (Score: %.1f/10)\n", best.ResortName, best.CompositeScore)
	}
	fmt.Println(strings.Repeat("=", 70))
}

func sortedFields(averages map[string]float64) []string {
	fields := make([]string, 0, len(averages))
	for field := range averages {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
