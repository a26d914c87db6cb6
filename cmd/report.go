package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cascadia-snow/resortwatch/internal/results"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// reportConfig describes where a report came from.
type reportConfig struct {
	Source      string `yaml:"source"`
	UpdatedAt   string `yaml:"updatedat"`
	GeneratedAt string `yaml:"generatedat"`
}

// reportEntry is one resort's standing in the exported report.
type reportEntry struct {
	Rank            int                `yaml:"rank"`
	ResortName      string             `yaml:"resortname"`
	ResortKey       string             `yaml:"resortkey"`
	CompositeScore  float64            `yaml:"compositescore"`
	Averages        map[string]float64 `yaml:"averages"`
	CamerasAnalyzed int                `yaml:"camerasanalyzed"`
	CamerasTotal    int                `yaml:"camerastotal"`
}

type reportSpec struct {
	Config   reportConfig  `yaml:"config"`
	Rankings []reportEntry `yaml:"rankings"`
}

func newReportCmd() *cobra.Command {
	var resultsPath string
	var yamlPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print resort rankings from a saved results document",
		Example: `  # Print rankings from the default results file
  resortwatch report

  # Also export a YAML report
  resortwatch report --yaml rankings.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := results.Load(resultsPath)
			if err != nil {
				return err
			}

			ranked := doc.Rankings()
			printRanked(doc, ranked)

			if yamlPath == "" {
				return nil
			}

			spec := reportSpec{
				Config: reportConfig{
					Source:      resultsPath,
					UpdatedAt:   doc.UpdatedAt.Format(time.RFC3339),
					GeneratedAt: time.Now().Format(time.RFC3339),
				},
				Rankings: make([]reportEntry, 0, len(ranked)),
			}
			for i, entry := range ranked {
				spec.Rankings = append(spec.Rankings, reportEntry{
					Rank:            i + 1,
					ResortName:      entry.ResortName,
					ResortKey:       entry.ResortKey,
					CompositeScore:  entry.CompositeScore,
					Averages:        entry.Averages,
					CamerasAnalyzed: entry.CamerasAnalyzed,
					CamerasTotal:    entry.CamerasTotal,
				})
			}

			data, err := yaml.Marshal(&spec)
			if err != nil {
				return fmt.Errorf("failed to marshal report: %w", err)
			}
			if err := os.WriteFile(yamlPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			absPath, _ := filepath.Abs(yamlPath)
			fmt.Printf("\nReport saved to: %s\n", absPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "analysis_results.json", "Path to the results document")
	cmd.Flags().StringVar(&yamlPath, "yaml", "", "Also write a YAML report to this path")

	return cmd
}

func printRanked(doc *results.Document, ranked []results.RankedResort) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("SKI RESORT RANKINGS - CURRENT CONDITIONS")
	fmt.Printf("updated %s\n", doc.UpdatedAt.Format(time.RFC3339))
	fmt.Println(strings.Repeat("=", 70))

	for i, entry := range ranked {
		fmt.Printf("\n#%d %s\n", i+1, entry.ResortName)
		fmt.Printf("   Composite Score: %.1f/10\n", entry.CompositeScore)
		fmt.Printf("   Cameras analyzed: %d/%d\n", entry.CamerasAnalyzed, entry.CamerasTotal)

		fields := make([]string, 0, len(entry.Averages))
		for field := range entry.Averages {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			if field == "snow_depth_inches" {
				continue
			}
			fmt.Printf("   %s: %.1f/10\n", field, entry.Averages[field])
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	if len(ranked) > 0 {
		fmt.Printf("RECOMMENDATION: %s (Score: %.1f/10)\n", ranked[0].ResortName, ranked[0].CompositeScore)
	}
	fmt.Println(strings.Repeat("=", 70))
}
