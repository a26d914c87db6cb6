package cmd

import (
	"fmt"
	"log/slog"

	"github.com/cascadia-snow/resortwatch/internal/analysis"
	"github.com/cascadia-snow/resortwatch/internal/images"
	"github.com/cascadia-snow/resortwatch/internal/providers"
	"github.com/cascadia-snow/resortwatch/internal/ranking"
	"github.com/cascadia-snow/resortwatch/internal/results"
	"github.com/cascadia-snow/resortwatch/internal/vision"
	"github.com/cascadia-snow/resortwatch/internal/webcams"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var resortKey string
	var catalogPath string
	var provider string
	var model string
	var output string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rate resort conditions from webcam snapshots",
		Long: `Fetches each resort's webcam images, rates them with a vision model, and
ranks resorts by composite score. Cameras that fail to resolve or rate are
reported and skipped; a resort with zero successful cameras still appears
with an empty summary.

Resorts are processed one at a time; cameras within a resort in parallel.`,
		Example: `  # Analyze all resorts with the default provider
  resortwatch analyze

  # Analyze one resort
  resortwatch analyze --resort stevens_pass

  # Use a local Ollama model
  resortwatch analyze --provider ollama --model llava:13b`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			fetcher := images.NewFetcher()
			registry := providers.NewRegistry(fetcher, images.NewFFmpeg())
			downloader := webcams.NewDownloader(cat, registry)

			client, err := vision.New(provider, model, fetcher)
			if err != nil {
				return err
			}
			analyzer := analysis.NewAnalyzer(client)
			analyzer.Concurrency = concurrency

			keys := cat.Keys()
			if resortKey != "" {
				if _, ok := cat.Resort(resortKey); !ok {
					return fmt.Errorf("unknown resort: %s", resortKey)
				}
				keys = []string{resortKey}
			}

			summaries := make([]ranking.ResortSummary, 0, len(keys))
			for _, key := range keys {
				resort, _ := cat.Resort(key)
				slog.Info("Analyzing resort", "resort", key, "cameras", len(resort.Cameras))

				infos, err := downloader.ResortImages(ctx, key)
				if err != nil {
					return err
				}

				analyses := analyzer.AnalyzeResort(ctx, infos)
				for _, a := range analyses {
					if a.Rating != nil {
						slog.Info("Camera rated", "camera", a.CameraName, "notes", a.Rating.Notes)
					} else {
						slog.Warn("Camera failed", "camera", a.CameraName, "error", a.Error)
					}
				}

				summaries = append(summaries, ranking.Summarize(resort.Name, key, analyses))
			}

			ranking.Sort(summaries)
			printRankings(summaries)

			doc := results.FromSummaries(summaries)
			if err := doc.Save(output); err != nil {
				return err
			}
			fmt.Printf("\nResults saved to: %s\n", output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&resortKey, "resort", "r", "", "Analyze only this resort (e.g. 'stevens_pass')")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to a resort catalog YAML (defaults to the built-in catalog)")
	cmd.Flags().StringVar(&provider, "provider", "", "Vision provider (gemini, ollama, or openai)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults to the provider's default)")
	cmd.Flags().StringVarP(&output, "output", "o", "analysis_results.json", "Path to write the results document")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Cameras analyzed in parallel per resort")

	return cmd
}
