package cmd

import (
	"fmt"

	"github.com/cascadia-snow/resortwatch/internal/catalog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resortwatch",
		Short: "Ski resort condition ranking from webcam snapshots",
		Long: `Resortwatch fetches webcam snapshots from ski resorts, rates current
conditions (snow quality, visibility, weather, activity) with a vision model,
and ranks resorts by a composite score.

Results are saved as a JSON document that the report and serve commands read.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newCamerasCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// loadCatalog returns the embedded catalog, or one loaded from --catalog.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return cat, nil
}
