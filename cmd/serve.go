package cmd

import (
	"log/slog"

	"github.com/cascadia-snow/resortwatch/internal/results"
	"github.com/cascadia-snow/resortwatch/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var resultsPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rankings viewer API",
		Long: `Starts a read-only API over a saved results document.

Endpoints:
  GET /api/rankings      ranked resorts with averages and composite scores
  GET /api/resorts/:key  one resort's cameras, ratings, and errors
  GET /healthcheck`,
		Example: `  # Serve results on the default port 8787
  resortwatch serve

  # Serve a specific results file
  resortwatch serve --results /var/lib/resortwatch/results.json --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := results.NewStore(resultsPath)
			srv := server.New(store)

			addr := ":" + port
			slog.Info("Rankings viewer available", "addr", addr, "results", resultsPath)
			return srv.Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8787", "Port to listen on")
	cmd.Flags().StringVar(&resultsPath, "results", "analysis_results.json", "Path to the results document")

	return cmd
}
