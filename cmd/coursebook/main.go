package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/coursebook/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "coursebook",
		Short: "Course search service with live filter sessions",
		Long: `coursebook serves a course catalog over HTTP.

Browsers open a live search session over WebSocket; filter changes are
searched and written back to the address bar on the server, debounced.

  • Filter by keyword, region, category, points, open slots and more
  • Popular, latest and recommended highlights
  • Catalog from a JSON file, S3, or the built-in sample
  • Prometheus metrics and OpenTelemetry tracing`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to coursebook.json (default: ./coursebook.json if present)")

	root.AddCommand(
		serveCmd(&configPath),
		queryCmd(&configPath),
		highlightsCmd(&configPath),
		versionCmd(),
	)
	return root
}
