// Package main provides the chartload command line tool.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chartload",
		Short: "Fetch chart definitions and render them",
		Long: `chartload requests a JSON chart definition from a server endpoint,
revives date-Y-M-D strings into dates and renders the result as a CanvasJS
page or a YAML dump.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRenderCmd(), newListCmd(), newServeCmd())
	return rootCmd
}
