// Botdash is a terminal dashboard for an OSRS bot-management backend.
//
// It provides backend discovery, an interactive dashboard for starting,
// stopping and configuring bots, and direct commands for scripting the
// same operations. The dashboard communicates with the backend over its
// JSON HTTP API and receives live notifications over a websocket.
//
// Usage:
//
//	botdash [command] [flags]
//
// Running without arguments launches the interactive dashboard.
// See 'botdash --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osrsbots/botdash/internal/logging"
	"github.com/osrsbots/botdash/internal/version"
)

func main() {
	_ = logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "botdash",
	Short: "OSRS Bot Management Dashboard",
	Long: `A terminal dashboard for an OSRS bot-management backend.

Provides backend discovery, an interactive dashboard for starting,
stopping and configuring bots, and direct commands for scripting.

If no command is specified, the interactive dashboard will launch
automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the dashboard when no subcommand provided
		return runDashboard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("botdash %s (commit: %s)\n", version.Version, version.Commit)
	},
}
