package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teranos/mediagraph/cmd/mediagraph/commands"
	"github.com/teranos/mediagraph/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mediagraph",
	Short: "mediagraph - media server client",
	Long: `mediagraph - command line client for Plex-compatible media servers.

Available commands:
  info     - Show server identity and version
  search   - Search the libraries
  sessions - List (and optionally stop) active playback sessions
  history  - Show play history

Examples:
  mediagraph info
  mediagraph search "blade runner"
  mediagraph sessions
  mediagraph sessions stop 3 --reason "bedtime"
  mediagraph history --limit 20

The server address and token come from mediagraph.toml or the
MEDIAGRAPH_BASE_URL and MEDIAGRAPH_TOKEN environment variables.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(false); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity")

	rootCmd.AddCommand(commands.InfoCmd)
	rootCmd.AddCommand(commands.SearchCmd)
	rootCmd.AddCommand(commands.SessionsCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
