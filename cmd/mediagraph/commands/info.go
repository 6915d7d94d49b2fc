package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// InfoCmd shows the connected server's identity.
var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show server identity and version",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}

		pterm.DefaultHeader.WithFullWidth().Printf("Server: %s", client.FriendlyName)
		pterm.Println()
		pterm.Info.Printf("Machine identifier: %s", client.MachineIdentifier)
		pterm.Info.Printf("Platform: %s", client.Platform)
		if client.Version != nil {
			pterm.Info.Printf("Version: %s", client.Version)
		}
		return nil
	},
}
