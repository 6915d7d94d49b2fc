package commands

import (
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/mediagraph/object"
)

var historyLimit int

// HistoryCmd shows the play history.
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show play history",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}

		results, err := client.History(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if results.Len() == 0 {
			pterm.Info.Println("No play history")
			return nil
		}

		table := pterm.TableData{{"Viewed", "Type", "Title", "Account"}}
		for _, item := range results.Items() {
			row := describeItem(item)
			viewed, account := "", ""
			if h, ok := item.(object.History); ok {
				viewed = h.Record().ViewedAt.Format(time.RFC3339)
				account = strconv.Itoa(h.Record().AccountID)
			}
			table = append(table, []string{viewed, row[0], row[1], account})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}

func init() {
	HistoryCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum number of entries")
}
