package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/mediagraph/object"
)

// SearchCmd runs a server-wide search.
var SearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search the libraries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Searching for %q...", query))

		results, err := client.Search(cmd.Context(), query)
		if err != nil {
			spinner.Fail(err.Error())
			return err
		}
		spinner.Success(fmt.Sprintf("%d results", results.Len()))

		if results.Len() == 0 {
			return nil
		}

		table := pterm.TableData{{"Type", "Title", "Year", "Key"}}
		for _, item := range results.Items() {
			table = append(table, describeItem(item))
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}

// describeItem renders one result row straight from the listing node;
// no per-row reloads for attributes a listing happens to omit.
func describeItem(item object.Item) []string {
	o := item.Base()
	get := func(name string) string {
		if o.Data() == nil {
			return ""
		}
		v, _ := o.Data().Get(name)
		return v
	}
	return []string{get("type"), get("title"), get("year"), o.Key}
}
