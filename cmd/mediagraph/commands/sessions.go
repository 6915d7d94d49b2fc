package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/mediagraph/errors"
	"github.com/teranos/mediagraph/object"
)

// SessionsCmd lists active playback sessions.
var SessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List active playback sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}

		results, err := client.Sessions(cmd.Context())
		if err != nil {
			return err
		}
		if results.Len() == 0 {
			pterm.Info.Println("No active sessions")
			return nil
		}

		table := pterm.TableData{{"Session", "User", "Title", "Player", "State"}}
		for _, item := range results.Items() {
			sess, ok := item.(object.Session)
			if !ok {
				continue
			}
			core := sess.Core()
			title := describeItem(item)[1]
			player, state := playerState(core.Player())
			table = append(table, []string{
				strconv.Itoa(core.SessionKey), core.Username, title, player, state,
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}

var stopReason string

// sessionsStopCmd terminates one session by its session key.
var sessionsStopCmd = &cobra.Command{
	Use:   "stop SESSION_KEY",
	Short: "Stop a playback session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wanted, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.NewBadRequestf("session key must be a number, got %q", args[0])
		}

		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}

		results, err := client.Sessions(cmd.Context())
		if err != nil {
			return err
		}
		for _, item := range results.Items() {
			sess, ok := item.(object.Session)
			if !ok || sess.Core().SessionKey != wanted {
				continue
			}
			if err := sess.Core().Stop(cmd.Context(), stopReason); err != nil {
				return err
			}
			pterm.Success.Printf("Stopped session %d", wanted)
			return nil
		}
		return errors.NewNotFoundf("no active session with key %d", wanted)
	},
}

// playerState reads the display fields off a session's player element.
func playerState(player object.Item) (string, string) {
	if player == nil || player.Base().Data() == nil {
		return "", ""
	}
	title, _ := player.Base().Data().Get("title")
	state, _ := player.Base().Data().Get("state")
	return title, state
}

func init() {
	sessionsStopCmd.Flags().StringVar(&stopReason, "reason", "stopped by admin", "Reason shown to the viewer")
	SessionsCmd.AddCommand(sessionsStopCmd)
}
