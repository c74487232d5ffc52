package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhu-hockey/nhu-app/cmd/app"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local cache from the remote store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				stats, err := a.Sync.Sync(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Synced %d events, %d teams, %d players, %d users\n",
					stats.Events, stats.Teams, stats.Players, stats.Users)
				return nil
			})
		},
	}
}
