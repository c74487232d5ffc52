package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhu-hockey/nhu-app/cmd/app"
)

func exportRosterCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export-roster <teamId>",
		Short: "Write a team's roster to an xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				buf, err := a.Teams.ExportRoster(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if output == "" {
					output = fmt.Sprintf("roster-%s.xlsx", args[0])
				}
				if err = os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Roster written to %s\n", output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default roster-<teamId>.xlsx)")
	return cmd
}

func calendarCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "calendar [teamId]",
		Short: "Export events as iCalendar, all of them or one team's",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var teamID string
			if len(args) == 1 {
				teamID = args[0]
			}
			return withApp(cmd.Context(), func(a *app.App) error {
				data, err := a.Events.ExportCalendar(cmd.Context(), teamID)
				if err != nil {
					return err
				}
				if output == "" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				return os.WriteFile(output, data, 0o644)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
