package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhu-hockey/nhu-app/cmd/app"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/deeplink"
)

func shareCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:       "share-qr <events|teams|news> <id>",
		Short:     "Write a PNG share code opening an event, team or article",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(deeplink.KindEvent), string(deeplink.KindTeam), string(deeplink.KindNews)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id := deeplink.Kind(args[0]), args[1]
			return withApp(cmd.Context(), func(a *app.App) error {
				data, err := a.Qr.ShareCode(cmd.Context(), kind, id)
				if err != nil {
					return err
				}
				if output == "" {
					output = fmt.Sprintf("%s-%s.png", kind, id)
				}
				if err = os.WriteFile(output, data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Share code written to %s\n", output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <kind>-<id>.png)")
	return cmd
}
