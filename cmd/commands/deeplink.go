package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhu-hockey/nhu-app/internal/domain/utils/deeplink"
)

func deeplinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deeplink <url>",
		Short: "Print the app route a shared link opens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := deeplink.Resolve(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), target.Path())
			return nil
		},
	}
}
