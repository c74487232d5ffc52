package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nhu-hockey/nhu-app/cmd/app"
	"github.com/nhu-hockey/nhu-app/internal/adapters/config"
)

var (
	configPath string
	settings   *config.Settings
)

func Execute() error {
	root := &cobra.Command{
		Use:          "nhu",
		Short:        "Namibia Hockey Union data service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			settings, err = config.Load(configPath)
			return err
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml)")

	root.AddCommand(
		serveCmd(),
		migrateCmd(),
		syncCmd(),
		deeplinkCmd(),
		exportRosterCmd(),
		calendarCmd(),
		shareCmd(),
		usersCmd(),
	)
	return root.Execute()
}

// withApp connects every backend, runs fn and closes the connections afterwards.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	a, err := app.New(ctx, settings)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
