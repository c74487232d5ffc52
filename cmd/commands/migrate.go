package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhu-hockey/nhu-app/internal/adapters/database/cache"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the local cache schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := settings.Service.Cache
			db, err := cache.Open(cache.Options{
				Driver:   c.Driver,
				Path:     c.Path,
				Host:     c.Host,
				Port:     c.Port,
				User:     c.User,
				Password: c.Password,
				Name:     c.Name,
				Debug:    settings.Settings.Debug,
			})
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Cache schema is up to date (%d tables)\n", len(cache.Migrations))
			return nil
		},
	}
}
