package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nhu-hockey/nhu-app/cmd/app"
	"github.com/nhu-hockey/nhu-app/internal/domain/dto"
)

func usersCmd() *cobra.Command {
	var (
		page  int
		size  int
		order string
	)
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List cached users page by page",
		RunE: func(cmd *cobra.Command, args []string) error {
			if size == 0 {
				size = settings.Settings.PageSize
			}
			return withApp(cmd.Context(), func(a *app.App) error {
				users, err := a.Users.GetPage(cmd.Context(), page, size, dto.UserOrder(order))
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
				for _, u := range users {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.FullName(), u.Email, u.Role, u.IsActive)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 0, "page number, starting at 0")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "users per page (default settings.page-size)")
	cmd.Flags().StringVar(&order, "order", string(dto.UserOrderName), "sort order: name, email or newest")
	return cmd
}
