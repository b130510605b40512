package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user", "u"},
		Short:   "Manage users",
		Long:    "List Rocket.Chat users",
	}

	cmd.AddCommand(newUsersListCommand(v))

	return cmd
}

func newUsersListCommand(v *viper.Viper) *cobra.Command {
	var list listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "List users visible to the logged in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newClient(cmd, v)
			if err != nil {
				return err
			}

			pager, err := rc.Users().List(cmd.Context(), list.options())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			users, err := pager.All()
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return render(cmd, v, users, func(table *tablewriter.Table) {
				table.Header("ID", "Username", "Name", "Status", "Active")

				for _, user := range users {
					_ = table.Append(user.ID, user.Username, valueOr(user.Name), valueOr(user.Status), fmt.Sprintf("%t", user.Active))
				}
			})
		},
	}

	list.register(cmd)

	return cmd
}
