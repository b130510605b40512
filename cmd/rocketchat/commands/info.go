package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ServerInfo is the output of the info command.
type ServerInfo struct {
	Server  string `json:"server"            yaml:"server"`
	Version string `json:"version"           yaml:"version"`
	Major   uint64 `json:"major,omitempty"   yaml:"major,omitempty"`
	Minor   uint64 `json:"minor,omitempty"   yaml:"minor,omitempty"`
	Patch   uint64 `json:"patch,omitempty"   yaml:"patch,omitempty"`
	User    string `json:"user,omitempty"    yaml:"user,omitempty"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display server information",
		Long:  "Display the version of the Rocket.Chat server and the logged in user, if any",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newClient(cmd, v)
			if err != nil {
				return err
			}

			info, err := rc.Info(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get server info: %w", err)
			}

			serverInfo := ServerInfo{
				Server:  v.GetString(keyServer),
				Version: info.Version,
			}

			// Development builds report versions that are not semver.
			version, err := info.Semver()
			if err == nil {
				serverInfo.Major = version.Major()
				serverInfo.Minor = version.Minor()
				serverInfo.Patch = version.Patch()
			}

			if rc.Authenticated() {
				me, err := rc.Me(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to get current user: %w", err)
				}

				serverInfo.User = me.Username
			}

			return render(cmd, v, serverInfo, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Server", serverInfo.Server)
				_ = table.Append("Version", valueOr(serverInfo.Version))

				if version != nil {
					_ = table.Append("Release", fmt.Sprintf("%d.%d", serverInfo.Major, serverInfo.Minor))
				}

				_ = table.Append("User", valueOr(serverInfo.User))
			})
		},
	}
}
