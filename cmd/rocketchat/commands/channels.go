package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// NewChannelsCommand creates the channels command group.
func NewChannelsCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "channels",
		Aliases: []string{"channel", "ch"},
		Short:   "Manage public channels",
		Long:    "List and inspect Rocket.Chat public channels",
	}

	cmd.AddCommand(newChannelsListCommand(v))
	cmd.AddCommand(newChannelsInfoCommand(v))

	return cmd
}

func newChannelsListCommand(v *viper.Viper) *cobra.Command {
	var (
		joined bool
		list   listFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List channels",
		Long:  "List all public channels, or only the joined ones with --joined",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newClient(cmd, v)
			if err != nil {
				return err
			}

			listChannels := rc.Channels().List
			if joined {
				listChannels = rc.Channels().ListJoined
			}

			pager, err := listChannels(cmd.Context(), list.options())
			if err != nil {
				return fmt.Errorf("failed to list channels: %w", err)
			}

			channels, err := pager.All()
			if err != nil {
				return fmt.Errorf("failed to list channels: %w", err)
			}

			return render(cmd, v, channels, func(table *tablewriter.Table) {
				table.Header("ID", "Name", "Messages", "Topic")

				for _, channel := range channels {
					_ = table.Append(channel.ID, channel.Name, fmt.Sprintf("%d", channel.Messages), valueOr(channel.Topic))
				}
			})
		},
	}

	cmd.Flags().BoolVar(&joined, "joined", false, "only list channels the user has joined")
	list.register(cmd)

	return cmd
}

func newChannelsInfoCommand(v *viper.Viper) *cobra.Command {
	var byID bool

	cmd := &cobra.Command{
		Use:   "info CHANNEL",
		Short: "Show channel details",
		Long:  "Display a channel looked up by name, or by id with --id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newClient(cmd, v)
			if err != nil {
				return err
			}

			room := rocketchat.RoomByName(args[0])
			if byID {
				room = rocketchat.RoomByID(args[0])
			}

			resp, err := rc.Channels().Info(cmd.Context(), room)
			if err != nil {
				return fmt.Errorf("failed to get channel: %w", err)
			}

			channel := resp.Channel

			return render(cmd, v, channel, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", channel.ID)
				_ = table.Append("Name", channel.Name)
				_ = table.Append("Topic", valueOr(channel.Topic))
				_ = table.Append("Messages", fmt.Sprintf("%d", channel.Messages))
				_ = table.Append("Read only", fmt.Sprintf("%t", channel.ReadOnly))
			})
		},
	}

	cmd.Flags().BoolVar(&byID, "id", false, "treat CHANNEL as a room id")

	return cmd
}

// listFlags are the pagination and filter flags shared by list commands.
type listFlags struct {
	offset   int
	count    int
	maxCount int
	sort     string
	query    string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.offset, "offset", 0, "number of items to skip")
	cmd.Flags().IntVar(&f.count, "count", rocketchat.DefaultPageSize, "page size")
	cmd.Flags().IntVar(&f.maxCount, "max-count", 0, "maximum number of items to list (0 for all)")
	cmd.Flags().StringVar(&f.sort, "sort", "", `sort order as JSON, e.g. '{"name": 1}'`)
	cmd.Flags().StringVar(&f.query, "query", "", "filter as JSON")
}

func (f *listFlags) options() *rocketchat.ListOptions {
	opts := &rocketchat.ListOptions{
		Pagination: rocketchat.PaginationOptions{
			Offset: f.offset,
			Count:  f.count,
		},
		Sort:  f.sort,
		Query: f.query,
	}

	if f.maxCount > 0 {
		opts.Pagination.MaxCount = rocketchat.Int(f.maxCount)
	}

	return opts
}
