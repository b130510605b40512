package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// NewChatCommand creates the chat command group.
func NewChatCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send messages",
		Long:  "Post messages to channels, groups and direct message rooms",
	}

	cmd.AddCommand(newChatPostCommand(v))

	return cmd
}

func newChatPostCommand(v *viper.Viper) *cobra.Command {
	var (
		channel string
		roomID  string
		alias   string
		emoji   string
	)

	cmd := &cobra.Command{
		Use:   "post TEXT...",
		Short: "Post a message",
		Long: `Post a message to a room given by --channel (#channel or @user) or --room-id.

Escaped control sequences such as \n in TEXT are sent as the characters themselves.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newClient(cmd, v)
			if err != nil {
				return err
			}

			resp, err := rc.Chat().PostMessage(cmd.Context(), &rocketchat.PostMessage{
				Text:    strings.Join(args, " "),
				RoomID:  roomID,
				Channel: channel,
				Alias:   alias,
				Emoji:   emoji,
			})
			if err != nil {
				return fmt.Errorf("failed to post message: %w", err)
			}

			message := resp.Message

			return render(cmd, v, message, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", message.ID)
				_ = table.Append("Room", message.RoomID)
				_ = table.Append("Text", message.Text)
			})
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "channel name (#general) or user (@alice)")
	cmd.Flags().StringVar(&roomID, "room-id", "", "room id")
	cmd.Flags().StringVar(&alias, "alias", "", "display name of the sender")
	cmd.Flags().StringVar(&emoji, "emoji", "", "avatar emoji, e.g. :smile:")

	return cmd
}
