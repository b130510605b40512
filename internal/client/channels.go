package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/rocketchat-client/internal/http"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// ChannelsClient implements rocketchat.ChannelsClient.
type ChannelsClient struct {
	httpClient *http.Client
}

// NewChannelsClient creates a new channels client.
func NewChannelsClient(httpClient *http.Client) *ChannelsClient {
	return &ChannelsClient{
		httpClient: httpClient,
	}
}

// List implements rocketchat.ChannelsClient.List.
func (c *ChannelsClient) List(ctx context.Context, opts *rocketchat.ListOptions) (*rocketchat.Pager[rocketchat.Channel], error) {
	return newPager[rocketchat.Channel](ctx, c.httpClient, "channels.list", "channels", nil, opts)
}

// ListJoined implements rocketchat.ChannelsClient.ListJoined.
func (c *ChannelsClient) ListJoined(ctx context.Context, opts *rocketchat.ListOptions) (*rocketchat.Pager[rocketchat.Channel], error) {
	return newPager[rocketchat.Channel](ctx, c.httpClient, "channels.list.joined", "channels", nil, opts)
}

// Info implements rocketchat.ChannelsClient.Info.
func (c *ChannelsClient) Info(ctx context.Context, room rocketchat.RoomSelector) (*rocketchat.ChannelResponse, error) {
	params, err := room.Params()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "channels.info", params)
	if err != nil {
		return nil, fmt.Errorf("getting channel: %w", err)
	}

	return decode[rocketchat.ChannelResponse](resp, "channel")
}

// History implements rocketchat.ChannelsClient.History.
func (c *ChannelsClient) History(ctx context.Context, roomID string, opts *rocketchat.ListOptions) (*rocketchat.Pager[rocketchat.Message], error) {
	return newPager[rocketchat.Message](ctx, c.httpClient, "channels.history", "messages", rocketchat.Params{"roomId": roomID}, opts)
}

// Members implements rocketchat.ChannelsClient.Members.
func (c *ChannelsClient) Members(ctx context.Context, room rocketchat.RoomSelector, opts *rocketchat.ListOptions) (*rocketchat.Pager[rocketchat.User], error) {
	params, err := room.Params()
	if err != nil {
		return nil, err
	}

	return newPager[rocketchat.User](ctx, c.httpClient, "channels.members", "members", params, opts)
}

// Create implements rocketchat.ChannelsClient.Create.
func (c *ChannelsClient) Create(ctx context.Context, name string, opts *rocketchat.CreateRoomOptions) (*rocketchat.ChannelResponse, error) {
	params, err := opts.Params()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "channels.create", rocketchat.Params{"name": name}.With(params))
	if err != nil {
		return nil, fmt.Errorf("creating channel: %w", err)
	}

	return decode[rocketchat.ChannelResponse](resp, "channel")
}

// Delete implements rocketchat.ChannelsClient.Delete.
func (c *ChannelsClient) Delete(ctx context.Context, room rocketchat.RoomSelector) error {
	params, err := room.Params()
	if err != nil {
		return err
	}

	_, err = c.httpClient.Post(ctx, "channels.delete", params)
	if err != nil {
		return fmt.Errorf("deleting channel: %w", err)
	}

	return nil
}

// SetTopic implements rocketchat.ChannelsClient.SetTopic.
func (c *ChannelsClient) SetTopic(ctx context.Context, roomID, topic string) error {
	_, err := c.httpClient.Post(ctx, "channels.setTopic", rocketchat.Params{"roomId": roomID, "topic": topic})
	if err != nil {
		return fmt.Errorf("setting channel topic: %w", err)
	}

	return nil
}
