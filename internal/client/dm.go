package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/rocketchat-client/internal/http"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// DMClient implements rocketchat.DMClient.
type DMClient struct {
	httpClient *http.Client
}

// NewDMClient creates a new direct messages client.
func NewDMClient(httpClient *http.Client) *DMClient {
	return &DMClient{
		httpClient: httpClient,
	}
}

// List implements rocketchat.DMClient.List.
func (c *DMClient) List(ctx context.Context, opts *rocketchat.ListOptions) (*rocketchat.Pager[rocketchat.IM], error) {
	return newPager[rocketchat.IM](ctx, c.httpClient, "dm.list", "ims", nil, opts)
}

// History implements rocketchat.DMClient.History.
func (c *DMClient) History(ctx context.Context, roomID string, opts *rocketchat.ListOptions) (*rocketchat.Pager[rocketchat.Message], error) {
	return newPager[rocketchat.Message](ctx, c.httpClient, "dm.history", "messages", rocketchat.Params{"roomId": roomID}, opts)
}

// Create implements rocketchat.DMClient.Create.
func (c *DMClient) Create(ctx context.Context, username string) (*rocketchat.RoomResponse, error) {
	resp, err := c.httpClient.Post(ctx, "dm.create", rocketchat.Params{"username": username})
	if err != nil {
		return nil, fmt.Errorf("creating direct message: %w", err)
	}

	return decode[rocketchat.RoomResponse](resp, "room")
}
