package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/rocketchat-client/internal/http"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// GroupsClient implements rocketchat.GroupsClient.
type GroupsClient struct {
	httpClient *http.Client
}

// NewGroupsClient creates a new private groups client.
func NewGroupsClient(httpClient *http.Client) *GroupsClient {
	return &GroupsClient{
		httpClient: httpClient,
	}
}

// List implements rocketchat.GroupsClient.List.
func (c *GroupsClient) List(ctx context.Context, opts *rocketchat.ListOptions) (*rocketchat.Pager[rocketchat.Group], error) {
	return newPager[rocketchat.Group](ctx, c.httpClient, "groups.list", "groups", nil, opts)
}

// ListAll implements rocketchat.GroupsClient.ListAll. It requires the
// view-room-administration permission.
func (c *GroupsClient) ListAll(ctx context.Context, opts *rocketchat.ListOptions) (*rocketchat.Pager[rocketchat.Group], error) {
	return newPager[rocketchat.Group](ctx, c.httpClient, "groups.listAll", "groups", nil, opts)
}

// Info implements rocketchat.GroupsClient.Info.
func (c *GroupsClient) Info(ctx context.Context, room rocketchat.RoomSelector) (*rocketchat.GroupResponse, error) {
	params, err := room.Params()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "groups.info", params)
	if err != nil {
		return nil, fmt.Errorf("getting group: %w", err)
	}

	return decode[rocketchat.GroupResponse](resp, "group")
}

// Create implements rocketchat.GroupsClient.Create.
func (c *GroupsClient) Create(ctx context.Context, name string, opts *rocketchat.CreateRoomOptions) (*rocketchat.GroupResponse, error) {
	params, err := opts.Params()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "groups.create", rocketchat.Params{"name": name}.With(params))
	if err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	return decode[rocketchat.GroupResponse](resp, "group")
}
