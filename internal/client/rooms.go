package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/rocketchat-client/internal/http"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// RoomsClient implements rocketchat.RoomsClient.
type RoomsClient struct {
	httpClient *http.Client
}

// NewRoomsClient creates a new rooms client.
func NewRoomsClient(httpClient *http.Client) *RoomsClient {
	return &RoomsClient{
		httpClient: httpClient,
	}
}

// Info implements rocketchat.RoomsClient.Info.
func (c *RoomsClient) Info(ctx context.Context, room rocketchat.RoomSelector) (*rocketchat.RoomResponse, error) {
	params, err := room.Params()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "rooms.info", params)
	if err != nil {
		return nil, fmt.Errorf("getting room: %w", err)
	}

	return decode[rocketchat.RoomResponse](resp, "room")
}

// Upload implements rocketchat.RoomsClient.Upload. The file is sent as the
// "file" part of a multipart form; extra carries fields such as msg and
// description.
func (c *RoomsClient) Upload(ctx context.Context, roomID string, file rocketchat.File, extra rocketchat.Params) (*rocketchat.MessageResponse, error) {
	if file.Field == "" {
		file.Field = "file"
	}

	resp, err := c.httpClient.Do(ctx, &rocketchat.Request{
		Method:   "POST",
		Endpoint: "rooms.upload/" + roomID,
		Extra:    extra,
		Files:    []rocketchat.File{file},
		Encoding: rocketchat.EncodingForm,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading file: %w", err)
	}

	return decode[rocketchat.MessageResponse](resp, "upload")
}
