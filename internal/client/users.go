package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/rocketchat-client/internal/http"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// UsersClient implements rocketchat.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// List implements rocketchat.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, opts *rocketchat.ListOptions) (*rocketchat.Pager[rocketchat.User], error) {
	return newPager[rocketchat.User](ctx, c.httpClient, "users.list", "users", nil, opts)
}

// Info implements rocketchat.UsersClient.Info.
func (c *UsersClient) Info(ctx context.Context, user rocketchat.UserSelector) (*rocketchat.UserResponse, error) {
	params, err := user.Params()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "users.info", params)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return decode[rocketchat.UserResponse](resp, "user")
}

// Create implements rocketchat.UsersClient.Create. It needs the create-user
// permission; the password is sent under its own name.
func (c *UsersClient) Create(ctx context.Context, user *rocketchat.NewUser) (*rocketchat.UserResponse, error) {
	return c.submit(ctx, "users.create", user)
}

// Register implements rocketchat.UsersClient.Register.
func (c *UsersClient) Register(ctx context.Context, user *rocketchat.NewUser) (*rocketchat.UserResponse, error) {
	return c.submit(ctx, "users.register", user)
}

func (c *UsersClient) submit(ctx context.Context, endpoint string, user *rocketchat.NewUser) (*rocketchat.UserResponse, error) {
	params, err := user.Params()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("submitting %s: %w", endpoint, err)
	}

	return decode[rocketchat.UserResponse](resp, "user")
}

// SetAvatar implements rocketchat.UsersClient.SetAvatar. An http(s) URL is
// sent as avatarUrl; anything else is read as a local file and uploaded.
func (c *UsersClient) SetAvatar(ctx context.Context, avatar string, extra rocketchat.Params) error {
	if strings.HasPrefix(avatar, "http://") || strings.HasPrefix(avatar, "https://") {
		_, err := c.httpClient.Post(ctx, "users.setAvatar", rocketchat.Params{"avatarUrl": avatar}.With(extra))
		if err != nil {
			return fmt.Errorf("setting avatar: %w", err)
		}

		return nil
	}

	file, err := os.Open(filepath.Clean(avatar))
	if err != nil {
		return fmt.Errorf("opening avatar: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	return c.upload(ctx, filepath.Base(avatar), mime.TypeByExtension(filepath.Ext(avatar)), file, extra)
}

// SetAvatarFile implements rocketchat.UsersClient.SetAvatarFile.
func (c *UsersClient) SetAvatarFile(ctx context.Context, name string, content io.Reader, extra rocketchat.Params) error {
	return c.upload(ctx, name, "", content, extra)
}

func (c *UsersClient) upload(ctx context.Context, name, contentType string, content io.Reader, extra rocketchat.Params) error {
	_, err := c.httpClient.Do(ctx, &rocketchat.Request{
		Method:   "POST",
		Endpoint: "users.setAvatar",
		Extra:    extra,
		Files: []rocketchat.File{{
			Field:       "image",
			Name:        name,
			Content:     content,
			ContentType: contentType,
		}},
	})
	if err != nil {
		return fmt.Errorf("uploading avatar: %w", err)
	}

	return nil
}

// Delete implements rocketchat.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, userID string) error {
	_, err := c.httpClient.Post(ctx, "users.delete", rocketchat.Params{"userId": userID})
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}
