// Package rcclient provides the main entry point for creating Rocket.Chat REST API clients
package rcclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/rocketchat-client/internal/client"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// New creates a new Rocket.Chat client. The server URL is normalized first:
// a trailing slash is dropped and "https://" is assumed when no scheme is given.
// config itself is not modified.
func New(ctx context.Context, config *rocketchat.Config) (rocketchat.Client, error) {
	if config == nil {
		return nil, rocketchat.ErrConfigRequired
	}

	if config.ServerURL == "" {
		return nil, rocketchat.ErrServerURLRequired
	}

	normalized := *config
	normalized.ServerURL = NormalizeServerURL(config.ServerURL)

	rc, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return rc, nil
}

// NormalizeServerURL trims a trailing slash and prefixes "https://" when
// serverURL has no http or https scheme.
func NormalizeServerURL(serverURL string) string {
	serverURL = strings.TrimSuffix(serverURL, "/")
	if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
		serverURL = "https://" + serverURL
	}

	return serverURL
}

// NewWithServer creates a new anonymous client.
func NewWithServer(ctx context.Context, serverURL string) (rocketchat.Client, error) {
	return New(ctx, &rocketchat.Config{
		ServerURL: serverURL,
	})
}

// NewWithToken creates a new client from a previously issued session.
func NewWithToken(ctx context.Context, serverURL, authToken, userID string) (rocketchat.Client, error) {
	return New(ctx, &rocketchat.Config{
		ServerURL: serverURL,
		AuthToken: authToken,
		UserID:    userID,
	})
}

// NewWithPassword creates a new client and logs in with a username or email
// address and a password.
func NewWithPassword(ctx context.Context, serverURL, user, password string) (rocketchat.Client, error) {
	return New(ctx, &rocketchat.Config{
		ServerURL: serverURL,
		Username:  user,
		Password:  password,
	})
}
