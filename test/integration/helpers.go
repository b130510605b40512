//go:build integration

// Package integration runs workflows against a live Rocket.Chat server.
package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/rocketchat-client/internal/logging"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rcclient"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Server   string
	User     string
	Password string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Server:   os.Getenv("ROCKETCHAT_TEST_SERVER"),
		User:     os.Getenv("ROCKETCHAT_TEST_USER"),
		Password: os.Getenv("ROCKETCHAT_TEST_PASSWORD"),
		Verbose:  os.Getenv("ROCKETCHAT_TEST_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips the test unless a server and admin credentials
// are configured.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Server == "" {
		t.Skip("ROCKETCHAT_TEST_SERVER not set, skipping integration test")
	}

	if config.User == "" || config.Password == "" {
		t.Skip("ROCKETCHAT_TEST_USER or ROCKETCHAT_TEST_PASSWORD not set, skipping integration test")
	}
}

// NewClient logs in as the configured admin user.
func (config *TestConfig) NewClient(t *testing.T) rocketchat.Client {
	t.Helper()

	rcConfig := &rocketchat.Config{
		ServerURL: config.Server,
		Username:  config.User,
		Password:  config.Password,
	}

	if config.Verbose {
		rcConfig.Debug = true
		rcConfig.Logger = logging.NewAdapter(logging.New(logging.Config{Level: "debug"}, os.Stderr))
	}

	client, err := rcclient.New(context.Background(), rcConfig)
	require.NoError(t, err)

	return client
}

// GenerateTestName returns a unique name with the given prefix.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
