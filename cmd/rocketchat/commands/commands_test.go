package commands

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// execute runs the command tree with a fresh viper instance against
// configFile and returns what was written to stdout.
func execute(t *testing.T, configFile string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand(viper.New(), "1.2.3", "abc123", "2026-01-01")

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--config", configFile, "--env-file", ""}, args...))

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

// writeConfig creates a config file holding values.
func writeConfig(t *testing.T, values map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")

	data, err := yaml.Marshal(values)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func readConfig(t *testing.T, path string) map[string]interface{} {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	data := map[string]interface{}{}
	require.NoError(t, yaml.Unmarshal(raw, &data))

	return data
}

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(viper.New(), "dev", "none", "unknown")
	assert.Equal(t, "rocketchat", root.Use)

	for _, name := range []string{"version", "info", "login", "logout", "channels", "users", "chat"} {
		assert.NotNil(t, findSubcommand(root, name), "command %s should exist", name)
	}

	for _, flag := range []string{"config", "env-file", "server", "auth-token", "user-id", "output", "verbose", "skip-ssl-validation", "timeout"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %s should exist", flag)
	}

	channels := findSubcommand(root, "channels")
	require.NotNil(t, channels)
	assert.NotNil(t, findSubcommand(channels, "list"))
	assert.NotNil(t, findSubcommand(channels, "info"))
	assert.Equal(t, []string{"channel", "ch"}, channels.Aliases)

	list := findSubcommand(channels, "list")
	for _, flag := range []string{"joined", "offset", "count", "max-count", "sort", "query"} {
		assert.NotNil(t, list.Flags().Lookup(flag), "flag %s should exist", flag)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	configFile := writeConfig(t, map[string]string{})

	out, err := execute(t, configFile, "version", "--output", "json")
	require.NoError(t, err)

	var info map[string]string

	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, map[string]string{"version": "1.2.3", "commit": "abc123", "built": "2026-01-01"}, info)

	out, err = execute(t, configFile, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}

func TestInfoCommand(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/info", request.URL.Path)
		assert.Equal(t, "rocketchat-cli", request.Header.Get("User-Agent"))
		_, _ = writer.Write([]byte(`{"success": true, "version": "6.5.2"}`))
	}))
	defer server.Close()

	configFile := writeConfig(t, map[string]string{"server": server.URL})

	out, err := execute(t, configFile, "info", "--output", "yaml")
	require.NoError(t, err)

	var info ServerInfo

	require.NoError(t, yaml.Unmarshal([]byte(out), &info))
	assert.Equal(t, "6.5.2", info.Version)
	assert.Equal(t, uint64(6), info.Major)
	assert.Equal(t, uint64(5), info.Minor)
	assert.Empty(t, info.User)

	out, err = execute(t, configFile, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "6.5")
	assert.Contains(t, out, "N/A")
}

func TestCommandsRequireServer(t *testing.T) {
	t.Parallel()

	configFile := writeConfig(t, map[string]string{})

	_, err := execute(t, configFile, "info")
	require.ErrorIs(t, err, ErrServerRequired)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestLoginLogoutCommands(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/v1/login":
			var body map[string]interface{}

			assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, map[string]interface{}{"username": "bot", "password": "secret"}, body)
			_, _ = writer.Write([]byte(`{"status": "success", "data": {"authToken": "issued-token", "userId": "issued-user"}}`))
		case "/api/v1/logout":
			assert.Equal(t, "issued-token", request.Header.Get("X-Auth-Token"))
			assert.Equal(t, "issued-user", request.Header.Get("X-User-Id"))
			_, _ = writer.Write([]byte(`{"status": "success"}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	configFile := writeConfig(t, map[string]string{"output": "json"})

	out, err := execute(t, configFile, "login", "--server", server.URL, "-u", "bot", "-p", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully logged in")
	assert.Contains(t, out, "issued-user")

	saved := readConfig(t, configFile)
	assert.Equal(t, "issued-token", saved["auth_token"])
	assert.Equal(t, "issued-user", saved["user_id"])
	assert.Equal(t, server.URL, saved["server"])
	assert.Equal(t, "json", saved["output"])
	assert.NotContains(t, saved, "password")

	out, err = execute(t, configFile, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully logged out")

	saved = readConfig(t, configFile)
	assert.NotContains(t, saved, "auth_token")
	assert.NotContains(t, saved, "user_id")
	assert.Equal(t, server.URL, saved["server"])

	_, err = execute(t, configFile, "logout")
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLoginCommandRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"status": "error", "message": "Unauthorized"}`))
	}))
	defer server.Close()

	configFile := writeConfig(t, map[string]string{"server": server.URL, "auth_token": "old", "user_id": "old-user"})

	_, err := execute(t, configFile, "login", "-u", "bot", "-p", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")

	saved := readConfig(t, configFile)
	assert.Equal(t, "old", saved["auth_token"])
}

func TestLoginCommandPromptsForUser(t *testing.T) {
	t.Parallel()

	configFile := writeConfig(t, map[string]string{"server": "https://chat.example.com"})

	_, err := execute(t, configFile, "login")
	require.ErrorIs(t, err, ErrUserRequired)
}

func pageHandler(t *testing.T, path, listKey string, items []map[string]interface{}) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, path, request.URL.Path)
		assert.Equal(t, "token", request.Header.Get("X-Auth-Token"))
		assert.Equal(t, "user", request.Header.Get("X-User-Id"))

		var offset, count int

		_ = json.Unmarshal([]byte(request.URL.Query().Get("offset")), &offset)
		_ = json.Unmarshal([]byte(request.URL.Query().Get("count")), &count)

		page := []map[string]interface{}{}
		for i := offset; i < offset+count && i < len(items); i++ {
			page = append(page, items[i])
		}

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{"success": true, listKey: page})
	})
}

func TestChannelsListCommand(t *testing.T) {
	t.Parallel()

	items := []map[string]interface{}{}
	for _, name := range []string{"general", "random", "dev", "ops", "sales"} {
		items = append(items, map[string]interface{}{"_id": strings.ToUpper(name), "name": name, "t": "c", "msgs": 1})
	}

	server := httptest.NewServer(pageHandler(t, "/api/v1/channels.list", "channels", items))
	defer server.Close()

	configFile := writeConfig(t, map[string]string{"server": server.URL, "auth_token": "token", "user_id": "user"})

	out, err := execute(t, configFile, "channels", "list", "--count", "2", "--max-count", "3", "-o", "json")
	require.NoError(t, err)

	var channels []map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(out), &channels))
	require.Len(t, channels, 3)
	assert.Equal(t, "dev", channels[2]["name"])

	out, err = execute(t, configFile, "channels", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SALES")
}

func TestUsersListCommand(t *testing.T) {
	t.Parallel()

	items := []map[string]interface{}{
		{"_id": "u1", "username": "alice", "active": true},
		{"_id": "u2", "username": "bob", "active": false, "status": "away"},
	}

	server := httptest.NewServer(pageHandler(t, "/api/v1/users.list", "users", items))
	defer server.Close()

	configFile := writeConfig(t, map[string]string{"server": server.URL, "auth_token": "token", "user_id": "user"})

	out, err := execute(t, configFile, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "away")
}

func TestChatPostCommand(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/chat.postMessage", request.URL.Path)

		var body map[string]interface{}

		assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"channel": "#general", "text": "hello\nworld"}, body)
		_, _ = writer.Write([]byte(`{"success": true, "message": {"_id": "M1", "rid": "GENERAL", "msg": "hello\nworld"}}`))
	}))
	defer server.Close()

	configFile := writeConfig(t, map[string]string{"server": server.URL, "auth_token": "token", "user_id": "user"})

	out, err := execute(t, configFile, "chat", "post", "--channel", "#general", `hello\nworld`)
	require.NoError(t, err)
	assert.Contains(t, out, "M1")

	_, err = execute(t, configFile, "chat", "post", "orphan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roomId or channel required")
}

func TestLoadEnvFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ROCKETCHAT_SERVER=https://chat.example.com\nROCKETCHAT_AUTH_TOKEN=token\nOTHER=ignored\n"), 0o600))

	v := viper.New()
	require.NoError(t, loadEnvFile(v, path))
	assert.Equal(t, "https://chat.example.com", v.GetString(keyServer))
	assert.Equal(t, "token", v.GetString(keyToken))
	assert.False(t, v.IsSet("other"))

	require.NoError(t, loadEnvFile(viper.New(), filepath.Join(t.TempDir(), "missing.env")))
}

func TestClientConfig(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{}
	cmd.SetErr(io.Discard)

	v := viper.New()
	v.Set(keyServer, "chat.example.com/")
	v.Set(keyUser, "bot")
	v.Set(keyVerbose, true)

	config, err := clientConfig(cmd, v)
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com", config.ServerURL)
	assert.Empty(t, config.Username, "a username without password is not used")
	assert.True(t, config.Debug)
	assert.NotNil(t, config.Logger)

	v.Set(keyPassword, "secret")

	config, err = clientConfig(cmd, v)
	require.NoError(t, err)
	assert.Equal(t, "bot", config.Username)
	assert.Equal(t, "secret", config.Password)
}
