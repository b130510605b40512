package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/rocketchat-client/internal/auth"
	"github.com/fivetwenty-io/rocketchat-client/internal/client"
	"github.com/fivetwenty-io/rocketchat-client/internal/constants"
	"github.com/fivetwenty-io/rocketchat-client/internal/logging"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rcclient"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// Configuration keys.
const (
	keyConfig   = "config"
	keyEnvFile  = "env_file"
	keyServer   = "server"
	keyUser     = "user"
	keyPassword = "password"
	keyToken    = "auth_token"
	keyUserID   = "user_id"
	keyOutput   = "output"
	keyVerbose  = "verbose"
	keySkipSSL  = "skip_ssl_validation"
	keyTimeout  = "timeout"
	keyProxy    = "proxy"
	keyLog      = "log"
)

const (
	configDirName  = ".rocketchat"
	configFileName = "config.yml"
	cliUserAgent   = "rocketchat-cli"
)

// Static errors.
var (
	ErrServerRequired   = errors.New("server URL is required (use --server or ROCKETCHAT_SERVER)")
	ErrUserRequired     = errors.New("username is required")
	ErrNotAuthenticated = errors.New("not logged in (run 'rocketchat login')")
)

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, configDirName), nil
}

// configFilePath returns the file in use, or the default location when no
// file was found.
func configFilePath(v *viper.Viper) (string, error) {
	if used := v.ConfigFileUsed(); used != "" {
		return used, nil
	}

	dir, err := configDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, configFileName), nil
}

// saveConfigValues writes values into the config file, keeping every other
// key as it is. Empty strings remove the key. Only the file content is
// written: flags and environment variables never end up on disk.
func saveConfigValues(v *viper.Viper, values map[string]string) error {
	path, err := configFilePath(v)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data := map[string]interface{}{}

	// path comes from the --config flag or the user's home directory
	// #nosec G304
	raw, err := os.ReadFile(path)

	switch {
	case err == nil:
		err = yaml.Unmarshal(raw, &data)
		if err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if data == nil {
		data = map[string]interface{}{}
	}

	for key, value := range values {
		if value == "" {
			delete(data, key)
		} else {
			data[key] = value
		}

		v.Set(key, value)
	}

	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, out, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ConfigPersister stores the session issued by login in the config file.
type ConfigPersister struct {
	mutex sync.Mutex
	v     *viper.Viper
}

var _ auth.SessionPersister = (*ConfigPersister)(nil)

// NewConfigPersister creates a persister writing through v.
func NewConfigPersister(v *viper.Viper) *ConfigPersister {
	return &ConfigPersister{v: v}
}

// SaveSession implements auth.SessionPersister.
func (p *ConfigPersister) SaveSession(authToken, userID string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return saveConfigValues(p.v, map[string]string{
		keyToken:  authToken,
		keyUserID: userID,
	})
}

// clientConfig builds the client configuration from flags, environment and
// config file. The password is only used together with a username.
func clientConfig(cmd *cobra.Command, v *viper.Viper) (*rocketchat.Config, error) {
	server := v.GetString(keyServer)
	if server == "" {
		return nil, ErrServerRequired
	}

	logConfig := logging.Config{Level: "info"}

	err := v.UnmarshalKey(keyLog, &logConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid log settings: %w", err)
	}

	if v.GetBool(keyVerbose) {
		logConfig.Level = "debug"
	}

	config := &rocketchat.Config{
		ServerURL:     rcclient.NormalizeServerURL(server),
		AuthToken:     v.GetString(keyToken),
		UserID:        v.GetString(keyUserID),
		SkipTLSVerify: v.GetBool(keySkipSSL),
		ProxyURL:      v.GetString(keyProxy),
		Timeout:       v.GetDuration(keyTimeout),
		UserAgent:     cliUserAgent,
		Debug:         v.GetBool(keyVerbose),
		Logger:        logging.NewAdapter(logging.New(logConfig, cmd.ErrOrStderr())),
	}

	user, password := v.GetString(keyUser), v.GetString(keyPassword)
	if user != "" && password != "" {
		config.Username = user
		config.Password = password
	}

	return config, nil
}

// newClient creates a client whose session changes are saved to the config
// file.
func newClient(cmd *cobra.Command, v *viper.Viper) (*client.Client, error) {
	config, err := clientConfig(cmd, v)
	if err != nil {
		return nil, err
	}

	session := auth.NewSession(config.AuthToken, config.UserID).WithPersister(NewConfigPersister(v))

	rc, err := client.NewWithSession(cmd.Context(), config, session)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return rc, nil
}
