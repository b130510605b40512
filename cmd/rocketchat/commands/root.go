package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by the CLI, e.g.
// ROCKETCHAT_SERVER.
const EnvPrefix = "ROCKETCHAT"

// NewRootCommand builds the rocketchat command tree. Settings are resolved
// through v: flags first, then the environment, the config file and finally
// the .env file.
func NewRootCommand(v *viper.Viper, version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rocketchat",
		Short: "Rocket.Chat REST API CLI",
		Long: `A command-line interface for the Rocket.Chat REST API.

Log in once with 'rocketchat login'; the session token is stored in the
config file and reused by later commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.rocketchat/config.yml)")
	flags.String("env-file", ".env", "dotenv file providing ROCKETCHAT_* defaults")
	flags.StringP("server", "s", "", "server URL")
	flags.String("auth-token", "", "session token")
	flags.String("user-id", "", "id of the session user")
	flags.StringP("output", "o", "table", "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log HTTP requests and responses")
	flags.Bool("skip-ssl-validation", false, "skip SSL certificate validation")
	flags.Duration("timeout", 0, "request timeout (default 30s)")

	bindings := map[string]string{
		keyConfig:  "config",
		keyEnvFile: "env-file",
		keyServer:  "server",
		keyToken:   "auth-token",
		keyUserID:  "user-id",
		keyOutput:  "output",
		keyVerbose: "verbose",
		keySkipSSL: "skip-ssl-validation",
		keyTimeout: "timeout",
	}

	for key, flag := range bindings {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(NewVersionCommand(v, version, commit, date))
	rootCmd.AddCommand(NewInfoCommand(v))
	rootCmd.AddCommand(NewLoginCommand(v))
	rootCmd.AddCommand(NewLogoutCommand(v))
	rootCmd.AddCommand(NewChannelsCommand(v))
	rootCmd.AddCommand(NewUsersCommand(v))
	rootCmd.AddCommand(NewChatCommand(v))

	return rootCmd
}

func initConfig(v *viper.Viper) error {
	err := loadEnvFile(v, v.GetString(keyEnvFile))
	if err != nil {
		return err
	}

	cfgFile := v.GetString(keyConfig)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}

		v.AddConfigPath(dir)
		v.SetConfigType("yml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	return nil
}

// loadEnvFile registers the ROCKETCHAT_* entries of a dotenv file as
// defaults. A missing file is ignored.
func loadEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("reading %s: %w", path, err)
	}

	for name, value := range values {
		key, ok := strings.CutPrefix(name, EnvPrefix+"_")
		if !ok {
			continue
		}

		v.SetDefault(strings.ToLower(key), value)
	}

	return nil
}
