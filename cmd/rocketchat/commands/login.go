package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand(v *viper.Viper) *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Rocket.Chat",
		Long: `Authenticate with a username or email address and a password.

The issued session token is stored in the config file; the password is not.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())

			if username == "" {
				username = v.GetString(keyUser)
			}

			if username == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				username = readLine(reader)
			}

			if username == "" {
				return ErrUserRequired
			}

			if password == "" {
				password = v.GetString(keyPassword)
			}

			if password == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Password: ")

				entered, err := readPassword(reader)
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				password = entered
			}

			// Credentials from the environment would log in during construction.
			v.Set(keyUser, "")
			v.Set(keyPassword, "")

			rc, err := newClient(cmd, v)
			if err != nil {
				return err
			}

			login, err := rc.Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			err = saveConfigValues(v, map[string]string{keyServer: v.GetString(keyServer)})
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully logged in to %s\n", v.GetString(keyServer))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "User ID: %s\n", login.Data.UserID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username or email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Rocket.Chat",
		Long:  "Invalidate the session token on the server and remove it from the config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newClient(cmd, v)
			if err != nil {
				return err
			}

			if !rc.Authenticated() {
				return ErrNotAuthenticated
			}

			err = rc.Logout(cmd.Context())
			if err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")

			return nil
		},
	}
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')

	return strings.TrimSpace(line)
}

// readPassword reads without echo from a terminal, or a plain line otherwise.
func readPassword(reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int
	if term.IsTerminal(fd) {
		bytePassword, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}

		return string(bytePassword), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSpace(line), nil
}
