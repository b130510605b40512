package client

import (
	"context"
	"fmt"
	"regexp"

	"github.com/fivetwenty-io/rocketchat-client/internal/constants"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// emailPattern decides whether login sends the identifier as "user" (an
// email address) or "username".
var emailPattern = regexp.MustCompile(`^[_a-z0-9-]+(\.[_a-z0-9-]+)*@[a-z0-9-]+(\.[a-z0-9-]+)*(\.[a-z]{2,4})$`)

// Login exchanges credentials for a session. On success the session headers
// are replaced; on failure they are left untouched.
func (c *Client) Login(ctx context.Context, user, password string) (*rocketchat.LoginResponse, error) {
	params := rocketchat.Params{"password": password}
	if emailPattern.MatchString(user) {
		params["user"] = user
	} else {
		params["username"] = user
	}

	resp, err := c.httpClient.Send(ctx, &rocketchat.Request{
		Method:   "POST",
		Endpoint: "login",
		Params:   params,
		Encoding: rocketchat.EncodingJSON,
		NoAuth:   true,
		Verbatim: true,
	})
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	if resp.StatusCode == constants.HTTPStatusUnauthorized {
		return nil, &rocketchat.AuthenticationError{StatusCode: resp.StatusCode, Text: resp.Text()}
	}

	if resp.StatusCode != constants.HTTPStatusOK {
		return nil, &rocketchat.ConnectionError{StatusCode: resp.StatusCode, Text: resp.Text()}
	}

	var login rocketchat.LoginResponse

	err = json.Unmarshal(resp.Body, &login)
	if err != nil {
		return nil, &rocketchat.ConnectionError{StatusCode: resp.StatusCode, Text: resp.Text(), Err: err}
	}

	if login.Status != "success" {
		return nil, &rocketchat.ConnectionError{StatusCode: resp.StatusCode, Text: resp.Text()}
	}

	err = c.session.Set(login.Data.AuthToken, login.Data.UserID)
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Info("Logged in", map[string]interface{}{"user_id": login.Data.UserID})
	}

	return &login, nil
}

// Logout invalidates the session token on the server and clears the local
// headers.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.httpClient.Post(ctx, "logout", nil)
	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}

	return c.session.Clear()
}

// Authenticated reports whether the client holds session headers.
func (c *Client) Authenticated() bool {
	return c.session.Authenticated()
}
