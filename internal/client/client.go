package client

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/fivetwenty-io/rocketchat-client/internal/auth"
	"github.com/fivetwenty-io/rocketchat-client/internal/constants"
	"github.com/fivetwenty-io/rocketchat-client/internal/http"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client implements the rocketchat.Client interface.
type Client struct {
	httpClient *http.Client
	session    *auth.Session
	baseURL    string
	logger     rocketchat.Logger

	// Resource clients
	channels     *ChannelsClient
	groups       *GroupsClient
	users        *UsersClient
	chat         *ChatClient
	dm           *DMClient
	integrations *IntegrationsClient
	rooms        *RoomsClient
}

var _ rocketchat.Client = (*Client)(nil)

// New creates a client from config. It logs in when Username and Password
// are set and uses AuthToken and UserID as the session. When both are given
// the login still runs and the token pair wins.
func New(ctx context.Context, config *rocketchat.Config) (*Client, error) {
	if config == nil {
		return nil, rocketchat.ErrConfigRequired
	}

	return NewWithSession(ctx, config, auth.NewSession(config.AuthToken, config.UserID))
}

// NewWithSession creates a client that reads and writes its headers through
// session.
func NewWithSession(ctx context.Context, config *rocketchat.Config, session *auth.Session) (*Client, error) {
	if config == nil {
		return nil, rocketchat.ErrConfigRequired
	}

	if config.ServerURL == "" {
		return nil, rocketchat.ErrServerURLRequired
	}

	err := rocketchat.Validate(config)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient: http.NewClient(config.ServerURL, session, httpOpts...),
		session:    session,
		baseURL:    config.ServerURL,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	if config.Username != "" && config.Password != "" {
		_, err = client.Login(ctx, config.Username, config.Password)
		if err != nil {
			return nil, err
		}

		// An explicit token pair replaces the one issued by the login.
		if config.AuthToken != "" && config.UserID != "" {
			err = session.Set(config.AuthToken, config.UserID)
			if err != nil {
				return nil, err
			}
		}
	}

	return client, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *rocketchat.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		built, err := http.NewHTTPClient(http.TransportConfig{
			SkipTLSVerify:  config.SkipTLSVerify,
			ClientCertFile: config.ClientCertFile,
			ClientKeyFile:  config.ClientKeyFile,
			ProxyURL:       config.ProxyURL,
			Timeout:        config.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("building transport: %w", err)
		}

		httpClient = built
	}

	httpOpts = append(httpOpts, http.WithHTTPClient(httpClient))

	if config.MetricsRegisterer != nil {
		metrics, err := http.NewMetrics(config.MetricsRegisterer)
		if err != nil {
			return nil, err
		}

		httpOpts = append(httpOpts, http.WithMetrics(metrics))
	}

	return httpOpts, nil
}

func (c *Client) initializeResourceClients() {
	c.channels = NewChannelsClient(c.httpClient)
	c.groups = NewGroupsClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
	c.chat = NewChatClient(c.httpClient)
	c.dm = NewDMClient(c.httpClient)
	c.integrations = NewIntegrationsClient(c.httpClient)
	c.rooms = NewRoomsClient(c.httpClient)
}

// Get implements rocketchat.Dispatcher.Get.
func (c *Client) Get(ctx context.Context, endpoint string, params rocketchat.Params) (*rocketchat.Response, error) {
	return c.httpClient.Get(ctx, endpoint, params)
}

// Post implements rocketchat.Dispatcher.Post.
func (c *Client) Post(ctx context.Context, endpoint string, params rocketchat.Params, files ...rocketchat.File) (*rocketchat.Response, error) {
	return c.httpClient.Post(ctx, endpoint, params, files...)
}

// Put implements rocketchat.Dispatcher.Put.
func (c *Client) Put(ctx context.Context, endpoint string, params rocketchat.Params, files ...rocketchat.File) (*rocketchat.Response, error) {
	return c.httpClient.Put(ctx, endpoint, params, files...)
}

// Delete implements rocketchat.Dispatcher.Delete.
func (c *Client) Delete(ctx context.Context, endpoint string) (*rocketchat.Response, error) {
	return c.httpClient.Delete(ctx, endpoint)
}

// Do implements rocketchat.Dispatcher.Do.
func (c *Client) Do(ctx context.Context, req *rocketchat.Request) (*rocketchat.Response, error) {
	return c.httpClient.Do(ctx, req)
}

// Info implements rocketchat.InfoClient.Info. The endpoint lives outside the
// versioned API path.
func (c *Client) Info(ctx context.Context) (*rocketchat.Info, error) {
	resp, err := c.httpClient.Do(ctx, &rocketchat.Request{
		Method:   "GET",
		Endpoint: "info",
		APIPath:  constants.RootAPIPath,
	})
	if err != nil {
		return nil, fmt.Errorf("getting info: %w", err)
	}

	return decode[rocketchat.Info](resp, "info")
}

// Me implements rocketchat.InfoClient.Me.
func (c *Client) Me(ctx context.Context) (*rocketchat.User, error) {
	resp, err := c.httpClient.Get(ctx, "me", nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return decode[rocketchat.User](resp, "me")
}

// Spotlight implements rocketchat.InfoClient.Spotlight.
func (c *Client) Spotlight(ctx context.Context, query string) (*rocketchat.SpotlightResult, error) {
	resp, err := c.httpClient.Get(ctx, "spotlight", rocketchat.Params{"query": query})
	if err != nil {
		return nil, fmt.Errorf("searching spotlight: %w", err)
	}

	return decode[rocketchat.SpotlightResult](resp, "spotlight")
}

// Resource client accessors

// Channels implements rocketchat.Client.Channels.
func (c *Client) Channels() rocketchat.ChannelsClient {
	return c.channels
}

// Groups implements rocketchat.Client.Groups.
func (c *Client) Groups() rocketchat.GroupsClient {
	return c.groups
}

// Users implements rocketchat.Client.Users.
func (c *Client) Users() rocketchat.UsersClient {
	return c.users
}

// Chat implements rocketchat.Client.Chat.
func (c *Client) Chat() rocketchat.ChatClient {
	return c.chat
}

// DM implements rocketchat.Client.DM.
func (c *Client) DM() rocketchat.DMClient {
	return c.dm
}

// Integrations implements rocketchat.Client.Integrations.
func (c *Client) Integrations() rocketchat.IntegrationsClient {
	return c.integrations
}

// Rooms implements rocketchat.Client.Rooms.
func (c *Client) Rooms() rocketchat.RoomsClient {
	return c.rooms
}

// decode unmarshals a response body into a new T.
func decode[T any](resp *rocketchat.Response, what string) (*T, error) {
	var result T

	err := json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return &result, nil
}
