package rocketchat

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatcher exposes the four request primitives every endpoint binding is
// built on, plus Do for a fully described request.
type Dispatcher interface {
	Get(ctx context.Context, endpoint string, params Params) (*Response, error)
	Post(ctx context.Context, endpoint string, params Params, files ...File) (*Response, error)
	Put(ctx context.Context, endpoint string, params Params, files ...File) (*Response, error)
	Delete(ctx context.Context, endpoint string) (*Response, error)
	Do(ctx context.Context, req *Request) (*Response, error)
}

// SessionClient manages the authentication headers of a client.
type SessionClient interface {
	Login(ctx context.Context, user, password string) (*LoginResponse, error)
	Logout(ctx context.Context) error
	Authenticated() bool
}

// InfoClient provides access to server information endpoints.
type InfoClient interface {
	Info(ctx context.Context) (*Info, error)
	Me(ctx context.Context) (*User, error)
	Spotlight(ctx context.Context, query string) (*SpotlightResult, error)
}

// ResourceClients provides access to the resource specific clients.
type ResourceClients interface {
	Channels() ChannelsClient
	Groups() GroupsClient
	Users() UsersClient
	Chat() ChatClient
	DM() DMClient
	Integrations() IntegrationsClient
	Rooms() RoomsClient
}

// Client is a Rocket.Chat REST API client.
type Client interface {
	Dispatcher
	SessionClient
	InfoClient
	ResourceClients
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// # Authentication
//
// When Username and Password are set, the client logs in during
// construction. AuthToken and UserID, if set, are used as the session headers
// directly and replace the token issued by that login. With neither, requests
// are sent anonymously.
//
// # Transport
//
// SkipTLSVerify, the client certificate pair, ProxyURL and Timeout are
// applied once to the underlying transport. Requests are never retried.
type Config struct {
	// ServerURL is the base URL of the server (e.g. "https://chat.example.com").
	// rcclient.New trims a trailing slash and adds "https://" if no scheme is
	// present.
	ServerURL string `validate:"required,url"`

	// Username is a user name or an email address.
	Username string `validate:"required_with=Password"`
	// Password is used together with Username to log in.
	Password string `validate:"required_with=Username"`

	// AuthToken and UserID are a previously issued session.
	AuthToken string `validate:"required_with=UserID"`
	UserID    string `validate:"required_with=AuthToken"`

	// SkipTLSVerify disables server certificate verification.
	SkipTLSVerify bool
	// ClientCertFile and ClientKeyFile are a PEM encoded client certificate.
	ClientCertFile string `validate:"required_with=ClientKeyFile"`
	ClientKeyFile  string `validate:"required_with=ClientCertFile"`
	// ProxyURL routes every request through a proxy. Empty uses the
	// environment (HTTP_PROXY, HTTPS_PROXY, NO_PROXY).
	ProxyURL string `validate:"omitempty,url"`
	// Timeout bounds each request. Zero uses the default of 30 seconds.
	Timeout time.Duration `validate:"gte=0"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger `validate:"-"`
	// MetricsRegisterer, when set, receives request metrics.
	MetricsRegisterer prometheus.Registerer `validate:"-"`
	// HTTPClient replaces the transport built from the settings above.
	HTTPClient *http.Client `validate:"-"`
}
