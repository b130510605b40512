package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultIdleConnTimeout is how long idle keep-alive connections are kept.
	DefaultIdleConnTimeout = 90 * time.Second

	// DefaultTLSHandshakeTimeout bounds the TLS handshake.
	DefaultTLSHandshakeTimeout = 10 * time.Second
)

// API paths.
const (
	// DefaultAPIPath is the prefix of every versioned REST endpoint.
	DefaultAPIPath = "/api/v1/"

	// RootAPIPath hosts endpoints outside the versioned namespace, e.g. info.
	RootAPIPath = "/api/"
)

// Authentication headers.
const (
	// HeaderAuthToken carries the session token.
	HeaderAuthToken = "X-Auth-Token"

	// HeaderUserID carries the id of the logged in user.
	HeaderUserID = "X-User-Id"
)

// Response classification.
const (
	// SuccessStatusMin is the lowest status treated as success.
	SuccessStatusMin = 200

	// SuccessStatusMax is the highest status treated as success.
	SuccessStatusMax = 399

	// HTTPStatusOK represents a successful HTTP response.
	HTTPStatusOK = 200

	// HTTPStatusUnauthorized is returned by login on bad credentials.
	HTTPStatusUnauthorized = 401
)

// Request outcome labels.
const (
	OutcomeSuccess   = "success"
	OutcomeAPIError  = "api_error"
	OutcomeTransport = "transport_error"
	OutcomeNetwork   = "network_error"
)

// File sniffing.
const (
	// SniffLength is how many leading bytes are inspected to detect a file type.
	SniffLength = 262

	// DefaultContentType is used when a file type cannot be detected.
	DefaultContentType = "application/octet-stream"
)

// Format constants.
const (
	// FormatJSON is the JSON output format.
	FormatJSON = "json"

	// FormatYAML is the YAML output format.
	FormatYAML = "yaml"

	// FormatTable is the table output format.
	FormatTable = "table"
)

// Display constants.
const (
	// NotAvailable is shown for missing values.
	NotAvailable = "N/A"

	// MaskedSecret hides secrets in output.
	MaskedSecret = "***"
)

// Default user agent.
const DefaultUserAgent = "rocketchat-client-go/1.0"
