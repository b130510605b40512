package rocketchat

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownAPIErrorMessage is used when a failed response carries no message.
const UnknownAPIErrorMessage = "unknown API error"

// Static errors for err113 compliance.
var (
	ErrAuthentication    = errors.New("authentication failed")
	ErrConfigRequired    = errors.New("config is required")
	ErrServerURLRequired = errors.New("server URL is required")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrNoMoreItems       = errors.New("no more items")
	ErrJSONWithFiles     = errors.New("JSON encoding cannot carry file attachments")
)

// APIError is a failure reported by the Rocket.Chat application itself: the
// response was JSON with "success": false.
type APIError struct {
	StatusCode int
	// Text is the raw response body.
	Text string
	// Body is the decoded response object.
	Body map[string]any
	// Message is the human readable error, or UnknownAPIErrorMessage.
	Message string
	// ErrorType is the machine readable tag (e.g. "error-invalid-room").
	// Empty when the server did not send one.
	ErrorType string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("%s [%s] (status: %d)", e.Message, e.ErrorType, e.StatusCode)
	}

	return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
}

// TransportError is an unsuccessful response that did not come from the
// application logic: proxies, gateways, unexpected content types.
type TransportError struct {
	StatusCode int
	// Text is the raw response body, verbatim.
	Text string
	// Body holds the parsed JSON body when the text happened to be JSON.
	// It is informational only.
	Body any
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%d -> wrong status code received: %d. Response: %s", e.StatusCode, e.StatusCode, e.Text)
}

// AuthenticationError is returned by Login when the server rejects the
// credentials. It matches ErrAuthentication with errors.Is.
type AuthenticationError struct {
	StatusCode int
	Text       string
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s (status: %d)", ErrAuthentication.Error(), e.StatusCode)
}

// Unwrap returns ErrAuthentication.
func (e *AuthenticationError) Unwrap() error {
	return ErrAuthentication
}

// ConnectionError is returned by Login when the response is neither a clean
// success nor a rejection.
type ConnectionError struct {
	StatusCode int
	Text       string
	Err        error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected login response (status: %d): %v", e.StatusCode, e.Err)
	}

	return fmt.Sprintf("unexpected login response (status: %d): %s", e.StatusCode, e.Text)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// MissingParameterError is returned before any request is sent when none of
// a method's alternative parameters was supplied.
type MissingParameterError struct {
	// Alternatives lists the wire names of which at least one is required.
	Alternatives []string
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	return strings.Join(e.Alternatives, " or ") + " required"
}

// UnsupportedIntegrationTypeError is returned when an integration type is not
// one of the variants the endpoint accepts.
type UnsupportedIntegrationTypeError struct {
	Type string
}

// Error implements the error interface.
func (e *UnsupportedIntegrationTypeError) Error() string {
	return fmt.Sprintf("unsupported integration type %q", e.Type)
}

// IsAPIError reports whether err is, or wraps, an APIError.
func IsAPIError(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr)
}

// IsTransportError reports whether err is, or wraps, a TransportError.
func IsTransportError(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}

// IsMissingParameter reports whether err is, or wraps, a MissingParameterError.
func IsMissingParameter(err error) bool {
	missing := &MissingParameterError{}

	return errors.As(err, &missing)
}

// ErrorType returns the error-type tag of an APIError, or "".
func ErrorType(err error) string {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.ErrorType
	}

	return ""
}

// HasErrorType checks whether err is an APIError tagged with errorType.
func HasErrorType(err error, errorType string) bool {
	tag := ErrorType(err)

	return tag != "" && tag == errorType
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	transportErr := &TransportError{}
	if errors.As(err, &transportErr) {
		return transportErr.StatusCode
	}

	authErr := &AuthenticationError{}
	if errors.As(err, &authErr) {
		return authErr.StatusCode
	}

	connErr := &ConnectionError{}
	if errors.As(err, &connErr) {
		return connErr.StatusCode
	}

	return 0
}
