// Package http implements the Rocket.Chat request dispatcher: it builds
// authenticated requests from endpoint names and Params, performs the round
// trip and classifies the response.
package http

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/rocketchat-client/internal/constants"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// HeaderProvider supplies the session headers for each request.
type HeaderProvider interface {
	AuthHeaders() (authToken, userID string)
}

// Client dispatches requests to a Rocket.Chat server. It holds no state
// between calls besides its configuration and the session it reads from.
type Client struct {
	httpClient *retryablehttp.Client
	session    HeaderProvider
	baseURL    string
	apiPath    string
	logger     rocketchat.Logger
	debug      bool
	userAgent  string
	metrics    *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger rocketchat.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithAPIPath overrides the default "/api/v1/" prefix.
func WithAPIPath(apiPath string) Option {
	return func(c *Client) {
		c.apiPath = apiPath
	}
}

// WithHTTPClient sets the underlying HTTP client, which carries the TLS,
// proxy and timeout settings.
func WithHTTPClient(httpClient *nethttp.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = httpClient
	}
}

// WithMetrics records every request in metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// NewClient creates a dispatcher for the server at baseURL. session may be
// nil for anonymous requests.
func NewClient(baseURL string, session HeaderProvider, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient = &nethttp.Client{Timeout: constants.DefaultHTTPTimeout}

	client := &Client{
		httpClient: retryClient,
		session:    session,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiPath:    constants.DefaultAPIPath,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil && client.debug {
		retryClient.RequestLogHook = client.logRequest
		retryClient.ResponseLogHook = client.logResponse
	}

	return client
}

// neverRetry hands every outcome straight back to the caller.
func neverRetry(ctx context.Context, _ *nethttp.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// Get calls endpoint with params encoded in the query string.
func (c *Client) Get(ctx context.Context, endpoint string, params rocketchat.Params) (*rocketchat.Response, error) {
	return c.Do(ctx, &rocketchat.Request{
		Method:   nethttp.MethodGet,
		Endpoint: endpoint,
		Params:   params,
	})
}

// Post calls endpoint with params in the body. Attaching files switches the
// body to multipart form data.
func (c *Client) Post(ctx context.Context, endpoint string, params rocketchat.Params, files ...rocketchat.File) (*rocketchat.Response, error) {
	return c.Do(ctx, &rocketchat.Request{
		Method:   nethttp.MethodPost,
		Endpoint: endpoint,
		Params:   params,
		Files:    files,
	})
}

// Put calls endpoint with params in the body, like Post.
func (c *Client) Put(ctx context.Context, endpoint string, params rocketchat.Params, files ...rocketchat.File) (*rocketchat.Response, error) {
	return c.Do(ctx, &rocketchat.Request{
		Method:   nethttp.MethodPut,
		Endpoint: endpoint,
		Params:   params,
		Files:    files,
	})
}

// Delete calls endpoint without parameters.
func (c *Client) Delete(ctx context.Context, endpoint string) (*rocketchat.Response, error) {
	return c.Do(ctx, &rocketchat.Request{
		Method:   nethttp.MethodDelete,
		Endpoint: endpoint,
	})
}

// Do sends req and classifies the response. On failure the error is an
// *rocketchat.APIError, a *rocketchat.TransportError, or a network error.
func (c *Client) Do(ctx context.Context, req *rocketchat.Request) (*rocketchat.Response, error) {
	resp, err := c.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	err = Classify(resp)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Endpoint, err)
	}

	return resp, nil
}

// Send performs the round trip without classifying the response. The request
// is still recorded in the metrics with the outcome Classify would give it.
func (c *Client) Send(ctx context.Context, req *rocketchat.Request) (*rocketchat.Response, error) {
	start := time.Now()

	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		c.metrics.observe(req.Method, req.Endpoint, constants.OutcomeNetwork, time.Since(start))

		return nil, err
	}

	c.metrics.observe(req.Method, req.Endpoint, outcomeOf(Classify(resp)), time.Since(start))

	return resp, nil
}

func (c *Client) roundTrip(ctx context.Context, req *rocketchat.Request) (*rocketchat.Response, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Endpoint, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", req.Endpoint, err)
	}

	return &rocketchat.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

// URL returns the address of endpoint under apiPath, or under the client's
// default prefix when apiPath is empty.
func (c *Client) URL(apiPath, endpoint string) string {
	if apiPath == "" {
		apiPath = c.apiPath
	}

	return c.baseURL + apiPath + endpoint
}

func (c *Client) newRequest(ctx context.Context, req *rocketchat.Request) (*retryablehttp.Request, error) {
	params := rocketchat.Normalize(req.Params, req.Extra)
	target := c.URL(req.APIPath, req.Endpoint)

	var (
		body        []byte
		contentType string
		err         error
	)

	switch req.Method {
	case nethttp.MethodGet, nethttp.MethodDelete, nethttp.MethodHead:
		if query := EncodeQuery(params); query != "" {
			target += "?" + query
		}
	default:
		if req.Method == nethttp.MethodPost && !req.Verbatim {
			params = rocketchat.AliasPassword(req.Endpoint, params)
		}

		body, contentType, err = EncodeBody(params, req.Files, req.Encoding)
		if err != nil {
			return nil, fmt.Errorf("encoding %s body: %w", req.Endpoint, err)
		}
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", req.Endpoint, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if !req.NoAuth && c.session != nil {
		authToken, userID := c.session.AuthHeaders()
		if authToken != "" {
			httpReq.Header.Set(constants.HeaderAuthToken, authToken)
		}

		if userID != "" {
			httpReq.Header.Set(constants.HeaderUserID, userID)
		}
	}

	return httpReq, nil
}

func (c *Client) logRequest(_ retryablehttp.Logger, req *nethttp.Request, _ int) {
	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.Redacted(),
	})
}

func (c *Client) logResponse(_ retryablehttp.Logger, resp *nethttp.Response) {
	c.logger.Debug("HTTP Response", map[string]interface{}{
		"method": resp.Request.Method,
		"url":    resp.Request.URL.Redacted(),
		"status": resp.StatusCode,
	})
}
