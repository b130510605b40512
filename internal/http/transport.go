package http

import (
	"crypto/tls"
	"fmt"
	nethttp "net/http"
	"net/url"
	"time"

	"github.com/fivetwenty-io/rocketchat-client/internal/constants"
)

// TransportConfig holds the connection settings of the underlying HTTP client.
type TransportConfig struct {
	SkipTLSVerify  bool
	ClientCertFile string
	ClientKeyFile  string
	ProxyURL       string
	Timeout        time.Duration
}

// NewHTTPClient builds an HTTP client from cfg. A zero Timeout uses the
// default; the proxy falls back to the environment when ProxyURL is empty.
func NewHTTPClient(cfg TransportConfig) (*nethttp.Client, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		//nolint:gosec // opt-in for self-signed development servers
		InsecureSkipVerify: cfg.SkipTLSVerify,
	}

	if cfg.ClientCertFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertFile, cfg.ClientKeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading client certificate: %w", err)
		}

		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	proxy := nethttp.ProxyFromEnvironment

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy URL: %w", err)
		}

		proxy = nethttp.ProxyURL(proxyURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	return &nethttp.Client{
		Timeout: timeout,
		Transport: &nethttp.Transport{
			Proxy:               proxy,
			TLSClientConfig:     tlsConfig,
			IdleConnTimeout:     constants.DefaultIdleConnTimeout,
			TLSHandshakeTimeout: constants.DefaultTLSHandshakeTimeout,
			ForceAttemptHTTP2:   true,
		},
	}, nil
}
