package rocketleague

import (
	"net/http"
	"time"
)

// Mode controls how far a call goes and what it hands back
type Mode int

const (
	// ModeDefault sends the request and decodes the response body
	ModeDefault Mode = iota
	// ModeDebugRequest stops before the network and returns only the request plan
	ModeDebugRequest
	// ModeDebugResponse sends the request and returns the raw *http.Response
	ModeDebugResponse
)

func (m Mode) String() string {
	switch m {
	case ModeDebugRequest:
		return "debug-request"
	case ModeDebugResponse:
		return "debug-response"
	default:
		return "default"
	}
}

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL       string
	timeout       time.Duration
	userAgent     string
	httpClient    *http.Client
	debugRequest  bool
	debugResponse bool
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent(),
	}
}

// mode resolves the debug flags. Debug-request wins when both are set since
// it never reaches the network.
func (o clientOptions) mode() Mode {
	switch {
	case o.debugRequest:
		return ModeDebugRequest
	case o.debugResponse:
		return ModeDebugResponse
	default:
		return ModeDefault
	}
}

// WithBaseURL points the client at another scheme and host, e.g. a test server.
// The /api/v1/ prefix is always appended.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout. Without it the http.Client default
// of no timeout applies.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. WithTimeout is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithDebugRequest makes every call return its RequestPlan without sending it.
func WithDebugRequest(enabled bool) Option {
	return func(o *clientOptions) {
		o.debugRequest = enabled
	}
}

// WithDebugResponse makes every call return the raw *http.Response.
func WithDebugResponse(enabled bool) Option {
	return func(o *clientOptions) {
		o.debugResponse = enabled
	}
}
