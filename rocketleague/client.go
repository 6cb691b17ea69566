package rocketleague

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the scheme and host of the official stats API
	DefaultBaseURL = "https://api.rocketleague.com"
	// APIVersion is the API version used in every path
	APIVersion = "1"
)

// Client represents a Rocket League stats API client
type Client struct {
	apiRoot    string
	token      string
	userAgent  string
	httpClient *http.Client
	mode       Mode
	logger     zerolog.Logger
}

// NewClient creates a new stats API client. An empty token is allowed; the
// API answers such calls with 401 and the body is returned as usual.
func NewClient(token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	baseURL := strings.TrimRight(options.baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q must include scheme and host", ErrInvalidConfig, options.baseURL)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: options.timeout,
		}
	}

	return &Client{
		apiRoot:    fmt.Sprintf("%s/api/v%s/", baseURL, APIVersion),
		token:      token,
		userAgent:  options.userAgent,
		httpClient: httpClient,
		mode:       options.mode(),
		logger:     logger,
	}, nil
}

// APIRoot returns the URL prefix every request path starts with
func (c *Client) APIRoot() string {
	return c.apiRoot
}

// Mode returns the debug mode the client was built with
func (c *Client) Mode() Mode {
	return c.mode
}

// Plan validates params and resolves the request for an endpoint without
// sending anything, whatever the client mode.
func (c *Client) Plan(e Endpoint, p Params) (RequestPlan, error) {
	return planRequest(c.apiRoot, e, p)
}

// Headers returns the headers sent with every request
func (c *Client) Headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Token "+c.token)
	h.Set("User-Agent", c.userAgent)
	h.Set("Accept", "application/json")
	return h
}

// call plans and executes a request using the client mode
func (c *Client) call(ctx context.Context, e Endpoint, p Params) (*Result, error) {
	return c.callWithMode(ctx, e, p, c.mode)
}

func (c *Client) callWithMode(ctx context.Context, e Endpoint, p Params, mode Mode) (*Result, error) {
	plan, err := c.Plan(e, p)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, plan, mode)
}

// execute performs the HTTP round trip for a plan
func (c *Client) execute(ctx context.Context, plan RequestPlan, mode Mode) (*Result, error) {
	if mode == ModeDebugRequest {
		return &Result{Plan: plan}, nil
	}

	var body io.Reader
	if plan.Body != nil {
		data, err := json.Marshal(plan.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, plan.Method, plan.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = c.Headers()
	if plan.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", plan.Endpoint, err)
	}

	c.logger.Debug().
		Str("endpoint", plan.Endpoint.String()).
		Str("method", plan.Method).
		Str("url", plan.URL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Rocket League API request")

	result := &Result{
		Plan:       plan,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}

	if mode == ModeDebugResponse {
		result.Response = resp
		return result, nil
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	result.setBody(raw)

	return result, nil
}

// Result is what every endpoint call returns. Which fields are set depends on
// the client mode: only Plan in debug-request mode, Plan plus Response in
// debug-response mode, and Plan plus the decoded body otherwise.
type Result struct {
	Plan       RequestPlan
	StatusCode int
	Header     http.Header

	// Raw is the response body as received
	Raw []byte
	// JSON is the decoded body; numbers are json.Number so Steam IDs survive
	JSON any
	// Text holds the body when it is not valid JSON
	Text string

	// decoded is set when the body parsed as JSON, including a bare null
	decoded bool

	// Response is the untouched response in debug-response mode. The caller
	// must close its body.
	Response *http.Response
}

func (r *Result) setBody(raw []byte) {
	r.Raw = raw

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		r.Text = string(raw)
		return
	}
	r.JSON = v
	r.decoded = true
}

// Sent reports whether the request reached the network
func (r *Result) Sent() bool {
	return r.StatusCode != 0
}

// IsJSON reports whether the body decoded as JSON
func (r *Result) IsJSON() bool {
	return r.decoded
}

// Value returns the decoded JSON, or the raw text when the body was not JSON
func (r *Result) Value() any {
	if r.decoded {
		return r.JSON
	}
	return r.Text
}

// Decode unmarshals the body into v
func (r *Result) Decode(v any) error {
	if !r.Sent() || r.Response != nil {
		return fmt.Errorf("no decoded body available for %s", r.Plan.Endpoint)
	}
	if !r.IsJSON() {
		return fmt.Errorf("%s returned non-JSON body (status %d): %s", r.Plan.Endpoint, r.StatusCode, truncate(r.Text, 200))
	}
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", r.Plan.Endpoint, err)
	}
	return nil
}

// Err returns an *APIError for non-2xx responses and nil otherwise
func (r *Result) Err() error {
	if !r.Sent() || (r.StatusCode >= 200 && r.StatusCode < 300) {
		return nil
	}
	body := r.Text
	if r.decoded {
		body = strings.TrimSpace(string(r.Raw))
	}
	return &APIError{StatusCode: r.StatusCode, Body: body}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
