// Package transport performs single JSON-over-HTTP calls against the
// EventSphere backend and classifies their outcome. It never retries.
package transport

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

	"go.uber.org/zap"
)

// Client issues requests relative to a base URL.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	logAPICalls bool
	logger      *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserAgent sets a custom user agent.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithLogger sets the logger used when API call logging is enabled.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAPICallLogging logs every request and its outcome.
func WithAPICallLogging(enabled bool) Option {
	return func(c *Client) {
		c.logAPICalls = enabled
	}
}

// New creates a transport client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	c := &Client{
		// Per-attempt deadlines come from the caller's context.
		httpClient: &http.Client{},
		baseURL:    strings.TrimSuffix(u.String(), "/"),
		userAgent:  "eventsphere-client/1.0",
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send performs req and decodes a 2xx JSON body into out. out may be nil.
// Failures are returned as *Error.
func (c *Client) Send(ctx context.Context, req Request, out any) error {
	target, err := req.URL(c.baseURL)
	if err != nil {
		return &Error{Kind: KindRequest, Err: err}
	}

	var body io.Reader
	if req.hasBody() {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return &Error{Kind: KindRequest, Err: fmt.Errorf("marshaling request body: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return &Error{Kind: KindRequest, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	if c.logAPICalls {
		c.logger.Debugw("API request", "method", req.Method, "url", target)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if c.logAPICalls {
			c.logger.Debugw("API request failed", "method", req.Method, "url", target, "error", err)
		}
		return &Error{Kind: KindNetworkUnreachable, Err: err}
	}
	defer resp.Body.Close()

	if c.logAPICalls {
		c.logger.Debugw("API response", "method", req.Method, "url", target,
			"status", resp.StatusCode, "duration", time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return &Error{Kind: KindHTTP, Status: resp.StatusCode, Body: string(text)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindParse, Status: resp.StatusCode, Err: err}
	}
	return nil
}
