// SPDX-License-Identifier: MIT

// Package api is the client of the graph persistence and optimization
// service.
//
// Every call takes a context, carries the bearer token and a fresh
// X-Request-ID, and maps non-2xx answers to *Error. Nothing here touches
// a document; conversion helpers live in convert.go.
package api

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout bounds each request unless WithTimeout or WithHTTPClient says otherwise.
const DefaultTimeout = 30 * time.Second

// HeaderRequestID is the header carrying the per-request correlation ID.
const HeaderRequestID = "X-Request-ID"

// Client talks to one service instance. It is safe for concurrent use.
type Client struct {
	base       *url.URL
	token      string
	httpClient *http.Client
	logger     *zap.Logger
	summaryPar int
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer credential sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithSummaryConcurrency bounds parallel fetches in ListGraphSummaries.
func WithSummaryConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.summaryPar = n
		}
	}
}

// New returns a client rooted at baseURL, e.g. "http://127.0.0.1:5000".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api: base url %q: need http(s)://host", baseURL)
	}

	c := &Client{
		base:       u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
		summaryPar: 4,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// do sends one request and decodes a 2xx body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(HeaderRequestID, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := c.logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
	)
	log.Debug("api: request")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("api: transport failure", zap.Error(err))
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode, Method: method, Path: path, Message: errorMessage(raw)}
		log.Warn("api: error response",
			zap.Int("status_code", resp.StatusCode),
			zap.String("message", apiErr.Message),
			zap.Duration("elapsed", time.Since(start)),
		)
		return apiErr
	}
	log.Debug("api: response", zap.Int("status_code", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if out == nil {
		return nil
	}
	if len(raw) == 0 {
		return fmt.Errorf("api: %s %s: empty response", method, path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Error("api: decode response", zap.Error(err), zap.String("response_body", string(raw)))
		return fmt.Errorf("api: decode response: %w", err)
	}

	return nil
}

// errorMessage extracts {"error": "..."} or falls back to the trimmed body.
func errorMessage(raw []byte) string {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Error != "" {
		return er.Error
	}

	return strings.TrimSpace(string(raw))
}
