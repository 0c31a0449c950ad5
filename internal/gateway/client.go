// Package gateway is a rate-limited client for the remote catalog REST API.
//
// Every gateway response is an envelope of the form {success, data, message}. Transport
// failures and undecodable bodies surface as GATEWAY_UNREACHABLE domain errors carrying a
// generic "Failed to ..." message; success=false responses surface as GATEWAY_REJECTED
// carrying the gateway's own message.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/echoverse/echo-web/internal/ratelimit"
)

const (
	// DefaultBaseURL is the public Echo gateway.
	DefaultBaseURL = "https://echo-server-alhh.onrender.com/api"

	// Rate limit: 10 requests per second, burst of 20
	defaultRPS   = 10.0
	defaultBurst = 20

	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "EchoWeb/1.0"

	// Gateway responses larger than this are treated as undecodable.
	maxResponseBytes = 10 << 20

	limiterKey = "gateway"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RPS       float64
	Burst     int
	UserAgent string
}

// Client is a rate-limited gateway API client.
type Client struct {
	baseURL   *url.URL
	userAgent string
	http      *http.Client
	limiter   *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
}

// New creates a new gateway client.
func New(opts Options, logger *slog.Logger) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RPS == 0 {
		opts.RPS = defaultRPS
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse gateway base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("gateway base url %q: scheme must be http or https", opts.BaseURL)
	}

	return &Client{
		baseURL:   base,
		userAgent: opts.UserAgent,
		http: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: ratelimit.New(opts.RPS, opts.Burst),
		logger:  logger,
	}, nil
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// BaseURL returns the gateway base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// envelope is the gateway's response wrapper.
// URL is only set by the image upload endpoint, which may answer outside of data.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	URL     string          `json:"url"`
}

// call describes one gateway round trip.
type call struct {
	op       string
	method   string
	segments []string
	query    url.Values
	body     any

	// rawBody and contentType are used for non-JSON bodies.
	rawBody     io.Reader
	contentType string

	// fallback is the user-facing message when the gateway gives none.
	fallback string
}

// do executes a gateway call and returns the decoded envelope.
// All failures are returned as domain errors.
func (c *Client) do(ctx context.Context, cl call) (*envelope, error) {
	path := "/" + strings.Join(cl.segments, "/")
	fail := func(err error) error {
		return toDomain(&Error{Op: cl.op, Path: path, Message: cl.fallback, Err: err})
	}

	if err := c.limiter.Wait(ctx, limiterKey); err != nil {
		return nil, fail(fmt.Errorf("%w: rate limit wait: %w", ErrUnreachable, err))
	}

	escaped := make([]string, len(cl.segments))
	for i, s := range cl.segments {
		escaped[i] = url.PathEscape(s)
	}
	u := c.baseURL.JoinPath(escaped...)
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	body := cl.rawBody
	contentType := cl.contentType
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fail(fmt.Errorf("%w: encode body: %w", ErrUnreachable, err))
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return nil, fail(fmt.Errorf("%w: create request: %w", ErrUnreachable, err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID(ctx))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("gateway request",
		"op", cl.op,
		"method", cl.method,
		"path", path,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("gateway unreachable", "op", cl.op, "path", path, "error", err)
		return nil, fail(fmt.Errorf("%w: execute request: %w", ErrUnreachable, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fail(fmt.Errorf("%w: read response: %w", ErrUnreachable, err))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn("gateway response undecodable",
			"op", cl.op,
			"path", path,
			"status", resp.StatusCode,
			"error", err,
		)
		return nil, fail(fmt.Errorf("%w: decode response (status %d): %w", ErrUnreachable, resp.StatusCode, err))
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		msg := env.Message
		if msg == "" {
			msg = cl.fallback
		}
		c.logger.Info("gateway rejected request",
			"op", cl.op,
			"path", path,
			"status", resp.StatusCode,
			"message", msg,
		)
		return nil, toDomain(&Error{
			Op:      cl.op,
			Path:    path,
			Message: msg,
			Err:     fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode),
		})
	}

	return &env, nil
}

// decodeField unmarshals data[key] into out. A missing key or null data leaves out untouched.
func decodeField(data json.RawMessage, key string, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	v, ok := fields[key]
	if !ok || string(bytes.TrimSpace(v)) == "null" {
		return nil
	}
	return json.Unmarshal(v, out)
}

// decodeOne unmarshals a single record that may be wrapped under key or sent bare as data.
func decodeOne(data json.RawMessage, key string, out any) error {
	if len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if v, ok := fields[key]; ok && len(v) > 0 && v[0] == '{' {
		return json.Unmarshal(v, out)
	}
	return json.Unmarshal(data, out)
}

// decodeFailure builds the error for a successful envelope whose data has the wrong shape.
func decodeFailure(op, path, fallback string, err error) error {
	return toDomain(&Error{
		Op:      op,
		Path:    path,
		Message: fallback,
		Err:     fmt.Errorf("%w: decode data: %w", ErrUnreachable, err),
	})
}

// requestID propagates the inbound request id, or mints one for background calls.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
