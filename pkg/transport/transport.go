package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/searchkit/pkg/config"
)

// Request headers set on every attempt.
const (
	APIKeyHeader    = "X-API-KEY"
	RequestIDHeader = "X-Request-Id"
)

const defaultUserAgent = "searchkit/1.0"

// Client executes requests against the node pool with retry and failover.
// Every attempt picks a node through the selector, runs with the configured
// per-attempt timeout, and records the outcome on the node's health state.
// Safe for concurrent use.
type Client struct {
	conf      *config.Configuration
	selector  *selector
	http      *http.Client
	logger    *slog.Logger
	backoff   BackoffStrategy
	userAgent string
}

// New creates a transport client bound to a resolved configuration.
func New(conf *config.Configuration, opts ...Option) *Client {
	o := defaultOptions(conf)
	for _, opt := range opts {
		opt(o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSClientConfig:     &tls.Config{InsecureSkipVerify: conf.InsecureSkipVerify},
			},
		}
	}

	return &Client{
		conf:      conf,
		selector:  newSelector(conf, o.logger),
		http:      httpClient,
		logger:    o.logger,
		backoff:   o.backoff,
		userAgent: o.userAgent,
	}
}

// Get issues a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, params, nil, out)
}

// Delete issues a DELETE request, forwarding params verbatim.
func (c *Client) Delete(ctx context.Context, endpoint string, params url.Values, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, params, nil, out)
}

// Post issues a POST request with the given body.
func (c *Client) Post(ctx context.Context, endpoint string, params url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, params, body, out)
}

// Put issues a PUT request with the given body.
func (c *Client) Put(ctx context.Context, endpoint string, params url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, params, body, out)
}

// Patch issues a PATCH request with the given body.
func (c *Client) Patch(ctx context.Context, endpoint string, params url.Values, body, out any) error {
	return c.do(ctx, http.MethodPatch, endpoint, params, body, out)
}

// do runs the retry loop: up to NumRetries+1 attempts, each against the
// node the selector hands out. Permanent failures (4xx, decode errors)
// surface immediately; connection failures and 5xx rotate to the next node
// after the backoff delay.
func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, body, out any) error {
	payload, contentType, err := encodeBody(body)
	if err != nil {
		return err
	}

	attempts := c.conf.NumRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.backoff.NextInterval(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		node := c.selector.pick()
		c.logger.Debug("request attempt",
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.String("node", node.URL()),
			slog.Int("attempt", attempt+1),
		)

		err := c.attempt(ctx, node, method, endpoint, params, payload, contentType, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !retriable(apiErr.StatusCode) {
			return err
		}
		if !errors.Is(err, ErrConnectionFailed) && apiErr == nil {
			// Decode failures and other local errors will not improve on
			// another node.
			return err
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempts, lastErr)
}

// attempt performs one request against one node and updates its health.
// Any status between 1 and 499 proves the node itself is reachable.
func (c *Client) attempt(
	ctx context.Context,
	node *config.Node,
	method, endpoint string,
	params url.Values,
	payload []byte,
	contentType string,
	out any,
) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.conf.ConnectionTimeout)
	defer cancel()

	reqURL := node.URL() + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(APIKeyHeader, c.conf.APIKey)
	req.Header.Set(RequestIDHeader, uuid.NewString())
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		node.SetHealthy(false)
		c.logger.Debug("node attempt failed",
			slog.String("node", node.URL()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	healthy := resp.StatusCode > 0 && resp.StatusCode < 500
	node.SetHealthy(healthy)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp),
		}
	}

	return decodeBody(resp.Body, out)
}

// encodeBody prepares the request payload. Raw []byte and string bodies
// pass through untouched (JSONL document import); everything else is JSON.
func encodeBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return b, "text/plain", nil
	case string:
		return []byte(b), "text/plain", nil
	default:
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		return payload, "application/json", nil
	}
}

// decodeBody reads the response into out. A nil out discards the body;
// *string and *[]byte receive the raw payload (JSONL document export).
func decodeBody(r io.Reader, out any) error {
	switch o := out.(type) {
	case nil:
		_, err := io.Copy(io.Discard, r)
		return err
	case *string:
		raw, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		*o = string(raw)
		return nil
	case *[]byte:
		raw, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		*o = raw
		return nil
	default:
		if err := json.NewDecoder(r).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
		return nil
	}
}

// errorMessage extracts the server's error message from a JSON error body,
// falling back to a generic message for non-JSON responses.
func errorMessage(resp *http.Response) string {
	const fallback = "API error."

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return fallback
	}

	// 64KB cap keeps hostile error bodies from exhausting memory.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fallback
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return fallback
	}
	return body.Message
}
