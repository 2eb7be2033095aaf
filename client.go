package searchkit

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/searchkit/pkg/config"
	"github.com/dmitrymomot/searchkit/pkg/transport"
)

// Client is the entry point to the search service API. It owns the shared
// transport handle that every resource wrapper delegates to; the wrappers
// themselves are cheap and stateless beyond their identity.
type Client struct {
	api         *transport.Client
	collections *Collections
}

type clientOptions struct {
	logger     *slog.Logger
	httpClient *http.Client
	backoff    transport.BackoffStrategy
	userAgent  string
}

// Option configures client construction.
type Option func(*clientOptions)

// WithLogger sets the logger used for deprecation warnings and transport
// debug lines. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

// WithHTTPClient sets a custom HTTP client for all requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = client }
}

// WithBackoff replaces the default fixed retry interval.
func WithBackoff(strategy transport.BackoffStrategy) Option {
	return func(o *clientOptions) { o.backoff = strategy }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// New validates the configuration and builds a ready-to-use client.
// Construction performs no network activity; the first request happens
// when a resource operation is called.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	var confOpts []config.Option
	if o.logger != nil {
		confOpts = append(confOpts, config.WithLogger(o.logger))
	}

	conf, err := config.New(cfg, confOpts...)
	if err != nil {
		return nil, err
	}

	var transportOpts []transport.Option
	if o.logger != nil {
		transportOpts = append(transportOpts, transport.WithLogger(o.logger))
	}
	if o.httpClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(o.httpClient))
	}
	if o.backoff != nil {
		transportOpts = append(transportOpts, transport.WithBackoff(o.backoff))
	}
	if o.userAgent != "" {
		transportOpts = append(transportOpts, transport.WithUserAgent(o.userAgent))
	}

	api := transport.New(conf, transportOpts...)

	return &Client{
		api:         api,
		collections: newCollections(api),
	}, nil
}

// Collections returns the collections resource.
func (c *Client) Collections() *Collections {
	return c.collections
}

// Collection returns the wrapper for a single collection by name.
func (c *Client) Collection(name string) *Collection {
	return c.collections.Get(name)
}

// HealthStatus is the response of the service health endpoint.
type HealthStatus struct {
	Ok bool `json:"ok"`
}

// Health reports whether the service is up. Suitable for liveness and
// readiness probes.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var status HealthStatus
	if err := c.api.Get(ctx, healthPath, nil, &status); err != nil {
		return HealthStatus{}, err
	}
	return status, nil
}
