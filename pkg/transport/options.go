package transport

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/searchkit/pkg/config"
)

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
	backoff    BackoffStrategy
	userAgent  string
}

func defaultOptions(conf *config.Configuration) *options {
	return &options{
		logger:    slog.Default(),
		backoff:   FixedBackoff{Interval: conf.RetryInterval},
		userAgent: defaultUserAgent,
	}
}

// Option configures the transport client.
type Option func(*options)

// WithHTTPClient sets a custom HTTP client. Useful for custom transports,
// proxies, or testing. TLS verification settings from the configuration are
// not applied to a custom client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLogger sets the logger for attempt and node health debug lines.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBackoff replaces the fixed retry interval with a custom strategy,
// such as ExponentialBackoff.
func WithBackoff(strategy BackoffStrategy) Option {
	return func(o *options) {
		if strategy != nil {
			o.backoff = strategy
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}
