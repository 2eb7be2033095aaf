package config

import (
	"log/slog"
	"time"
)

// Default tuning values applied by New when the corresponding Config field
// is left unset.
const (
	DefaultConnectionTimeout   = 3 * time.Second
	DefaultNumRetries          = 3
	DefaultRetryInterval       = time.Second
	DefaultHealthcheckInterval = 60 * time.Second
)

// NodeConfig describes one node entry in its raw, caller-supplied form:
// either a URL string or a structured record with host, port, and protocol.
// Exactly one form should be populated; the URL form wins when both are set.
type NodeConfig struct {
	URL string `yaml:"-"`

	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Protocol string `yaml:"protocol"`
	Path     string `yaml:"path,omitempty"`
}

// NodeURL returns a NodeConfig in URL form.
func NodeURL(rawURL string) NodeConfig {
	return NodeConfig{URL: rawURL}
}

// Valid reports whether the entry is usable: a non-empty URL string, or a
// record carrying at least host, port, and protocol.
func (nc NodeConfig) Valid() bool {
	if nc.URL != "" {
		return true
	}
	return nc.Host != "" && nc.Port != 0 && nc.Protocol != ""
}

// resolve turns the raw entry into a canonical Node value. Validation has
// already run, so record form only needs the empty-path default.
func (nc NodeConfig) resolve() (*Node, error) {
	if nc.URL != "" {
		return NodeFromURL(nc.URL)
	}
	return NewNode(nc.Host, nc.Port, nc.Path, nc.Protocol), nil
}

// Config is the caller-supplied client configuration. Zero values for the
// tuning fields mean "use the default".
type Config struct {
	Nodes       []NodeConfig
	NearestNode *NodeConfig
	APIKey      string

	ConnectionTimeout   time.Duration
	NumRetries          int
	RetryInterval       time.Duration
	HealthcheckInterval time.Duration

	// InsecureSkipVerify disables TLS certificate verification. Leave false
	// outside of local development.
	InsecureSkipVerify bool

	// Deprecated fields. Accepted and warned about, ignored for behavior.

	// Deprecated: use ConnectionTimeout.
	TimeoutSeconds float64
	// Deprecated: master nodes are consolidated into Nodes.
	MasterNode *NodeConfig
	// Deprecated: read replicas are consolidated into Nodes.
	ReadReplicaNodes []NodeConfig
}

// Configuration is the resolved, validated form of a Config: every node
// entry parsed into a canonical Node plus effective tuning values. It is
// immutable after construction except through the health state of the Node
// values it owns. Construction performs no network activity.
type Configuration struct {
	Nodes       []*Node
	NearestNode *Node
	APIKey      string

	ConnectionTimeout   time.Duration
	NumRetries          int
	RetryInterval       time.Duration
	HealthcheckInterval time.Duration
	InsecureSkipVerify  bool
}

// Option customizes Configuration construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for deprecation warnings. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New resolves and validates a Config. Deprecation warnings are emitted
// first, then validation runs; a validation failure aborts construction
// before any Node is built.
func New(cfg Config, opts ...Option) (*Configuration, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	cfg.warnDeprecated(o.logger)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conf := &Configuration{
		APIKey:              cfg.APIKey,
		ConnectionTimeout:   cfg.ConnectionTimeout,
		NumRetries:          cfg.NumRetries,
		RetryInterval:       cfg.RetryInterval,
		HealthcheckInterval: cfg.HealthcheckInterval,
		InsecureSkipVerify:  cfg.InsecureSkipVerify,
	}

	if conf.ConnectionTimeout <= 0 {
		conf.ConnectionTimeout = DefaultConnectionTimeout
	}
	if conf.NumRetries <= 0 {
		conf.NumRetries = DefaultNumRetries
	}
	if conf.RetryInterval <= 0 {
		conf.RetryInterval = DefaultRetryInterval
	}
	if conf.HealthcheckInterval <= 0 {
		conf.HealthcheckInterval = DefaultHealthcheckInterval
	}

	conf.Nodes = make([]*Node, 0, len(cfg.Nodes))
	for _, nc := range cfg.Nodes {
		node, err := nc.resolve()
		if err != nil {
			return nil, err
		}
		conf.Nodes = append(conf.Nodes, node)
	}

	if cfg.NearestNode != nil && cfg.NearestNode.Valid() {
		node, err := cfg.NearestNode.resolve()
		if err != nil {
			return nil, err
		}
		conf.NearestNode = node
	}

	return conf, nil
}
