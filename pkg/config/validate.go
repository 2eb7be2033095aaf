package config

import (
	"fmt"
	"log/slog"
)

// Validate checks the raw configuration for completeness. Checks run in a
// fixed order and the first failure wins: nodes presence, api key presence,
// per-node shape, nearest node shape. Every failure wraps ErrInvalidConfig.
func (c Config) Validate() error {
	if len(c.Nodes) == 0 {
		return fmt.Errorf("%w: `nodes` is not defined.", ErrInvalidConfig)
	}

	if c.APIKey == "" {
		return fmt.Errorf("%w: `api_key` is not defined.", ErrInvalidConfig)
	}

	for _, node := range c.Nodes {
		if !node.Valid() {
			return fmt.Errorf(
				"%w: `node` entry must be a URL string or a dictionary with the following required keys: host, port, protocol",
				ErrInvalidConfig,
			)
		}
	}

	if c.NearestNode != nil && !c.NearestNode.Valid() {
		return fmt.Errorf(
			"%w: `nearest_node` entry must be a URL string or a dictionary with the following required keys: host, port, protocol",
			ErrInvalidConfig,
		)
	}

	return nil
}

// warnDeprecated emits one warning per deprecated key present. The checks
// are independent, so several warnings may fire for a single Config.
func (c Config) warnDeprecated(logger *slog.Logger) {
	if c.TimeoutSeconds != 0 {
		logger.Warn("Deprecation warning: timeout_seconds is now renamed to connection_timeout")
	}
	if c.MasterNode != nil {
		logger.Warn("Deprecation warning: master_node is now consolidated to nodes")
	}
	if len(c.ReadReplicaNodes) != 0 {
		logger.Warn("Deprecation warning: read_replica_nodes is now consolidated to nodes")
	}
}
