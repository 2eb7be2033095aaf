package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of a Config. Durations are written in Go
// syntax ("5s", "250ms") and parsed through the duration shim below.
type fileConfig struct {
	Nodes       []NodeConfig `yaml:"nodes"`
	NearestNode *NodeConfig  `yaml:"nearest_node"`
	APIKey      string       `yaml:"api_key"`

	ConnectionTimeout   duration `yaml:"connection_timeout"`
	NumRetries          int      `yaml:"num_retries"`
	RetryInterval       duration `yaml:"retry_interval"`
	HealthcheckInterval duration `yaml:"healthcheck_interval"`
	InsecureSkipVerify  bool     `yaml:"insecure_skip_verify"`

	TimeoutSeconds   float64      `yaml:"timeout_seconds"`
	MasterNode       *NodeConfig  `yaml:"master_node"`
	ReadReplicaNodes []NodeConfig `yaml:"read_replica_nodes"`
}

// FromFile builds a Config from a YAML file. Node entries may be written
// either as plain URL strings or as host/port/protocol mappings:
//
//	api_key: xyz
//	nodes:
//	  - http://localhost:8108
//	  - host: replica
//	    port: 8108
//	    protocol: https
func FromFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	return Config{
		Nodes:               fc.Nodes,
		NearestNode:         fc.NearestNode,
		APIKey:              fc.APIKey,
		ConnectionTimeout:   time.Duration(fc.ConnectionTimeout),
		NumRetries:          fc.NumRetries,
		RetryInterval:       time.Duration(fc.RetryInterval),
		HealthcheckInterval: time.Duration(fc.HealthcheckInterval),
		InsecureSkipVerify:  fc.InsecureSkipVerify,
		TimeoutSeconds:      fc.TimeoutSeconds,
		MasterNode:          fc.MasterNode,
		ReadReplicaNodes:    fc.ReadReplicaNodes,
	}, nil
}

// UnmarshalYAML accepts both forms of a node entry, resolving the string
// form into the URL field and the mapping form into the record fields.
func (nc *NodeConfig) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var rawURL string
		if err := value.Decode(&rawURL); err != nil {
			return err
		}
		*nc = NodeConfig{URL: rawURL}
		return nil
	case yaml.MappingNode:
		// Alias type sheds the custom unmarshaler to avoid recursion.
		type plain NodeConfig
		var record plain
		if err := value.Decode(&record); err != nil {
			return err
		}
		*nc = NodeConfig(record)
		return nil
	default:
		return fmt.Errorf("%w: node entry must be a URL string or a mapping", ErrInvalidConfig)
	}
}

type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid duration %q", ErrInvalidConfig, raw)
	}
	*d = duration(parsed)
	return nil
}
