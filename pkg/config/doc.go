// Package config parses and validates client configuration for the search
// service: the node pool, the optional nearest node, the API key, and the
// retry/timeout tuning knobs consumed by the transport layer.
//
// A Config can come from three places: built in code, loaded from the
// environment (FromEnv, with optional .env autoloading), or loaded from a
// YAML file (FromFile). All three converge on New, which warns about
// deprecated keys, validates the shape, and resolves every node entry into
// a canonical Node value. Construction does no I/O.
//
// # Usage
//
//	conf, err := config.New(config.Config{
//	    Nodes:  []config.NodeConfig{config.NodeURL("http://localhost:8108")},
//	    APIKey: "xyz",
//	})
//	if err != nil {
//	    // use errors.Is(err, config.ErrInvalidConfig)
//	}
//
// Node health state is owned by Node itself and mutated by the transport
// layer; everything else on Configuration is immutable after New returns.
package config
