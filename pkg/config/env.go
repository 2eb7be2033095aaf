package config

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// envConfig maps the environment variable surface onto the Config shape.
// Node entries are URL strings; the record form is only reachable through
// code or a config file.
type envConfig struct {
	Nodes       []string `env:"SEARCHKIT_NODES,required"`
	NearestNode string   `env:"SEARCHKIT_NEAREST_NODE"`
	APIKey      string   `env:"SEARCHKIT_API_KEY,required,notEmpty"`

	ConnectionTimeout   time.Duration `env:"SEARCHKIT_CONNECTION_TIMEOUT" envDefault:"3s"`
	NumRetries          int           `env:"SEARCHKIT_NUM_RETRIES" envDefault:"3"`
	RetryInterval       time.Duration `env:"SEARCHKIT_RETRY_INTERVAL" envDefault:"1s"`
	HealthcheckInterval time.Duration `env:"SEARCHKIT_HEALTHCHECK_INTERVAL" envDefault:"60s"`
	InsecureSkipVerify  bool          `env:"SEARCHKIT_INSECURE_SKIP_VERIFY" envDefault:"false"`
}

// FromEnv builds a Config from environment variables. A .env file in the
// working directory is loaded once per process if present; node URLs are
// comma separated in SEARCHKIT_NODES.
func FromEnv() (Config, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	cfg := Config{
		APIKey:              ec.APIKey,
		ConnectionTimeout:   ec.ConnectionTimeout,
		NumRetries:          ec.NumRetries,
		RetryInterval:       ec.RetryInterval,
		HealthcheckInterval: ec.HealthcheckInterval,
		InsecureSkipVerify:  ec.InsecureSkipVerify,
	}
	for _, rawURL := range ec.Nodes {
		cfg.Nodes = append(cfg.Nodes, NodeURL(rawURL))
	}
	if ec.NearestNode != "" {
		nearest := NodeURL(ec.NearestNode)
		cfg.NearestNode = &nearest
	}

	return cfg, nil
}
