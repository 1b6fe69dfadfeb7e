package bootstrap

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/queuectl/queuectl"
)

// Config is the shape of queuectl.toml. Every field is optional; a
// missing or empty field falls back to the hardcoded defaults in the
// root package.
type Config struct {
	DefaultMaxRetries *uint32 `toml:"default_max_retries"`
	BackoffBase       *int    `toml:"backoff_base"`
	JobTimeoutSeconds *int    `toml:"job_timeout_seconds"`
	WorkerCount       *int    `toml:"worker_count"`
}

// Load reads path and decodes it as TOML. A missing file is not an
// error: it returns a zero-value Config, meaning "use every hardcoded
// default."
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("bootstrap: read %s: %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("bootstrap: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// SeedValues returns the key-value pairs that should be written to the
// store's config table on first Init, falling back to
// queuectl.DefaultConfig for any field c left unset.
func (c *Config) SeedValues() map[string]string {
	values := queuectl.DefaultConfig()
	if c == nil {
		return values
	}
	if c.DefaultMaxRetries != nil {
		values[queuectl.ConfigDefaultMaxRetries] = fmt.Sprintf("%d", *c.DefaultMaxRetries)
	}
	if c.BackoffBase != nil {
		values[queuectl.ConfigBackoffBase] = fmt.Sprintf("%d", *c.BackoffBase)
	}
	if c.JobTimeoutSeconds != nil {
		values[queuectl.ConfigJobTimeout] = fmt.Sprintf("%d", *c.JobTimeoutSeconds)
	}
	return values
}

// DefaultWorkerCount returns the configured worker count for `worker
// start`, or fall back if unset.
func (c *Config) DefaultWorkerCount(fallback int) int {
	if c == nil || c.WorkerCount == nil {
		return fallback
	}
	return *c.WorkerCount
}
