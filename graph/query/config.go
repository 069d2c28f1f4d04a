package query

import (
	"fmt"
	"time"

	"github.com/c360/semgraph/errors"
)

// Config configures query execution behavior.
type Config struct {
	// Query evaluation limits.
	Timeout    time.Duration `yaml:"timeout" default:"30s"`
	MaxResults int           `yaml:"max_results" default:"10000"`

	// Result caching.
	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig configures the fingerprint-keyed result cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" default:"true"`
	Size    int  `yaml:"size" default:"100"`
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxResults == 0 {
		c.MaxResults = 10000
	}
	if c.Cache.Size == 0 {
		c.Cache.Size = 100
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		msg := fmt.Sprintf("timeout must be positive, got %v", c.Timeout)
		return errors.WrapInvalid(errors.ErrInvalidConfig, "query manager", "Validate", msg)
	}
	if c.MaxResults <= 0 {
		msg := fmt.Sprintf("max results must be positive, got %d", c.MaxResults)
		return errors.WrapInvalid(errors.ErrInvalidConfig, "query manager", "Validate", msg)
	}
	if c.Cache.Enabled && c.Cache.Size <= 0 {
		msg := fmt.Sprintf("cache size must be positive, got %d", c.Cache.Size)
		return errors.WrapInvalid(errors.ErrInvalidConfig, "query manager", "Validate", msg)
	}
	return nil
}
