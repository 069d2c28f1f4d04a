// Package config loads and validates the engine configuration from YAML
// files. A SafeConfig wrapper provides thread-safe access for callers
// that reload configuration at runtime.
package config

import (
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/graph/query"
)

// Config is the complete engine configuration.
type Config struct {
	// Version is the semantic version of the config schema.
	Version string `yaml:"version"`

	Logging LoggingConfig `yaml:"logging"`
	Query   query.Config  `yaml:"query"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0.0"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	c.Query.SetDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		msg := fmt.Sprintf("unknown log level %q", c.Logging.Level)
		return errors.WrapInvalid(errors.ErrInvalidConfig, "config", "Validate", msg)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		msg := fmt.Sprintf("unknown log format %q", c.Logging.Format)
		return errors.WrapInvalid(errors.ErrInvalidConfig, "config", "Validate", msg)
	}

	if c.Query.Timeout != 0 && c.Query.Timeout < queryTimeoutFloor {
		msg := fmt.Sprintf("query timeout %v is below %v; bare integers decode as nanoseconds", c.Query.Timeout, queryTimeoutFloor)
		return errors.WrapInvalid(errors.ErrInvalidConfig, "config", "Validate", msg)
	}

	return c.Query.Validate()
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}
	copied := *c
	return &copied
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// Parse decodes YAML into a validated configuration with defaults
// applied.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapInvalid(err, "config", "Parse", "YAML decode")
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SafeConfig provides thread-safe access to configuration.
type SafeConfig struct {
	mu     sync.RWMutex
	config *Config
}

// NewSafeConfig creates a thread-safe config wrapper.
func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = Default()
	}
	return &SafeConfig{config: cfg}
}

// Get returns a copy of the current configuration.
func (sc *SafeConfig) Get() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config.Clone()
}

// Update atomically replaces the configuration after validation.
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return errors.WrapInvalid(errors.ErrMissingConfig, "config", "Update", "nil config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
	return nil
}

// queryTimeoutFloor guards against configs expressing timeouts in bare
// integers, which YAML decodes as nanoseconds.
const queryTimeoutFloor = time.Millisecond
