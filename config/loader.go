package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360/semgraph/errors"
)

const (
	// maxConfigSize bounds config files read from disk.
	maxConfigSize = 1 << 20 // 1MB

	// maxPathLen bounds config file paths.
	maxPathLen = 4096
)

// Load reads, parses, and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	if err := validateConfigPath(path); err != nil {
		return nil, errors.WrapInvalid(err, "config", "Load", "path validation")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.WrapTransient(err, "config", "Load", "stat config file")
	}
	if info.Size() > maxConfigSize {
		return nil, errors.WrapInvalid(
			fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigSize),
			"config", "Load", "size check")
	}

	data, err := os.ReadFile(path) // #nosec G304 - path validated above
	if err != nil {
		return nil, errors.WrapTransient(err, "config", "Load", "read config file")
	}

	return Parse(data)
}

// validateConfigPath rejects empty, oversized, and traversing paths, and
// restricts the extension to YAML.
func validateConfigPath(path string) error {
	if path == "" {
		return fmt.Errorf("empty config path")
	}
	if len(path) > maxPathLen {
		return fmt.Errorf("path too long: %d > %d", len(path), maxPathLen)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("cannot resolve absolute path: %w", err)
	}
	if strings.Contains(filepath.ToSlash(absPath), "..") {
		return fmt.Errorf("path traversal not allowed: %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return nil
	default:
		return fmt.Errorf("config file must be .yaml or .yml: %s", path)
	}
}
