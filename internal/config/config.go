// Package config provides configuration loading for the typeconv command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/wippyai/typeconv/convert"
	"github.com/wippyai/typeconv/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultLogLevel is used when the configuration names no level
const DefaultLogLevel = "warn"

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// LogLevel is one of debug, info, warn or error
	LogLevel string `yaml:"logLevel,omitempty"`

	// Priorities overrides descriptor priorities by converter name
	Priorities map[string]int `yaml:"priorities,omitempty"`

	// Disabled lists converters that are never registered
	Disabled []string `yaml:"disabled,omitempty"`

	// Guest configures the WebAssembly memory converters
	Guest *GuestConfig `yaml:"guest,omitempty"`
}

// GuestConfig defines the guest memory settings
type GuestConfig struct {
	// Enabled registers the guest list converters
	Enabled bool `yaml:"enabled"`

	// MemoryLimitPages caps guest memory growth, 0 for the runtime default
	MemoryLimitPages uint32 `yaml:"memoryLimitPages,omitempty"`
}

// LoadConfig loads and validates configuration. Without a path it returns
// the defaults.
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	config := &Config{}
	if loaderCfg.path != "" {
		data, err := os.ReadFile(loaderCfg.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// GetLogLevel returns the configured level, DefaultLogLevel when unset
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// ZapLevel parses the configured level
func (c *Config) ZapLevel() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.GetLogLevel())
	if err != nil {
		return lvl, errors.Wrap(errors.PhaseConfig, errors.KindInvalidArgument, err, "logLevel")
	}
	return lvl, nil
}

func (c *Config) validate() error {
	if _, err := c.ZapLevel(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Disabled))
	for i, name := range c.Disabled {
		if name == "" {
			return errors.InvalidArgument(errors.PhaseConfig, fmt.Sprintf("disabled[%d]: name is required", i))
		}
		if seen[name] {
			return errors.InvalidArgument(errors.PhaseConfig, fmt.Sprintf("disabled[%d]: duplicate converter name '%s'", i, name))
		}
		seen[name] = true
	}

	for name := range c.Priorities {
		if name == "" {
			return errors.InvalidArgument(errors.PhaseConfig, "priorities: name is required")
		}
	}

	return nil
}

// Apply returns descs with priorities overridden and disabled converters
// removed. Naming a converter that is not in descs is an error.
func (c *Config) Apply(descs []convert.Descriptor) ([]convert.Descriptor, error) {
	known := make(map[string]bool, len(descs))
	for _, d := range descs {
		known[d.Name] = true
	}

	for name := range c.Priorities {
		if !known[name] {
			return nil, errors.New(errors.PhaseConfig, errors.KindInvalidArgument).
				Converter(name).
				Detail("priority override names an unknown converter").
				Build()
		}
	}
	for _, name := range c.Disabled {
		if !known[name] {
			return nil, errors.New(errors.PhaseConfig, errors.KindInvalidArgument).
				Converter(name).
				Detail("disabled list names an unknown converter").
				Build()
		}
	}

	out := make([]convert.Descriptor, 0, len(descs))
	for _, d := range descs {
		if slices.Contains(c.Disabled, d.Name) {
			continue
		}
		if p, ok := c.Priorities[d.Name]; ok {
			d.Priority = p
		}
		out = append(out, d)
	}
	return out, nil
}
