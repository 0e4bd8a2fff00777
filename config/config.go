package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/webshell-go/webshell/internal/util"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultPrompt      = "user@webshell"
	DefaultHomePath    = "/home/user"
	DefaultHistorySize = 100

	// DefaultVerbosity maps to info level; see LevelFromVerbosity.
	DefaultVerbosity = 3
)

// Config contains runtime configuration values for a shell session.
type Config struct {
	Prompt      string        // Prompt prefix shown before the cwd (Default "user@webshell")
	HomePath    string        // Path the session treats as home (Default "/home/user")
	HistorySize int           // Maximum retained history entries; 0 disables the cap (Default 100)
	LogLvl      util.LogLevel // Log level derived from verbosity (Default info)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions. Verbose is the 1 (error) to 5 (trace) scale used on the
// command line.
type ConfigOverride struct {
	Prompt      *string `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	HomePath    *string `yaml:"home_path,omitempty" json:"home_path,omitempty"`
	HistorySize *int    `yaml:"history_size,omitempty" json:"history_size,omitempty"`
	Verbose     *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		Prompt:      DefaultPrompt,
		HomePath:    DefaultHomePath,
		HistorySize: DefaultHistorySize,
		LogLvl:      LevelFromVerbosity(DefaultVerbosity),
	}
}

// NewConfig creates a Config from defaults with override applied on top.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config, preserving
// existing values for unset fields.
func (c *Config) Merge(override *ConfigOverride) {
	if override.Prompt != nil {
		c.Prompt = *override.Prompt
	}
	if override.HomePath != nil {
		c.HomePath = *override.HomePath
	}
	if override.HistorySize != nil {
		c.HistorySize = *override.HistorySize
	}
	if override.Verbose != nil {
		c.LogLvl = LevelFromVerbosity(*override.Verbose)
	}
}

// LevelFromVerbosity converts the 1 (error) to 5 (trace) command-line scale
// to a log level, clamping out-of-range values.
func LevelFromVerbosity(verbose int) util.LogLevel {
	if verbose < 1 {
		verbose = 1
	}
	if verbose > 5 {
		verbose = 5
	}
	levels := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return levels[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without
// merging. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with
// defaults.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
