// Package config handles loading and managing focus configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ConfigFilename is the name of the config file, looked up in the current
// directory and then the home directory.
const ConfigFilename = ".focus.yaml"

// Config represents the .focus.yaml configuration file.
type Config struct {
	Session  SessionConfig  `yaml:"session" mapstructure:"session"`
	Blocker  BlockerConfig  `yaml:"blocker" mapstructure:"blocker"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Prompt   PromptConfig   `yaml:"prompt" mapstructure:"prompt"`
	Lock     LockConfig     `yaml:"lock" mapstructure:"lock"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`

	// Internal: path to the config file
	configPath string
}

// SessionConfig holds session timing configuration.
type SessionConfig struct {
	DefaultMinutes   int      `yaml:"default_minutes" mapstructure:"default_minutes"`
	DurationCeiling  int      `yaml:"duration_ceiling" mapstructure:"duration_ceiling"`
	ExtensionCeiling int      `yaml:"extension_ceiling" mapstructure:"extension_ceiling"`
	FallbackMinutes  int      `yaml:"fallback_minutes" mapstructure:"fallback_minutes"`
	DefaultSites     []string `yaml:"default_sites" mapstructure:"default_sites"`
}

// BlockerConfig holds the external website blocker configuration.
type BlockerConfig struct {
	Command string `yaml:"command" mapstructure:"command"`
	Profile string `yaml:"profile" mapstructure:"profile"`
}

// AnalysisConfig holds the external analysis generator configuration.
type AnalysisConfig struct {
	Command string `yaml:"command" mapstructure:"command"`
	Script  string `yaml:"script" mapstructure:"script"`
}

// PromptConfig holds prompt timeout behavior.
type PromptConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxRetries     int `yaml:"max_retries" mapstructure:"max_retries"`
}

// LockConfig holds the single-instance lock configuration.
type LockConfig struct {
	Path            string `yaml:"path" mapstructure:"path"`
	StaleAfterHours int    `yaml:"stale_after_hours" mapstructure:"stale_after_hours"`
}

// LogConfig holds the session log store configuration.
type LogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// Load finds and loads .focus.yaml, falling back to defaults when absent.
func Load() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return DefaultConfig(), nil
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.configPath = configPath
	return MergeWithDefaults(&cfg), nil
}

// LoadOrDefault tries to load config, returns defaults if loading fails.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// FindConfigFile looks for .focus.yaml in the current directory, then the
// home directory. FOCUS_CONFIG overrides the search.
func FindConfigFile() (string, error) {
	if envPath := os.Getenv("FOCUS_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("FOCUS_CONFIG points to %s, which does not exist", envPath)
	}

	if cwd, err := os.Getwd(); err == nil {
		configPath := filepath.Join(cwd, ConfigFilename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}

	configPath := filepath.Join(home, ConfigFilename)
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	return "", fmt.Errorf("%s not found in current or home directory", ConfigFilename)
}

// Exists checks if a .focus.yaml file can be found.
func Exists() bool {
	_, err := FindConfigFile()
	return err == nil
}

// ConfigPath returns the path to the loaded config file.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// PromptTimeout returns the prompt timeout as a duration.
func (c *Config) PromptTimeout() time.Duration {
	return time.Duration(c.Prompt.TimeoutSeconds) * time.Second
}

// StaleAfter returns the lock staleness threshold as a duration.
func (c *Config) StaleAfter() time.Duration {
	return time.Duration(c.Lock.StaleAfterHours) * time.Hour
}

// LockTimePath returns the sibling path recording the lock acquisition time.
func (c *Config) LockTimePath() string {
	return c.Lock.Path + ".time"
}

// ExpandHome expands a leading ~ in a path to the user home directory.
func ExpandHome(path string) string {
	if path == "~" || len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
