// Package config manages GitWhisperer's persisted configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gitwhisperer/gitwhisperer/paths"
)

// Defaults applied when the config file is missing or fields are unset.
const (
	DefaultBackendPort    = 8000
	DefaultCommitStyle    = "conventional"
	DefaultMaxLength      = 50
	DefaultTimeoutSeconds = 30
)

// Environment variables that override file values.
const (
	EnvAPIKey      = "OPENAI_API_KEY"
	EnvBackendPort = "GITWHISPERER_BACKEND_PORT"
)

// Config holds the application configuration, persisted as config.yaml.
type Config struct {
	APIKey                string `yaml:"api_key,omitempty"`
	BackendPort           int    `yaml:"backend_port"`
	CommitStyle           string `yaml:"commit_style"`
	MaxMessageLength      int    `yaml:"max_message_length"`
	BackendTimeoutSeconds int    `yaml:"backend_timeout_seconds"`
	WelcomeShown          bool   `yaml:"welcome_shown"`

	mu       sync.RWMutex
	filePath string
}

// Load reads the config from disk, or creates one with defaults if it
// doesn't exist. Environment variables override file values.
func Load() (*Config, error) {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path (used by tests).
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		BackendPort:           DefaultBackendPort,
		CommitStyle:           DefaultCommitStyle,
		MaxMessageLength:      DefaultMaxLength,
		BackendTimeoutSeconds: DefaultTimeoutSeconds,
		filePath:              path,
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills zero-valued fields after unmarshaling.
// Not thread-safe; only called during Load before the config is shared.
func (c *Config) applyDefaults() {
	if c.BackendPort == 0 {
		c.BackendPort = DefaultBackendPort
	}
	if c.CommitStyle == "" {
		c.CommitStyle = DefaultCommitStyle
	}
	if c.MaxMessageLength == 0 {
		c.MaxMessageLength = DefaultMaxLength
	}
	if c.BackendTimeoutSeconds == 0 {
		c.BackendTimeoutSeconds = DefaultTimeoutSeconds
	}
}

// applyEnvironment overlays environment variables onto the loaded values.
func (c *Config) applyEnvironment() {
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.APIKey = key
	}
	if port := os.Getenv(EnvBackendPort); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.BackendPort = p
		}
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.BackendPort < 1 || c.BackendPort > 65535 {
		return fmt.Errorf("backend_port %d out of range", c.BackendPort)
	}
	if c.MaxMessageLength < 1 {
		return fmt.Errorf("max_message_length must be positive, got %d", c.MaxMessageLength)
	}
	if c.BackendTimeoutSeconds < 1 {
		return fmt.Errorf("backend_timeout_seconds must be positive, got %d", c.BackendTimeoutSeconds)
	}
	return nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// SetFilePath sets the config file path (for testing).
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetAPIKey returns the configured API key.
func (c *Config) GetAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.APIKey
}

// SetAPIKey overrides the API key for this process (e.g. from a flag).
func (c *Config) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIKey = key
}

// GetBackendPort returns the backend port.
func (c *Config) GetBackendPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BackendPort
}

// SetBackendPort overrides the backend port for this process.
func (c *Config) SetBackendPort(port int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BackendPort = port
}

// GetCommitStyle returns the commit message style (e.g. "conventional").
func (c *Config) GetCommitStyle() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.CommitStyle
}

// GetMaxMessageLength returns the requested maximum commit summary length.
func (c *Config) GetMaxMessageLength() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.MaxMessageLength
}

// BackendTimeout returns the bound for generation requests.
func (c *Config) BackendTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.BackendTimeoutSeconds) * time.Second
}

// HasSeenWelcome returns whether the welcome message has been shown.
func (c *Config) HasSeenWelcome() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown marks the welcome message as shown. Idempotent.
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}
