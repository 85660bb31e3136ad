// Package config loads pasters settings from defaults, an optional YAML file
// and the environment, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tombowditch/pasters/client"
)

const (
	// Emulator defaults
	HTTPAddr       = "127.0.0.1:3334"
	MaxPayloadSize = 5_000_000 // 5MB
	RedisPassword  = ""
	RedisDB        = 0
	PasteTTL       = 72 * time.Hour

	// DefaultConfigFile is relative to the user config directory.
	DefaultConfigFile = "pasters/config.yaml"
)

// Environment variables that override the config file.
const (
	EnvConfig     = "PASTERS_CONFIG"
	EnvBaseURL    = "PASTERS_BASE_URL"
	EnvRedisURI   = "REDIS_URI"
	EnvTrustProxy = "TRUST_PROXY"
)

// Serve configures the local emulator.
type Serve struct {
	Addr           string `yaml:"addr"`
	Public         string `yaml:"public_url,omitempty"`
	RedisURI       string `yaml:"redis_uri,omitempty"`
	MaxPayloadSize int    `yaml:"max_payload_size"`

	// TrustProxy makes the emulator key rate limits on X-Forwarded-For and
	// X-Real-IP. Only enable it behind a reverse proxy; the headers are
	// trivially spoofed otherwise.
	TrustProxy bool `yaml:"trust_proxy"`
}

// Config represents the contents of the config file.
type Config struct {
	BaseURL string `yaml:"base_url"`
	Serve   Serve  `yaml:"serve"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL: client.DefaultBaseURL,
		Serve: Serve{
			Addr:           HTTPAddr,
			MaxPayloadSize: MaxPayloadSize,
		},
	}
}

// Path returns the config file to read: path if set, then $PASTERS_CONFIG,
// then the default location under the user config directory.
func Path(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determining config directory: %w", err)
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// Load reads the config at path (see Path) and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != "" || os.Getenv(EnvConfig) != ""
	path, err := Path(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvRedisURI); v != "" {
		c.Serve.RedisURI = v
	}
	if os.Getenv(EnvTrustProxy) == "true" {
		c.Serve.TrustProxy = true
	}
}

// Validate checks the values that have no usable fallback.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.Serve.MaxPayloadSize <= 0 {
		return fmt.Errorf("serve.max_payload_size must be positive, got %d", c.Serve.MaxPayloadSize)
	}
	return nil
}

// BaseURL is the base URL the emulator puts in its responses.
func (s Serve) BaseURL() string {
	if s.Public != "" {
		return strings.TrimSuffix(s.Public, "/") + "/"
	}
	return "http://" + s.Addr + "/"
}
