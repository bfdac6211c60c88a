package types

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Environment variables that override the backend settings.
const (
	EnvBackendURL = "NEXT_PUBLIC_BACKEND_URL"
	EnvAPIKey     = "NEXT_PUBLIC_API_KEY"
)

const (
	DefaultServerAddress     = "localhost:8000"
	DefaultSessionTTLSeconds = 1800
)

type Config struct {
	Backend BackendSettings `yaml:"backend"`
	Server  ServerSettings  `yaml:"server"`
}

type BackendSettings struct {
	BaseURL string `yaml:"base-url"`
	APIKey  string `yaml:"api-key"`
}

type ServerSettings struct {
	Address        string   `yaml:"address"`
	TrustedProxies []string `yaml:"trusted-proxies"`
	AllowedOrigins []string `yaml:"allowed-origins"`
	SessionTTL     int      `yaml:"session-ttl"` // seconds
}

// ApplyEnv overrides backend settings with the NEXT_PUBLIC_* variables when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBackendURL); v != "" {
		c.Backend.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvAPIKey); ok {
		c.Backend.APIKey = v
	}
}

// SetDefaults fills unset server settings.
func (c *Config) SetDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = DefaultServerAddress
	}
	if c.Server.SessionTTL == 0 {
		c.Server.SessionTTL = DefaultSessionTTLSeconds
	}
}

// Validate ensures the backend can be reached and server settings are sane.
func (c *Config) Validate() error {
	if err := c.Backend.Validate(); err != nil {
		return fmt.Errorf("invalid backend settings: %w", err)
	}
	if c.Server.SessionTTL < 0 {
		return fmt.Errorf("session-ttl cannot be negative")
	}
	return nil
}

func (b *BackendSettings) Validate() error {
	if strings.TrimSpace(b.BaseURL) == "" {
		return fmt.Errorf("base-url is required (or set %s)", EnvBackendURL)
	}
	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("base-url %q: %w", b.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base-url %q must use http or https", b.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base-url %q has no host", b.BaseURL)
	}
	return nil
}
