// Package config handles loading and validating the application
// configuration from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	shopify "github.com/storekit/shopify-go"
)

// Config is the top-level application configuration used by the CLI and
// the webhook listener.
type Config struct {
	Shopify ShopifyConfig `yaml:"shopify"`
	Webhook WebhookConfig `yaml:"webhook"`
	Logging LoggingConfig `yaml:"logging"`
}

// ShopifyConfig defines Admin API credentials and client settings.
type ShopifyConfig struct {
	AuthType    string          `yaml:"auth_type"` // private, oauth
	APIKey      string          `yaml:"api_key"`
	APISecret   string          `yaml:"api_secret"`
	Store       string          `yaml:"store"`
	RedirectURI string          `yaml:"redirect_uri"`
	Scopes      []string        `yaml:"scopes"`
	APIVersion  string          `yaml:"api_version"`
	Timeout     time.Duration   `yaml:"timeout"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines client-side pacing against the platform's
// leaky bucket.
type RateLimitConfig struct {
	LeakRate float64 `yaml:"leak_rate"` // calls restored per second
	Capacity int     `yaml:"capacity"`  // bucket size
}

// WebhookConfig defines the webhook listener settings.
type WebhookConfig struct {
	Listen string `yaml:"listen"`
	// Secret overrides the app secret for signature checks; empty means
	// use shopify.api_secret.
	Secret string `yaml:"secret"`
	// DiscordWebhookURL enables forwarding verified deliveries to a
	// Discord channel. Empty disables forwarding.
	DiscordWebhookURL string `yaml:"discord_webhook_url"`
}

// Client builds an Admin API client from the section's credentials and
// settings, feeding the version, timeout, and rate-limit fields through
// as client options. Zero values fall back to the client's own defaults.
// Additional options are appended last so callers can override.
func (s ShopifyConfig) Client(opts ...shopify.Option) (*shopify.Client, error) {
	app := shopify.App{
		Type:        shopify.AuthType(s.AuthType),
		APIKey:      s.APIKey,
		APISecret:   s.APISecret,
		Store:       s.Store,
		RedirectURI: s.RedirectURI,
		Scopes:      s.Scopes,
	}

	var built []shopify.Option
	if s.APIVersion != "" {
		built = append(built, shopify.WithAPIVersion(s.APIVersion))
	}
	if s.Timeout > 0 {
		built = append(built, shopify.WithHTTPClient(&http.Client{Timeout: s.Timeout}))
	}
	if s.RateLimit.LeakRate > 0 && s.RateLimit.Capacity > 0 {
		limiter := shopify.NewRateLimiter(s.RateLimit.LeakRate, s.RateLimit.Capacity)
		built = append(built, shopify.WithRateLimiter(limiter))
	}
	built = append(built, opts...)

	return shopify.New(app, built...)
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment
// variable substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	s := &cfg.Shopify
	if s.AuthType == "" {
		s.AuthType = "private"
	}
	if s.APIVersion == "" {
		s.APIVersion = "2024-07"
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.RateLimit.LeakRate == 0 {
		s.RateLimit.LeakRate = 2.0
	}
	if s.RateLimit.Capacity == 0 {
		s.RateLimit.Capacity = 40
	}

	if cfg.Webhook.Listen == "" {
		cfg.Webhook.Listen = ":8787"
	}
	if cfg.Webhook.Secret == "" {
		cfg.Webhook.Secret = s.APISecret
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

func validate(cfg *Config) error {
	s := cfg.Shopify

	if s.APIKey == "" {
		return errors.New("shopify.api_key is required")
	}
	if s.APISecret == "" {
		return errors.New("shopify.api_secret is required")
	}

	switch s.AuthType {
	case "private":
		if s.Store == "" {
			return errors.New("shopify.store is required for private auth")
		}
	case "oauth":
		if s.RedirectURI == "" {
			return errors.New("shopify.redirect_uri is required for oauth auth")
		}
	default:
		return fmt.Errorf("shopify.auth_type must be private or oauth, got %q", s.AuthType)
	}

	return nil
}
