package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shopify "github.com/storekit/shopify-go"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid private config",
			yaml: `
shopify:
  auth_type: private
  api_key: key123
  api_secret: secret456
  store: demo-shop.myshopify.com
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "private", cfg.Shopify.AuthType)
				assert.Equal(t, "key123", cfg.Shopify.APIKey)
				assert.Equal(t, "demo-shop.myshopify.com", cfg.Shopify.Store)
			},
		},
		{
			name: "valid oauth config",
			yaml: `
shopify:
  auth_type: oauth
  api_key: key123
  api_secret: secret456
  redirect_uri: https://app.example.com/callback
  scopes: [read_products, write_orders]
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "oauth", cfg.Shopify.AuthType)
				assert.Equal(t, []string{"read_products", "write_orders"}, cfg.Shopify.Scopes)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
shopify:
  api_key: key123
  api_secret: secret456
  store: demo-shop.myshopify.com
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "private", cfg.Shopify.AuthType)
				assert.Equal(t, "2024-07", cfg.Shopify.APIVersion)
				assert.Equal(t, 30*time.Second, cfg.Shopify.Timeout)
				assert.InDelta(t, 2.0, cfg.Shopify.RateLimit.LeakRate, 0.001)
				assert.Equal(t, 40, cfg.Shopify.RateLimit.Capacity)
				assert.Equal(t, ":8787", cfg.Webhook.Listen)
				assert.Equal(t, "secret456", cfg.Webhook.Secret)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "environment variable substitution",
			yaml: `
shopify:
  api_key: ${TEST_SHOP_KEY}
  api_secret: ${TEST_SHOP_SECRET}
  store: demo-shop.myshopify.com
`,
			envVars: map[string]string{
				"TEST_SHOP_KEY":    "env-key",
				"TEST_SHOP_SECRET": "env-secret",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "env-key", cfg.Shopify.APIKey)
				assert.Equal(t, "env-secret", cfg.Shopify.APISecret)
			},
		},
		{
			name: "missing api key",
			yaml: `
shopify:
  api_secret: secret456
  store: demo-shop.myshopify.com
`,
			wantErr: "shopify.api_key is required",
		},
		{
			name: "missing api secret",
			yaml: `
shopify:
  api_key: key123
  store: demo-shop.myshopify.com
`,
			wantErr: "shopify.api_secret is required",
		},
		{
			name: "private without store",
			yaml: `
shopify:
  auth_type: private
  api_key: key123
  api_secret: secret456
`,
			wantErr: "shopify.store is required",
		},
		{
			name: "oauth without redirect uri",
			yaml: `
shopify:
  auth_type: oauth
  api_key: key123
  api_secret: secret456
`,
			wantErr: "shopify.redirect_uri is required",
		},
		{
			name: "unknown auth type",
			yaml: `
shopify:
  auth_type: apikey
  api_key: key123
  api_secret: secret456
`,
			wantErr: "auth_type must be private or oauth",
		},
		{
			name:    "invalid YAML",
			yaml:    "shopify: [not a map",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestShopifyConfig_Client(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     ShopifyConfig
		wantErr bool
		check   func(t *testing.T, c *shopify.Client)
	}{
		{
			name: "private with rate limit settings",
			cfg: ShopifyConfig{
				AuthType:  "private",
				APIKey:    "key123",
				APISecret: "secret456",
				Store:     "demo-shop.myshopify.com",
				Timeout:   5 * time.Second,
				RateLimit: RateLimitConfig{LeakRate: 4.0, Capacity: 80},
			},
			check: func(t *testing.T, c *shopify.Client) {
				t.Helper()
				// The configured bucket reaches the limiter.
				assert.Equal(t, 80, c.RateLimits().Capacity)
			},
		},
		{
			name: "oauth",
			cfg: ShopifyConfig{
				AuthType:    "oauth",
				APIKey:      "key123",
				APISecret:   "secret456",
				RedirectURI: "https://app.example.com/callback",
				Scopes:      []string{"read_products"},
			},
			check: func(t *testing.T, c *shopify.Client) {
				t.Helper()
				_, err := c.AuthorizeURL("demo-shop.myshopify.com", nil)
				assert.NoError(t, err)
			},
		},
		{
			name: "invalid credentials rejected",
			cfg: ShopifyConfig{
				AuthType: "oauth",
				APIKey:   "key123",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := tt.cfg.Client()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
