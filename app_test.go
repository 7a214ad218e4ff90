package shopify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shopify "github.com/storekit/shopify-go"
)

func TestAppValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		app     shopify.App
		wantErr string
	}{
		{
			name: "valid private app",
			app: shopify.App{
				Type:      shopify.AuthPrivate,
				APIKey:    "key",
				APISecret: "secret",
				Store:     "demo-shop.myshopify.com",
			},
		},
		{
			name: "valid oauth app",
			app: shopify.App{
				Type:        shopify.AuthOAuth,
				APIKey:      "key",
				APISecret:   "secret",
				RedirectURI: "https://app.example.com/callback",
			},
		},
		{
			name: "missing api key",
			app: shopify.App{
				Type:      shopify.AuthPrivate,
				APISecret: "secret",
				Store:     "demo-shop.myshopify.com",
			},
			wantErr: "api key is required",
		},
		{
			name: "private app missing api secret",
			app: shopify.App{
				Type:   shopify.AuthPrivate,
				APIKey: "key",
				Store:  "demo-shop.myshopify.com",
			},
			wantErr: "api secret is required",
		},
		{
			name: "private app missing store",
			app: shopify.App{
				Type:      shopify.AuthPrivate,
				APIKey:    "key",
				APISecret: "secret",
			},
			wantErr: "store is required",
		},
		{
			name: "oauth app missing redirect uri",
			app: shopify.App{
				Type:      shopify.AuthOAuth,
				APIKey:    "key",
				APISecret: "secret",
			},
			wantErr: "redirect uri is required",
		},
		{
			name: "unknown auth type",
			app: shopify.App{
				Type:      shopify.AuthType("apikey"),
				APIKey:    "key",
				APISecret: "secret",
			},
			wantErr: "unknown auth type",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.app.Validate()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	// New must fail fast with the same configuration errors Validate reports.
	_, err := shopify.New(shopify.App{
		Type:      shopify.AuthOAuth,
		APIKey:    "key",
		APISecret: "secret",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirect uri is required")

	_, err = shopify.New(shopify.App{
		Type:   shopify.AuthPrivate,
		APIKey: "key",
		Store:  "demo-shop.myshopify.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api secret is required")
}
