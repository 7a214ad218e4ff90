package shopify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shopify "github.com/storekit/shopify-go"
)

func TestWebhooks_List(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admin/api/2024-07/webhooks.json", r.URL.Path)
			assert.Equal(t, "orders/create", r.URL.Query().Get("topic"))

			_, _ = w.Write([]byte(`{"webhooks": [
				{"id": 1, "topic": "orders/create", "address": "https://app.example.com/hooks", "format": "json"}
			]}`))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)

	hooks, err := c.Webhooks.List(context.Background(), "orders/create")
	require.NoError(t, err)
	require.Len(t, hooks, 1)
	assert.Equal(t, "https://app.example.com/hooks", hooks[0].Address)
}

func TestWebhooks_CreateDefaultsFormat(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/admin/api/2024-07/webhooks.json", r.URL.Path)

			var env struct {
				Webhook shopify.Webhook `json:"webhook"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&env))
			assert.Equal(t, "json", env.Webhook.Format)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"webhook": {"id": 12, "topic": "products/update",
				"address": "https://app.example.com/hooks", "format": "json"}}`))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)

	created, err := c.Webhooks.Create(context.Background(), shopify.Webhook{
		Topic:   "products/update",
		Address: "https://app.example.com/hooks",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), created.ID)
}

func TestWebhooks_Delete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/admin/api/2024-07/webhooks/12.json", r.URL.Path)
			_, _ = w.Write([]byte(`{}`))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)

	require.NoError(t, c.Webhooks.Delete(context.Background(), 12))
}

func TestWebhooks_UpdateRequiresID(t *testing.T) {
	t.Parallel()

	c := newPrivateClient(t, "https://demo-shop.myshopify.com")

	_, err := c.Webhooks.Update(context.Background(), shopify.Webhook{Address: "https://x.example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
}
