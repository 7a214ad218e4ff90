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

func TestProducts_List(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/admin/api/2024-07/products.json", r.URL.Path)
			assert.Equal(t, "10", r.URL.Query().Get("limit"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"products": [
					{"id": 1, "title": "Widget", "handle": "widget", "status": "active",
					 "variants": [{"id": 11, "product_id": 1, "price": "19.99", "sku": "W-1"}]},
					{"id": 2, "title": "Gadget", "handle": "gadget", "status": "draft"}
				]
			}`))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)

	products, err := c.Products.List(context.Background(), &shopify.ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Widget", products[0].Title)
	require.Len(t, products[0].Variants, 1)
	assert.Equal(t, "19.99", products[0].Variants[0].Price)
	assert.Equal(t, "draft", products[1].Status)
}

func TestProducts_Get(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admin/api/2024-07/products/42.json", r.URL.Path)
			_, _ = w.Write([]byte(`{"product": {"id": 42, "title": "Widget"}}`))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)

	p, err := c.Products.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "Widget", p.Title)
}

func TestProducts_Create(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var env struct {
				Product shopify.Product `json:"product"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&env))
			assert.Equal(t, "New Widget", env.Product.Title)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"product": {"id": 99, "title": "New Widget"}}`))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)

	created, err := c.Products.Create(context.Background(), shopify.Product{Title: "New Widget"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)
}

func TestProducts_Update(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/admin/api/2024-07/products/7.json", r.URL.Path)
			_, _ = w.Write([]byte(`{"product": {"id": 7, "title": "Renamed"}}`))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)

	updated, err := c.Products.Update(context.Background(), shopify.Product{ID: 7, Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	// Update without an id never reaches the transport.
	_, err = c.Products.Update(context.Background(), shopify.Product{Title: "No ID"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
}

func TestProducts_Delete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/admin/api/2024-07/products/5.json", r.URL.Path)
			_, _ = w.Write([]byte(`{}`))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)
	require.NoError(t, c.Products.Delete(context.Background(), 5))
}

func TestProducts_Count(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admin/api/2024-07/products/count.json", r.URL.Path)
			_, _ = w.Write([]byte(`{"count": 137}`))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)

	n, err := c.Products.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 137, n)
}
