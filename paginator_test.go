package shopify_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shopify "github.com/storekit/shopify-go"
)

func TestListOptions_Values(t *testing.T) {
	t.Parallel()

	var nilOpt *shopify.ListOptions
	assert.Empty(t, nilOpt.Values())

	opt := &shopify.ListOptions{
		Limit:    25,
		SinceID:  42,
		PageInfo: "cursor123",
		Fields:   "id,title",
	}

	params := opt.Values()
	assert.Equal(t, "25", params.Get("limit"))
	assert.Equal(t, "42", params.Get("since_id"))
	assert.Equal(t, "cursor123", params.Get("page_info"))
	assert.Equal(t, "id,title", params.Get("fields"))
}

func TestListAll(t *testing.T) {
	t.Parallel()

	// Three pages linked by page_info cursors.
	pages := map[string]struct {
		body string
		next string
	}{
		"":      {body: `{"products":[{"id":1},{"id":2}]}`, next: "cursor-b"},
		"cursor-b": {body: `{"products":[{"id":3}]}`, next: "cursor-c"},
		"cursor-c": {body: `{"products":[{"id":4}]}`},
	}

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			page, ok := pages[r.URL.Query().Get("page_info")]
			require.True(t, ok)

			if page.next != "" {
				w.Header().Set("Link", fmt.Sprintf(
					`<https://demo-shop.myshopify.com/admin/api/2024-07/products.json?limit=50&page_info=%s>; rel="next"`,
					page.next,
				))
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(page.body))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)

	var ids []int64
	var pagesSeen int
	err := c.Products.ListAll(context.Background(), nil, func(products []shopify.Product) error {
		pagesSeen++
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, pagesSeen)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)
}

func TestListAll_CallbackError(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			w.Header().Set("Link",
				`<https://demo-shop.myshopify.com/admin/api/2024-07/products.json?page_info=more>; rel="next"`)
			_, _ = w.Write([]byte(`{"products":[{"id":1}]}`))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)

	wantErr := fmt.Errorf("stop here")
	err := c.Products.ListAll(context.Background(), nil, func([]shopify.Product) error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestListAll_IgnoresPreviousLink(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			// Only a previous link: iteration must stop after this page.
			w.Header().Set("Link",
				`<https://demo-shop.myshopify.com/admin/api/2024-07/products.json?page_info=back>; rel="previous"`)
			_, _ = w.Write([]byte(`{"products":[{"id":9}]}`))
		}),
	)
	defer srv.Close()

	c := newPrivateClient(t, srv.URL)

	var pagesSeen int
	err := c.Products.ListAll(context.Background(), nil, func([]shopify.Product) error {
		pagesSeen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pagesSeen)
}
