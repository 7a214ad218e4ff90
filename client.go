// Package shopify provides a typed client for the Shopify Admin REST API
// abstracted behind per-resource services.
//
// The client supports two authentication modes: private apps (static
// key/secret, signed with HTTP Basic auth) and public apps (OAuth
// authorization-code flow yielding an X-Shopify-Access-Token header).
// Outgoing calls are paced by a client-side rate limiter that mirrors the
// platform's leaky-bucket call-limit header, so a busy consumer throttles
// itself instead of tripping 429 responses.
package shopify

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/storekit/shopify-go/pkg/logger"
)

const (
	// defaultAPIVersion is the Admin API version used when none is set.
	defaultAPIVersion = "2024-07"

	defaultTimeout = 30 * time.Second
)

// Client is the facade over the Admin API: it validates configuration,
// wires the rate limiter and transport together, and exposes one service
// per API resource.
type Client struct {
	app        App
	apiVersion string
	httpClient *http.Client
	limiter    *RateLimiter
	logger     *slog.Logger

	mu      sync.RWMutex
	baseURL string // https://{store}, updated by SetStore
	token   string // OAuth access token, empty for private apps

	// oauthState is the state nonce of the last issued authorization URL.
	oauthState string

	Products     *ProductsService
	Orders       *OrdersService
	Customers    *CustomersService
	Collections  *CollectionsService
	Inventory    *InventoryService
	PriceRules   *PriceRulesService
	Fulfillments *FulfillmentsService
	Metafields   *MetafieldsService
	Pages        *PagesService
	Blogs        *BlogsService
	Webhooks     *WebhooksService
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAPIVersion overrides the default Admin API version used in request
// paths, for example "2024-10".
func WithAPIVersion(v string) Option {
	return func(c *Client) {
		c.apiVersion = v
	}
}

// WithRateLimiter injects a rate limiter. When set, every API call goes
// through Wait() before dispatch and feeds the call-limit header back
// into it afterward.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.limiter = r
	}
}

// WithBaseURL overrides the base URL derived from the app's store, for
// example to point requests at a local mock server. SetStore replaces it
// like any other base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = normalizeStore(u)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates an Admin API client for the given app credentials.
// It fails fast on a credential shape that does not match the declared
// auth type.
func New(app App, opts ...Option) (*Client, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		app:        app,
		apiVersion: defaultAPIVersion,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    NewRateLimiter(defaultLeakRate, defaultBucketCap),
		logger:     logger.Nop(),
	}
	if app.Store != "" {
		c.baseURL = normalizeStore(app.Store)
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Products = &ProductsService{client: c}
	c.Orders = &OrdersService{client: c}
	c.Customers = &CustomersService{client: c}
	c.Collections = &CollectionsService{client: c}
	c.Inventory = &InventoryService{client: c}
	c.PriceRules = &PriceRulesService{client: c}
	c.Fulfillments = &FulfillmentsService{client: c}
	c.Metafields = &MetafieldsService{client: c}
	c.Pages = &PagesService{client: c}
	c.Blogs = &BlogsService{client: c}
	c.Webhooks = &WebhooksService{client: c}

	return c, nil
}

// SetAccessToken installs an OAuth access token into the transport.
// Subsequent requests carry it in the X-Shopify-Access-Token header.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// SetStore changes the shop domain subsequent requests are sent to,
// without reconstructing the client. Rate limiter state is kept: the
// platform buckets by app+shop, and a caller switching shops mid-flight
// is still bounded by the stricter local pacing.
func (c *Client) SetStore(store string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = normalizeStore(store)
}

// RateLimits returns the current call-limit bucket snapshot for
// observability.
func (c *Client) RateLimits() RateLimitState {
	return c.limiter.Snapshot()
}

func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) storeBaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}
