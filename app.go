package shopify

import (
	"errors"
	"fmt"
	"strings"
)

// AuthType selects how the client authenticates against the Admin API.
type AuthType string

const (
	// AuthPrivate authenticates with a static private-app key/secret pair.
	AuthPrivate AuthType = "private"
	// AuthOAuth authenticates with a bearer access token obtained through
	// the OAuth authorization-code flow.
	AuthOAuth AuthType = "oauth"
)

// Sentinel errors for auth-method and configuration failures.
var (
	// ErrInvalidAuthMethod is returned when an OAuth-only operation is
	// called on a private-app client, or vice versa.
	ErrInvalidAuthMethod = errors.New("operation not supported by the configured auth method")

	// ErrNoAccessToken is returned when an OAuth client performs an API
	// call before an access token has been installed.
	ErrNoAccessToken = errors.New("no access token installed; complete the OAuth flow first")
)

// App holds the credentials and identity of an Admin API integration.
// Exactly one AuthType is active per client; the zero value is invalid.
type App struct {
	Type      AuthType
	APIKey    string
	APISecret string

	// Store is the shop domain (for example "demo-shop.myshopify.com").
	// Required for private apps; optional for OAuth apps, where the shop is
	// usually only known once the merchant starts the install flow.
	Store string

	// RedirectURI is the callback URL registered for the OAuth flow.
	// Required for OAuth apps, unused for private apps.
	RedirectURI string

	// Scopes are the access scopes requested during the OAuth flow.
	Scopes []string
}

// Validate checks that the credential shape matches the declared auth type.
func (a App) Validate() error {
	if a.APIKey == "" {
		return errors.New("api key is required")
	}
	if a.APISecret == "" {
		return errors.New("api secret is required")
	}

	switch a.Type {
	case AuthPrivate:
		if a.Store == "" {
			return errors.New("store is required for private apps")
		}
	case AuthOAuth:
		if a.RedirectURI == "" {
			return errors.New("redirect uri is required for oauth apps")
		}
	default:
		return fmt.Errorf("unknown auth type %q", a.Type)
	}

	return nil
}

// normalizeStore turns a shop domain into a base URL. Domains without a
// scheme get https; an explicit scheme is kept so tests can point the
// client at plain-HTTP servers.
func normalizeStore(store string) string {
	store = strings.TrimRight(store, "/")
	if strings.Contains(store, "://") {
		return store
	}
	return "https://" + store
}
