package shopify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/storekit/shopify-go/internal/metrics"
)

// WebhookHMACHeader carries the base64 signature of a webhook payload.
const WebhookHMACHeader = "X-Shopify-Hmac-Sha256"

// AuthorizeURL builds the merchant-facing authorization URL for the OAuth
// install flow. The URL carries the client id, redirect URI, requested
// scopes, and a fresh state nonce that CompleteOAuth later checks against
// the callback. Fails with ErrInvalidAuthMethod on private-app clients.
func (c *Client) AuthorizeURL(store string, scopes []string) (string, error) {
	if c.app.Type != AuthOAuth {
		return "", fmt.Errorf("authorize url: %w", ErrInvalidAuthMethod)
	}
	if store == "" {
		return "", ErrStoreRequired
	}

	state := uuid.NewString()
	c.mu.Lock()
	c.oauthState = state
	c.mu.Unlock()

	if len(scopes) == 0 {
		scopes = c.app.Scopes
	}

	params := url.Values{}
	params.Set("client_id", c.app.APIKey)
	params.Set("redirect_uri", c.app.RedirectURI)
	params.Set("scope", strings.Join(scopes, ","))
	params.Set("state", state)

	return normalizeStore(store) + "/admin/oauth/authorize?" + params.Encode(), nil
}

type accessTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

// CompleteOAuth finishes the authorization-code flow: it verifies the
// callback's HMAC and state, exchanges the code for an access token via a
// server-to-server call, installs the token into the transport, and
// returns it. Fails with ErrInvalidAuthMethod on private-app clients.
func (c *Client) CompleteOAuth(ctx context.Context, store, callbackURL string) (string, error) {
	if c.app.Type != AuthOAuth {
		return "", fmt.Errorf("complete oauth: %w", ErrInvalidAuthMethod)
	}
	if store == "" {
		return "", ErrStoreRequired
	}

	cb, err := url.Parse(callbackURL)
	if err != nil {
		return "", fmt.Errorf("parsing callback url: %w", err)
	}
	query := cb.Query()

	if !c.VerifyCallbackHMAC(query, query.Get("hmac")) {
		metrics.OAuthExchangesTotal.WithLabelValues("hmac_mismatch").Inc()
		return "", fmt.Errorf("callback hmac verification failed")
	}

	c.mu.RLock()
	wantState := c.oauthState
	c.mu.RUnlock()
	if wantState != "" && query.Get("state") != wantState {
		metrics.OAuthExchangesTotal.WithLabelValues("state_mismatch").Inc()
		return "", fmt.Errorf("callback state does not match issued authorization url")
	}

	code := query.Get("code")
	if code == "" {
		return "", fmt.Errorf("callback url has no authorization code")
	}

	token, err := c.exchangeCode(ctx, store, code)
	if err != nil {
		metrics.OAuthExchangesTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.OAuthExchangesTotal.WithLabelValues("ok").Inc()

	c.SetStore(store)
	c.SetAccessToken(token)

	return token, nil
}

// exchangeCode trades an authorization code for an access token at the
// shop's token endpoint. The token endpoint is not versioned and does not
// count against the call-limit bucket, so it bypasses the rate limiter.
func (c *Client) exchangeCode(ctx context.Context, store, code string) (string, error) {
	u := normalizeStore(store) + "/admin/oauth/access_token"

	body := accessTokenRequest{
		ClientID:     c.app.APIKey,
		ClientSecret: c.app.APISecret,
		Code:         code,
	}

	var tokenResp accessTokenResponse
	if err := postJSON(ctx, c.httpClient, u, body, &tokenResp); err != nil {
		return "", fmt.Errorf("exchanging authorization code: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}

	c.logger.Info("oauth exchange complete",
		"store", store,
		"scopes", tokenResp.Scope,
	)

	return tokenResp.AccessToken, nil
}

// VerifyCallbackHMAC reports whether the hex-encoded HMAC supplied on an
// OAuth callback or app-proxy query matches one recomputed over the
// canonicalized query with the shared secret. Always false on private-app
// clients: signed callbacks only exist in the OAuth flow.
//
// Canonicalization follows the platform's documented scheme: drop the
// hmac and signature parameters, sort the remaining keys, join each as
// key=value (multiple values comma-joined) with "&" separators, then
// HMAC-SHA256 the result. Comparison is constant-time.
func (c *Client) VerifyCallbackHMAC(query url.Values, gotHMAC string) bool {
	if c.app.Type != AuthOAuth {
		return false
	}
	if gotHMAC == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.app.APISecret))
	mac.Write([]byte(canonicalQuery(query)))
	want := hex.EncodeToString(mac.Sum(nil))

	ok := hmac.Equal([]byte(want), []byte(gotHMAC))
	if ok {
		metrics.WebhookVerificationsTotal.WithLabelValues("ok").Inc()
	} else {
		metrics.WebhookVerificationsTotal.WithLabelValues("mismatch").Inc()
	}
	return ok
}

// VerifyWebhookSignature reports whether the base64-encoded HMAC from the
// X-Shopify-Hmac-Sha256 header matches one recomputed over the raw
// request body with the app secret. Always false on private-app clients,
// like the other OAuth-only operations.
func (c *Client) VerifyWebhookSignature(body []byte, gotHMAC string) bool {
	if c.app.Type != AuthOAuth {
		return false
	}
	return VerifyWebhookHMAC([]byte(c.app.APISecret), body, gotHMAC)
}

// VerifyWebhookHMAC reports whether the base64-encoded HMAC from the
// X-Shopify-Hmac-Sha256 header matches one recomputed over the raw
// request body with the given secret. Webhook payloads use a different
// scheme than callback queries: the body is signed as-is and the digest
// is base64, not hex. Standalone receivers that hold only the shared
// secret can call this directly.
func VerifyWebhookHMAC(secret, body []byte, gotHMAC string) bool {
	if gotHMAC == "" {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	ok := hmac.Equal([]byte(want), []byte(gotHMAC))
	if ok {
		metrics.WebhookVerificationsTotal.WithLabelValues("ok").Inc()
	} else {
		metrics.WebhookVerificationsTotal.WithLabelValues("mismatch").Inc()
	}
	return ok
}

// canonicalQuery renders query parameters in the platform's signing form.
func canonicalQuery(query url.Values) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		if k == "hmac" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+strings.Join(query[k], ","))
	}
	return strings.Join(pairs, "&")
}
