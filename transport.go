package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/storekit/shopify-go/internal/metrics"
)

// ErrStoreRequired is returned when a request is attempted before a shop
// domain has been configured (OAuth clients before SetStore).
var ErrStoreRequired = errors.New("no store configured; set one with SetStore or App.Store")

// ResponseError is a non-2xx response from the Admin API.
type ResponseError struct {
	Status  int
	Message string

	// retryAfter is only set on 429 responses.
	retryAfter time.Duration
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("admin api error (status %d): %s", e.Status, e.Message)
}

// respMeta carries response metadata needed beyond the decoded body.
type respMeta struct {
	status   int
	linkNext string // page_info cursor from the Link header, "" when last page
}

// Get performs a GET request against an Admin API path ("products.json")
// and decodes the JSON response into dest.
func (c *Client) Get(ctx context.Context, path string, params url.Values, dest any) error {
	_, err := c.do(ctx, http.MethodGet, path, params, nil, dest)
	return err
}

// Post performs a POST request with a JSON body and decodes the response
// into dest.
func (c *Client) Post(ctx context.Context, path string, body, dest any) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body, dest)
	return err
}

// Put performs a PUT request with a JSON body and decodes the response
// into dest.
func (c *Client) Put(ctx context.Context, path string, body, dest any) error {
	_, err := c.do(ctx, http.MethodPut, path, nil, body, dest)
	return err
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, params url.Values) error {
	_, err := c.do(ctx, http.MethodDelete, path, params, nil, nil)
	return err
}

// resourceURL builds the full URL for a versioned Admin API path.
func (c *Client) resourceURL(path string, params url.Values) (string, error) {
	base := c.storeBaseURL()
	if base == "" {
		return "", ErrStoreRequired
	}

	u := base + "/admin/api/" + c.apiVersion + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u, nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	params url.Values,
	body, dest any,
) (*respMeta, error) {
	u, err := c.resourceURL(path, params)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	metrics.RateLimitWaitSeconds.Observe(time.Since(waitStart).Seconds())

	meta, err := c.dispatch(ctx, method, u, payload, dest)

	// One retry on 429, honoring Retry-After. Anything beyond that is the
	// caller's problem.
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Status == http.StatusTooManyRequests {
		if waitErr := sleepCtx(ctx, respErr.retryAfter); waitErr != nil {
			return nil, waitErr
		}
		meta, err = c.dispatch(ctx, method, u, payload, dest)
	}

	return meta, err
}

// dispatch sends a single HTTP request, injects credentials, feeds the
// call-limit header back into the rate limiter, and decodes the response.
func (c *Client) dispatch(
	ctx context.Context,
	method, u string,
	payload []byte,
	dest any,
) (*respMeta, error) {
	var bodyReader io.Reader = http.NoBody
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.authorize(req); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APICallsTotal.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	metrics.APICallDuration.Observe(time.Since(start).Seconds())
	metrics.APICallsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	if h := resp.Header.Get(CallLimitHeader); h != "" {
		c.limiter.Observe(h)
		snap := c.limiter.Snapshot()
		metrics.RateLimitBucketUsed.Set(float64(snap.Used))
		metrics.RateLimitBucketCap.Set(float64(snap.Capacity))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newResponseError(resp, respBody)
	}

	if dest != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
	}

	return &respMeta{
		status:   resp.StatusCode,
		linkNext: parseLinkNext(resp.Header.Get("Link")),
	}, nil
}

// authorize injects the active credential headers.
func (c *Client) authorize(req *http.Request) error {
	switch c.app.Type {
	case AuthPrivate:
		req.SetBasicAuth(c.app.APIKey, c.app.APISecret)
	case AuthOAuth:
		token := c.accessToken()
		if token == "" {
			return ErrNoAccessToken
		}
		req.Header.Set("X-Shopify-Access-Token", token)
	}
	return nil
}

// countEnvelope wraps the count endpoints' response body.
type countEnvelope struct {
	Count int `json:"count"`
}

type errorEnvelope struct {
	Errors json.RawMessage `json:"errors"`
	Error  string          `json:"error"`
}

// newResponseError builds a ResponseError from a non-2xx response,
// extracting the message from the platform's error envelope when present.
func newResponseError(resp *http.Response, body []byte) *ResponseError {
	e := &ResponseError{
		Status:  resp.StatusCode,
		Message: strings.TrimSpace(string(body)),
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		switch {
		case env.Error != "":
			e.Message = env.Error
		case len(env.Errors) > 0:
			// "errors" is a string or an object keyed by field; keep the
			// raw JSON either way, it reads fine in logs.
			e.Message = strings.Trim(string(env.Errors), `"`)
		}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		e.retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	}

	return e
}

func parseRetryAfter(s string) time.Duration {
	if s == "" {
		return time.Second
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return time.Second
}

// postJSON sends an unauthenticated JSON POST outside the versioned
// transport, used for the OAuth token exchange.
func postJSON(ctx context.Context, hc *http.Client, u string, body, dest any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newResponseError(resp, respBody)
	}

	if dest != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
