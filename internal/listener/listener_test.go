package listener_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekit/shopify-go/internal/listener"
	"github.com/storekit/shopify-go/internal/metrics"
	"github.com/storekit/shopify-go/pkg/logger"
)

const testSecret = "hush"

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newServer(t *testing.T, handler listener.EventHandler) *echo.Echo {
	t.Helper()

	e := echo.New()
	l := listener.New(testSecret, logger.Nop(), handler)
	l.Register(e)
	return e
}

func deliver(e *echo.Echo, body, signature, topic string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks", strings.NewReader(body))
	if signature != "" {
		req.Header.Set(listener.SignatureHeader, signature)
	}
	req.Header.Set(listener.TopicHeader, topic)
	req.Header.Set(listener.ShopHeader, "demo-shop.myshopify.com")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListener_AcceptsSignedDelivery(t *testing.T) {
	body := `{"id": 1001, "name": "#1001"}`

	var got listener.Event
	e := newServer(t, func(ev listener.Event) error {
		got = ev
		return nil
	})

	rec := deliver(e, body, sign(testSecret, body), "orders/create")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "orders/create", got.Topic)
	assert.Equal(t, "demo-shop.myshopify.com", got.Shop)
	assert.Equal(t, body, string(got.Body))
}

func TestListener_RejectsBadSignature(t *testing.T) {
	tests := []struct {
		name      string
		signature string
	}{
		{name: "missing signature", signature: ""},
		{name: "wrong secret", signature: sign("other-secret", `{}`)},
		{name: "not base64", signature: "%%%"},
		{name: "tampered body", signature: sign(testSecret, `{"id": 2}`)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			called := false
			e := newServer(t, func(listener.Event) error {
				called = true
				return nil
			})

			rec := deliver(e, `{}`, tt.signature, "orders/create")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestListener_HandlerErrorAnswers500(t *testing.T) {
	body := `{"id": 7}`

	e := newServer(t, func(listener.Event) error {
		return errors.New("downstream unavailable")
	})

	rec := deliver(e, body, sign(testSecret, body), "products/update")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListener_NilHandlerStillAccepts(t *testing.T) {
	body := `{"id": 9}`
	e := newServer(t, nil)

	rec := deliver(e, body, sign(testSecret, body), "app/uninstalled")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListener_Healthz(t *testing.T) {
	e := newServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestListener_CountsDeliveries(t *testing.T) {
	body := `{"id": 11}`
	e := newServer(t, nil)

	rec := deliver(e, body, sign(testSecret, body), "customers/create")
	require.Equal(t, http.StatusOK, rec.Code)

	counter, err := metrics.WebhooksReceivedTotal.GetMetricWithLabelValues("customers/create", "ok")
	require.NoError(t, err)

	m := &io_prometheus_client.Metric{}
	require.NoError(t, counter.Write(m))
	assert.Greater(t, m.GetCounter().GetValue(), float64(0))
}

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		handler    echo.HandlerFunc
		wantStatus int
	}{
		{
			name:   "records 200 response",
			method: http.MethodGet,
			path:   "/hooks/status",
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "records 404 response",
			method: http.MethodGet,
			path:   "/notfound",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(listener.Metrics())
			e.Add(tt.method, tt.path, tt.handler)

			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			statusStr := strconv.Itoa(tt.wantStatus)

			counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(
				tt.method, tt.path, statusStr,
			)
			require.NoError(t, err)

			m := &io_prometheus_client.Metric{}
			require.NoError(t, counter.Write(m))
			assert.Greater(t, m.GetCounter().GetValue(), float64(0))
		})
	}
}

func TestRequestLogMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	e.Use(listener.RequestLog(log))
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), "path=/ping")
	assert.Contains(t, buf.String(), "status=200")
}

func TestRequestLogMiddleware_KeepsProvidedRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	e.Use(listener.RequestLog(log))
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), "request_id=req-42")
}

func TestRecoveryMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	e.Use(listener.Recovery(log))
	e.GET("/boom", func(echo.Context) error {
		panic("kaput")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "kaput")
}
