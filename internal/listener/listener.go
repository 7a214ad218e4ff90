// Package listener receives webhook deliveries from the platform,
// verifies their signatures, and hands valid events to a handler.
package listener

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	shopify "github.com/storekit/shopify-go"
	"github.com/storekit/shopify-go/internal/metrics"
)

// Delivery headers set by the platform on every webhook request.
const (
	SignatureHeader = shopify.WebhookHMACHeader
	TopicHeader     = "X-Shopify-Topic"
	ShopHeader      = "X-Shopify-Shop-Domain"
)

// Event is one verified webhook delivery.
type Event struct {
	Topic string
	Shop  string
	Body  []byte
}

// EventHandler consumes verified webhook events. Returning an error makes
// the listener answer 500 so the platform retries the delivery.
type EventHandler func(Event) error

// Listener verifies inbound webhook deliveries against a shared secret.
type Listener struct {
	secret []byte
	log    *slog.Logger
	handle EventHandler
}

// New returns a Listener verifying deliveries with secret. handler may be
// nil, in which case verified events are only logged.
func New(secret string, log *slog.Logger, handler EventHandler) *Listener {
	return &Listener{
		secret: []byte(secret),
		log:    log,
		handle: handler,
	}
}

// Register mounts the webhook endpoint and the operational endpoints on e.
func (l *Listener) Register(e *echo.Echo) {
	e.POST("/webhooks", l.receive)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (l *Listener) receive(c echo.Context) error {
	topic := c.Request().Header.Get(TopicHeader)
	shop := c.Request().Header.Get(ShopHeader)

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "reading body")
	}

	if !shopify.VerifyWebhookHMAC(l.secret, body, c.Request().Header.Get(SignatureHeader)) {
		metrics.WebhooksReceivedTotal.WithLabelValues(topic, "rejected").Inc()
		l.log.Warn("rejected webhook with bad signature",
			"topic", topic,
			"shop", shop,
		)
		return echo.NewHTTPError(http.StatusUnauthorized, "signature mismatch")
	}

	if l.handle != nil {
		if err := l.handle(Event{Topic: topic, Shop: shop, Body: body}); err != nil {
			metrics.WebhooksReceivedTotal.WithLabelValues(topic, "error").Inc()
			l.log.Error("webhook handler failed",
				"topic", topic,
				"shop", shop,
				"err", err,
			)
			return echo.NewHTTPError(http.StatusInternalServerError, "handler error")
		}
	}

	metrics.WebhooksReceivedTotal.WithLabelValues(topic, "ok").Inc()
	l.log.Info("webhook received",
		"topic", topic,
		"shop", shop,
		"bytes", len(body),
	)

	return c.NoContent(http.StatusOK)
}
