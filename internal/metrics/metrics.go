// Package metrics defines Prometheus metrics for the Admin API client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shopify"

// API call metrics.
var (
	APICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_calls_total",
		Help:      "Total number of Admin API calls.",
	}, []string{"method", "status"})

	APICallDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_call_duration_seconds",
		Help:      "Duration of Admin API calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Rate limiter metrics.
var (
	RateLimitWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rate_limit_wait_seconds",
		Help:      "Time spent waiting for rate limit admission in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	RateLimitBucketUsed = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rate_limit_bucket_used",
		Help:      "Call-limit bucket usage last observed from response headers.",
	})

	RateLimitBucketCap = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rate_limit_bucket_capacity",
		Help:      "Call-limit bucket capacity last observed from response headers.",
	})
)

// Auth metrics.
var (
	OAuthExchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oauth_exchanges_total",
		Help:      "Total number of OAuth code exchanges by outcome.",
	}, []string{"outcome"})

	WebhookVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_verifications_total",
		Help:      "Total number of HMAC verifications by outcome.",
	}, []string{"outcome"})
)

// Webhook listener metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of listener HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of listener HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WebhooksReceivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhooks_received_total",
		Help:      "Total number of webhook deliveries received, by topic and outcome.",
	}, []string{"topic", "outcome"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last health check returned success (1) or not (0).",
	})
)
