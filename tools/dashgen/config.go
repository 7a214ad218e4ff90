package main

import "errors"

// KnownMetrics is the set of metric names exported by the client and the
// webhook listener plus recording rule names referenced in dashboards and
// alerts.
var KnownMetrics = map[string]bool{
	// Admin API client metrics.
	"shopify_api_calls_total":            true,
	"shopify_api_call_duration_seconds":  true,
	"shopify_rate_limit_wait_seconds":    true,
	"shopify_rate_limit_bucket_used":     true,
	"shopify_rate_limit_bucket_capacity": true,
	"shopify_oauth_exchanges_total":      true,

	// Webhook listener metrics.
	"shopify_http_requests_total":           true,
	"shopify_http_request_duration_seconds": true,
	"shopify_webhooks_received_total":       true,
	"shopify_webhook_verifications_total":   true,
	"shopify_healthz_up":                    true,

	// Recording rules.
	"shopify:api_calls:rate5m":         true,
	"shopify:api_errors:rate5m":        true,
	"shopify:http_requests:rate5m":     true,
	"shopify:http_errors:rate5m":       true,
	"shopify:webhooks_received:rate5m": true,
	"shopify:webhooks_rejected:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
