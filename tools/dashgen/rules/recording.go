package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "shopify-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "shopify-recording",
					Rules: []Rule{
						{
							Record: "shopify:api_calls:rate5m",
							Expr:   `sum(rate(shopify_api_calls_total[5m]))`,
						},
						{
							Record: "shopify:api_errors:rate5m",
							Expr:   `sum(rate(shopify_api_calls_total{status=~"4..|5.."}[5m]))`,
						},
						{
							Record: "shopify:http_requests:rate5m",
							Expr:   `sum(rate(shopify_http_requests_total[5m]))`,
						},
						{
							Record: "shopify:http_errors:rate5m",
							Expr:   `sum(rate(shopify_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "shopify:webhooks_received:rate5m",
							Expr:   `sum(rate(shopify_webhooks_received_total{outcome="ok"}[5m]))`,
						},
						{
							Record: "shopify:webhooks_rejected:rate5m",
							Expr:   `sum(rate(shopify_webhooks_received_total{outcome="rejected"}[5m]))`,
						},
					},
				},
			},
		},
	}
}
