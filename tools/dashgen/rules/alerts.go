package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// operational monitoring of the client and webhook listener.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "shopify-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "shopify-alerts",
					Rules: []Rule{
						{
							Alert: "WebhookListenerDown",
							Expr:  `absent(up{job="webhook-listener"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Webhook listener is down",
								"description": "The webhook-listener job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "CallLimitSaturated",
							Expr:  `shopify_rate_limit_bucket_used / shopify_rate_limit_bucket_capacity > 0.9`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Admin API call-limit bucket near capacity",
								"description": "The client has been operating above 90% of the call-limit bucket for 5 minutes; requests are being throttled.",
							},
						},
						{
							Alert: "HighAPIErrorRate",
							Expr:  `shopify:api_errors:rate5m / shopify:api_calls:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High Admin API error rate",
								"description": "More than 5% of Admin API calls are failing over the last 5 minutes.",
							},
						},
						{
							Alert: "WebhookSignatureRejections",
							Expr:  `shopify:webhooks_rejected:rate5m > 0`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Webhook deliveries failing signature verification",
								"description": "Deliveries have been rejected for bad signatures for 10 minutes; check the shared secret configuration.",
							},
						},
						{
							Alert: "HighListenerErrorRate",
							Expr:  `shopify:http_errors:rate5m / shopify:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High listener HTTP error rate",
								"description": "More than 5% of listener requests are returning 5xx errors over the last 5 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
