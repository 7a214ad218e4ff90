package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// WebhooksReceived returns a timeseries panel showing webhook deliveries
// per second by topic.
func WebhooksReceived() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Webhooks Received").
		Description("Webhook deliveries per second by topic").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(shopify_webhooks_received_total{outcome="ok"}[5m])) by (topic)`,
			"{{topic}}",
			"A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// WebhooksRejected returns a timeseries panel showing deliveries rejected
// for signature mismatch.
func WebhooksRejected() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Webhooks Rejected").
		Description("Deliveries rejected for bad signatures per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`shopify:webhooks_rejected:rate5m`, "rejected/s", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
