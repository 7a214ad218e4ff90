package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// BucketUsage returns a timeseries panel showing call-limit bucket usage
// against its capacity.
func BucketUsage() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Bucket Usage").
		Description("Call-limit bucket usage vs capacity").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`shopify_rate_limit_bucket_used`, "used", "A")).
		WithTarget(PromQuery(`shopify_rate_limit_bucket_capacity`, "capacity", "B")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// WaitTime returns a timeseries panel showing p95 and p99 time spent
// waiting for rate limit admission.
func WaitTime() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Rate Limit Wait").
		Description("Time spent waiting for rate limit admission").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(shopify_rate_limit_wait_seconds_bucket[5m])) by (le))`,
			"p95",
			"A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.99, sum(rate(shopify_rate_limit_wait_seconds_bucket[5m])) by (le))`,
			"p99",
			"B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
