// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/storekit/shopify-go/tools/dashgen/panels"
)

// BuildOverview constructs the Shopify Client Overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Shopify Client Overview").
		Uid("shopify-overview").
		Tags([]string{"shopify", "admin-api"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.BucketGauge()).
		WithPanel(panels.UptimeStat()))

	// Row 2: Admin API.
	b.WithRow(dashboard.NewRowBuilder("Admin API").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.APILatencyPercentiles()).
		WithPanel(panels.APIErrorRate()))

	// Row 3: Rate Limit.
	b.WithRow(dashboard.NewRowBuilder("Rate Limit").
		WithPanel(panels.BucketUsage()).
		WithPanel(panels.WaitTime()))

	// Row 4: Webhooks.
	b.WithRow(dashboard.NewRowBuilder("Webhooks").
		WithPanel(panels.WebhooksReceived()).
		WithPanel(panels.WebhooksRejected()))

	// Row 5: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
