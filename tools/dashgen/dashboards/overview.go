// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/markdown-pricer/tools/dashgen/panels"
)

// BuildOverview constructs the MDP Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("MDP Overview").
		Uid("mdp-overview").
		Tags([]string{"mdp", "markdown-pricer"}).
		Refresh("30s").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.ModelStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Inventory.
	b.WithRow(dashboard.NewRowBuilder("Inventory").
		WithPanel(panels.SegmentSizes()).
		WithPanel(panels.ExpiredLoss()).
		WithPanel(panels.ExpiredShare()))

	// Row 4: Pricing.
	b.WithRow(dashboard.NewRowBuilder("Pricing").
		WithPanel(panels.DiscountDistribution()).
		WithPanel(panels.MeanDiscount()).
		WithPanel(panels.PredictionFailures()).
		WithPanel(panels.PredictLatency()))

	// Row 5: Imports.
	b.WithRow(dashboard.NewRowBuilder("Imports").
		WithPanel(panels.LastImport()).
		WithPanel(panels.ImportRows()).
		WithPanel(panels.ImportDuration()).
		WithPanel(panels.ImportFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
