package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LastImport shows time since the last successful import.
func LastImport() *stat.PanelBuilder {
	return singleStat("Last Import", "Time since the last successful inventory import", ThirdWidth).
		WithTarget(PromQuery("time() - "+Sel("mdp_import_last_success_timestamp"), "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(6*3600, 24*3600)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// ImportRows charts rows written by imports and expiry refreshes.
func ImportRows() *timeseries.PanelBuilder {
	return lineChart("Rows Written", "Rows written per hour by imports and expiry refreshes", ThirdWidth).
		WithTarget(PromQuery("sum(increase("+Sel("mdp_import_rows_total")+"[1h]))", "import", "A")).
		WithTarget(PromQuery("sum(increase("+Sel("mdp_expiry_refresh_rows_total")+"[1h]))", "expiry refresh", "B"))
}

// ImportDuration charts the p95 import duration.
func ImportDuration() *timeseries.PanelBuilder {
	return lineChart("Import Duration (p95)", "95th percentile inventory import duration", ThirdWidth).
		WithTarget(PromQuery(Quantile(0.95, "mdp_import_duration_seconds"), "p95", "A")).
		Unit("s")
}
