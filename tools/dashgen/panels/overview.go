package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// probeStat renders a 0/1 gauge with a red or green background.
func probeStat(title, description, metric string) *stat.PanelBuilder {
	return singleStat(title, description, StatWidth).
		WithTarget(PromQuery(metric, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// HealthzStat shows the liveness probe result.
func HealthzStat() *stat.PanelBuilder {
	return probeStat("Healthz", "Health check status (1 = ok, 0 = failing)", "mdp_healthcheck_status")
}

// ReadyzStat shows the readiness probe result.
func ReadyzStat() *stat.PanelBuilder {
	return probeStat("Readyz", "Readiness check status (1 = ready, 0 = not ready)", "mdp_readiness_status")
}

// ModelStat names the loaded model backend.
func ModelStat() *stat.PanelBuilder {
	return singleStat("Model", "Loaded model backend; none means ml mode prices at zero discount", StatWidth).
		WithTarget(PromQuery("max by (model) ("+Sel("mdp_model_info")+")", "{{model}}", "A")).
		Thresholds(ThresholdsGreenOnly()).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeName)
}

// UptimeStat shows time since process start.
func UptimeStat() *stat.PanelBuilder {
	return singleStat("Uptime", "Time since process start", StatWidth).
		WithTarget(PromQuery("time() - "+Sel("process_start_time_seconds"), "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		GraphMode(common.BigValueGraphModeNone)
}
