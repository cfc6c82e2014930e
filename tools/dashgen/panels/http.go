package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

const httpDuration = "mdp_http_request_duration_seconds"

// RequestRate charts HTTP requests per second.
func RequestRate() *timeseries.PanelBuilder {
	return lineChart("Request Rate", "HTTP requests per second", TSWidth).
		WithTarget(PromQuery(`mdp:http_requests:rate5m`, "req/s", "A")).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// LatencyPercentiles charts p50, p95 and p99 request latency.
func LatencyPercentiles() *timeseries.PanelBuilder {
	p := lineChart("Latency Percentiles", "HTTP request duration percentiles", TSWidth).
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())

	for i, q := range []float64{0.50, 0.95, 0.99} {
		ref := string(rune('A' + i))
		p = p.WithTarget(PromQuery(Quantile(q, httpDuration), fmt.Sprintf("p%.0f", q*100), ref))
	}
	return p
}

// ErrorRate charts 5xx responses as a share of all requests.
func ErrorRate() *timeseries.PanelBuilder {
	return lineChart("Error Rate %", "HTTP 5xx error rate as percentage of total requests", TSWidth).
		WithTarget(PromQuery(`mdp:http_errors:rate5m / mdp:http_requests:rate5m * 100`, "error %", "A")).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}
