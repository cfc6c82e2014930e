package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// DiscountDistribution spreads the last hour's discounts across histogram
// buckets.
func DiscountDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Discount Distribution").
		Description("Discounts granted in the last hour (0-70%)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			"sum(increase("+Sel("mdp_discount_percent_bucket")+"[1h])) by (le)", "{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// MeanDiscount compares the mean discount per strategy.
func MeanDiscount() *timeseries.PanelBuilder {
	return lineChart("Mean Discount by Mode", "Average discount per strategy over the last hour", TSWidth).
		WithTarget(PromQuery(`mdp:discounts:mean1h`, "{{mode}}", "A")).
		Unit("percent").
		Legend(TableLegend("mean", "last")).
		Tooltip(MultiTooltip())
}

// PredictionFailures charts model failures by reason. Every failure priced
// an item at zero discount.
func PredictionFailures() *timeseries.PanelBuilder {
	return lineChart("Prediction Failures", "Model predictions that fell back to zero discount, by reason", TSWidth).
		WithTarget(PromQuery(`mdp:prediction_failures:rate5m`, "{{reason}}", "A")).
		Unit("ops").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(0.01, 1)).
		ColorScheme(ColorSchemeThresholds())
}

// PredictLatency charts p95 single-item prediction latency.
func PredictLatency() *timeseries.PanelBuilder {
	return lineChart("Model Latency (p95)", "95th percentile single-item prediction latency", TSWidth).
		WithTarget(PromQuery(Quantile(0.95, "mdp_model_predict_duration_seconds"), "p95", "A")).
		Unit("s")
}
