package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SegmentSizes charts stored item counts per segment.
func SegmentSizes() *timeseries.PanelBuilder {
	return lineChart("Items by Segment", "Stored items in each actionable segment", TSWidth).
		WithTarget(PromQuery("max by (segment) ("+Sel("mdp_inventory_items")+")", "{{segment}}", "A")).
		Legend(TableLegend("last", "max")).
		Tooltip(MultiTooltip())
}

// ExpiredLoss shows the value of expired stock.
func ExpiredLoss() *stat.PanelBuilder {
	return singleStat("Expired Stock Value", "Unit price times quantity across expired items", StatWidth).
		WithTarget(PromQuery("max("+Sel("mdp_expired_loss")+")", "", "A")).
		Unit("currencyUSD").
		Thresholds(ThresholdsGreenYellowRed(100, 1000)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// ExpiredShare shows expired items as a percentage of stored inventory.
// The "all" segment only counts active items.
func ExpiredShare() *stat.PanelBuilder {
	expired := "max(" + Sel("mdp_inventory_items", `segment="expired"`) + ")"
	active := "max(" + Sel("mdp_inventory_items", `segment="all"`) + ")"
	return singleStat("Expired Share", "Expired items as a percentage of stored inventory", StatWidth).
		WithTarget(PromQuery(expired+" / ("+expired+" + "+active+") * 100", "", "A")).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(5, 15)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}
