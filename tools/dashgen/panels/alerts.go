package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// ImportFailures counts failed imports over the past day.
func ImportFailures() *stat.PanelBuilder {
	return singleStat("Import Failures (24h)", "Rejected or failed inventory imports in the last 24 hours", ThirdWidth).
		WithTarget(PromQuery("increase("+Sel("mdp_import_errors_total")+"[24h])", "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
