package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/donaldgifford/markdown-pricer/internal/metrics"
	"github.com/donaldgifford/markdown-pricer/pkg/predict"
	score "github.com/donaldgifford/markdown-pricer/pkg/scorer"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// ItemData extracts the scoring inputs from an inventory item.
func ItemData(it *domain.InventoryItem) *score.ItemData {
	return &score.ItemData{
		DaysToExpiry:  it.DaysToExpiry,
		StockPressure: it.StockPressure,
		Slow:          it.IsSlow(),
	}
}

// RecordPredictionFailure counts a failed prediction by reason. It is meant
// to be installed with predict.WithFailureHook.
func RecordPredictionFailure(err error) {
	metrics.PredictionFailuresTotal.WithLabelValues(predict.FailureReason(err)).Inc()
}

// Discount prices a single item with the given strategy.
func (eng *Engine) Discount(ctx context.Context, it *domain.InventoryItem, mode domain.Mode) int {
	data := ItemData(it)

	var d int
	switch domain.ParseMode(string(mode)) {
	case domain.ModeML:
		start := time.Now()
		d = eng.predictor.Discount(ctx, data)
		metrics.ModelPredictDuration.Observe(time.Since(start).Seconds())
	default:
		d = score.Discount(data, eng.scoring)
	}
	return eng.capDiscount(d)
}

func (eng *Engine) capDiscount(d int) int {
	if eng.maxDiscount > 0 {
		return min(d, eng.maxDiscount)
	}
	return d
}

// ApplyStrategy prices every item with the given strategy and returns fresh
// scored records; the input slice is not modified. Unknown modes use the
// greedy strategy.
func (eng *Engine) ApplyStrategy(
	ctx context.Context,
	items []domain.InventoryItem,
	mode domain.Mode,
) []domain.ScoredItem {
	mode = domain.ParseMode(string(mode))
	dist := metrics.DiscountDistribution.WithLabelValues(string(mode))

	out := make([]domain.ScoredItem, len(items))
	for i := range items {
		d := eng.Discount(ctx, &items[i], mode)
		out[i] = domain.ScoredItem{
			InventoryItem:   items[i],
			DiscountPercent: d,
			SellingPrice:    score.SellingPrice(items[i].UnitPrice, d),
		}
		dist.Observe(float64(d))
	}

	if eng.itemsScored != nil && len(out) > 0 {
		eng.itemsScored.Add(ctx, int64(len(out)),
			metric.WithAttributes(attribute.String("mode", string(mode))))
	}

	return out
}
