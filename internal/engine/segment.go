package engine

import (
	"context"

	"github.com/donaldgifford/markdown-pricer/internal/metrics"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// Matches reports whether an item belongs to a segment. Only the expired
// segment admits expired items; unrecognized segments match every
// non-expired item.
func Matches(it *domain.InventoryItem, seg domain.Segment) bool {
	if seg == domain.SegmentExpired {
		return it.IsExpired
	}
	if it.IsExpired {
		return false
	}

	switch seg {
	case domain.SegmentNearExpiry:
		return it.DaysToExpiry <= domain.NearExpiryDays
	case domain.SegmentLowTurnover:
		return it.IsSlow()
	case domain.SegmentHighPressure:
		return it.StockPressure > domain.HighPressureThreshold
	default:
		return true
	}
}

// Filter returns the items in a segment, preserving order.
func Filter(items []domain.InventoryItem, seg domain.Segment) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(items))
	for i := range items {
		if Matches(&items[i], seg) {
			out = append(out, items[i])
		}
	}
	return out
}

// GetFilteredInventory selects a segment and prices it. Expired items are
// never discounted: they carry a zero discount and sell at unit price.
// Every other segment goes through ApplyStrategy.
func (eng *Engine) GetFilteredInventory(
	ctx context.Context,
	items []domain.InventoryItem,
	seg domain.Segment,
	mode domain.Mode,
) []domain.ScoredItem {
	seg = domain.ParseSegment(string(seg))
	mode = domain.ParseMode(string(mode))

	filtered := Filter(items, seg)

	var out []domain.ScoredItem
	if seg == domain.SegmentExpired {
		out = make([]domain.ScoredItem, len(filtered))
		for i := range filtered {
			out[i] = domain.ScoredItem{
				InventoryItem:   filtered[i],
				DiscountPercent: 0,
				SellingPrice:    filtered[i].UnitPrice,
			}
		}
	} else {
		out = eng.ApplyStrategy(ctx, filtered, mode)
	}

	metrics.StrategyApplicationsTotal.WithLabelValues(string(mode), string(seg)).Add(float64(len(out)))

	eng.log.Debug("segment priced",
		"segment", seg,
		"mode", mode,
		"items", len(out),
	)

	return out
}
