package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

func TestFilter_Segments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		segment domain.Segment
		want    []string
	}{
		{"expired", domain.SegmentExpired, []string{"C", "E"}},
		{"near expiry", domain.SegmentNearExpiry, []string{"A"}},
		{"low turnover", domain.SegmentLowTurnover, []string{"A", "D"}},
		{"high pressure", domain.SegmentHighPressure, []string{"A"}},
		{"all excludes expired", domain.SegmentAll, []string{"A", "B", "D"}},
		{"unknown behaves like all", domain.Segment("bogus"), []string{"A", "B", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Filter(fixtureInventory(), tt.segment)
			gotIDs := make([]string, len(got))
			for i := range got {
				gotIDs[i] = got[i].ProductID
			}
			assert.Equal(t, tt.want, gotIDs)
		})
	}
}

func TestMatches_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		item    domain.InventoryItem
		segment domain.Segment
		want    bool
	}{
		{"exactly ten days is near expiry", domain.InventoryItem{DaysToExpiry: 10}, domain.SegmentNearExpiry, true},
		{"just over ten days is not", domain.InventoryItem{DaysToExpiry: 10.01}, domain.SegmentNearExpiry, false},
		{"negative days without flag is near expiry", domain.InventoryItem{DaysToExpiry: -1}, domain.SegmentNearExpiry, true},
		{"pressure of exactly one is not high", domain.InventoryItem{StockPressure: 1}, domain.SegmentHighPressure, false},
		{"pressure above one is high", domain.InventoryItem{StockPressure: 1.0001}, domain.SegmentHighPressure, true},
		{"slow label is case-insensitive", domain.InventoryItem{TurnoverLabel: " SLOW "}, domain.SegmentLowTurnover, true},
		{"medium is not slow", domain.InventoryItem{TurnoverLabel: "medium"}, domain.SegmentLowTurnover, false},
		{"expired flag wins over days", domain.InventoryItem{DaysToExpiry: 30, IsExpired: true}, domain.SegmentExpired, true},
		{"expired item never near expiry", domain.InventoryItem{DaysToExpiry: 1, IsExpired: true}, domain.SegmentNearExpiry, false},
		{"expired item never in all", domain.InventoryItem{IsExpired: true}, domain.SegmentAll, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Matches(&tt.item, tt.segment))
		})
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	t.Parallel()

	got := Filter(nil, domain.SegmentAll)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetFilteredInventory_ExpiredNeverDiscounted(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(nil)

	for _, mode := range []domain.Mode{domain.ModeGreedy, domain.ModeML} {
		got := eng.GetFilteredInventory(context.Background(), fixtureInventory(), domain.SegmentExpired, mode)
		require.Len(t, got, 2)
		for _, it := range got {
			assert.True(t, it.IsExpired)
			assert.Equal(t, 0, it.DiscountPercent)
			assert.InDelta(t, it.UnitPrice, it.SellingPrice, 1e-9)
		}
	}
}

func TestGetFilteredInventory_ScoresSegment(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(nil)
	ctx := context.Background()

	greedy := eng.GetFilteredInventory(ctx, fixtureInventory(), domain.SegmentLowTurnover, domain.ModeGreedy)
	assert.Equal(t, []string{"A", "D"}, scoredIDs(greedy))
	assert.Equal(t, 70, greedy[0].DiscountPercent)
	assert.Equal(t, 30, greedy[1].DiscountPercent)
	assert.InDelta(t, 3.0, greedy[0].SellingPrice, 1e-9)
	assert.InDelta(t, 5.6, greedy[1].SellingPrice, 1e-9)

	ml := eng.GetFilteredInventory(ctx, fixtureInventory(), domain.SegmentLowTurnover, domain.ModeML)
	assert.Equal(t, 25, ml[0].DiscountPercent)
	assert.Equal(t, 10, ml[1].DiscountPercent)
}

func TestGetFilteredInventory_FreeFormArguments(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(nil)

	got := eng.GetFilteredInventory(context.Background(), fixtureInventory(), " Near_Expiry ", "ML")
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].ProductID)
	assert.Equal(t, 25, got[0].DiscountPercent)
}
