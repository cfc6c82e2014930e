package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/markdown-pricer/internal/api/handlers"
	"github.com/donaldgifford/markdown-pricer/internal/engine"
	"github.com/donaldgifford/markdown-pricer/internal/store"
	storeMocks "github.com/donaldgifford/markdown-pricer/internal/store/mocks"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// fakeInventory implements InventoryProvider for testing.
type fakeInventory struct {
	items   []domain.ScoredItem
	item    *domain.ScoredItem
	loss    *domain.LossReport
	compare *engine.ComparisonReport
	err     error

	gotSegment domain.Segment
	gotMode    domain.Mode
}

func (f *fakeInventory) Inventory(
	_ context.Context,
	seg domain.Segment,
	mode domain.Mode,
) ([]domain.ScoredItem, error) {
	f.gotSegment, f.gotMode = seg, mode
	return f.items, f.err
}

func (f *fakeInventory) Item(_ context.Context, _ string, mode domain.Mode) (*domain.ScoredItem, error) {
	f.gotMode = mode
	return f.item, f.err
}

func (f *fakeInventory) ExpiredLoss(context.Context) (*domain.LossReport, error) {
	return f.loss, f.err
}

func (f *fakeInventory) Compare(context.Context) (*engine.ComparisonReport, error) {
	return f.compare, f.err
}

func scored(id string, discount int, price float64) domain.ScoredItem {
	return domain.ScoredItem{
		InventoryItem: domain.InventoryItem{
			ProductID:     id,
			UnitPrice:     price,
			StockQuantity: 4,
			TurnoverLabel: "slow",
		},
		DiscountPercent: discount,
		SellingPrice:    price * float64(100-discount) / 100,
	}
}

func TestListInventory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		query       string
		items       []domain.ScoredItem
		wantSegment domain.Segment
		wantMode    domain.Mode
		wantBody    []string
	}{
		{
			name:        "near expiry greedy",
			query:       "?segment=near_expiry&mode=greedy",
			items:       []domain.ScoredItem{scored("SKU-1", 70, 10)},
			wantSegment: domain.SegmentNearExpiry,
			wantMode:    domain.ModeGreedy,
			wantBody:    []string{`"SKU-1"`, `"discount_percent":70`, `"count":1`},
		},
		{
			name:        "unknown segment falls back to all",
			query:       "?segment=bogus&mode=ml",
			items:       []domain.ScoredItem{scored("SKU-2", 25, 4)},
			wantSegment: domain.SegmentAll,
			wantMode:    domain.ModeML,
			wantBody:    []string{`"segment":"all"`, `"mode":"ml"`},
		},
		{
			name:        "no params",
			wantSegment: domain.SegmentAll,
			wantMode:    domain.ModeGreedy,
			wantBody:    []string{`"items":[]`, `"count":0`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeInventory{items: tt.items}
			h := handlers.NewInventoryHandler(fake, nil)
			_, api := humatest.New(t)
			handlers.RegisterInventoryRoutes(api, h)

			resp := api.Get("/api/v1/inventory" + tt.query)
			require.Equal(t, http.StatusOK, resp.Code)
			assert.Equal(t, tt.wantSegment, fake.gotSegment)
			assert.Equal(t, tt.wantMode, fake.gotMode)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}

func TestListInventory_Error(t *testing.T) {
	t.Parallel()

	h := handlers.NewInventoryHandler(&fakeInventory{err: errors.New("db down")}, nil)
	_, api := humatest.New(t)
	handlers.RegisterInventoryRoutes(api, h)

	resp := api.Get("/api/v1/inventory")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "inventory query failed")
}

func TestGetItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		fake       *fakeInventory
		wantStatus int
		wantBody   string
	}{
		{
			name: "found",
			fake: &fakeInventory{item: func() *domain.ScoredItem {
				it := scored("SKU-1", 30, 8)
				return &it
			}()},
			wantStatus: http.StatusOK,
			wantBody:   `"selling_price":5.6`,
		},
		{
			name:       "not found",
			fake:       &fakeInventory{err: fmt.Errorf("getting item SKU-9: %w", store.ErrNotFound)},
			wantStatus: http.StatusNotFound,
			wantBody:   "item not found",
		},
		{
			name:       "store failure",
			fake:       &fakeInventory{err: errors.New("timeout")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "item query failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := handlers.NewInventoryHandler(tt.fake, nil)
			_, api := humatest.New(t)
			handlers.RegisterInventoryRoutes(api, h)

			resp := api.Get("/api/v1/inventory/SKU-1?mode=ml")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestExpired(t *testing.T) {
	t.Parallel()

	fake := &fakeInventory{loss: &domain.LossReport{
		Items: []domain.LossLine{{
			InventoryItem: domain.InventoryItem{ProductID: "SKU-C", StockQuantity: 3, UnitPrice: 2.5},
			Loss:          7.5,
		}},
		Count:      1,
		TotalUnits: 3,
		TotalLoss:  7.5,
	}}
	h := handlers.NewInventoryHandler(fake, nil)
	_, api := humatest.New(t)
	handlers.RegisterInventoryRoutes(api, h)

	resp := api.Get("/api/v1/inventory/expired")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total_loss":7.5`)
	assert.Contains(t, resp.Body.String(), `"SKU-C"`)
}

func TestStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stats      *domain.InventoryStats
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			stats:      &domain.InventoryStats{Total: 5, Expired: 2, NearExpiry: 1, LowTurnover: 2, HighPressure: 1},
			wantStatus: http.StatusOK,
			wantBody:   `"expired":2`,
		},
		{
			name:       "store error",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "inventory stats failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			ms.EXPECT().GetInventoryStats(mock.Anything).Return(tt.stats, tt.err).Once()

			h := handlers.NewInventoryHandler(&fakeInventory{}, ms)
			_, api := humatest.New(t)
			handlers.RegisterInventoryRoutes(api, h)

			resp := api.Get("/api/v1/inventory/stats")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	fake := &fakeInventory{compare: &engine.ComparisonReport{
		Items: []domain.Comparison{{
			InventoryItem:  domain.InventoryItem{ProductID: "SKU-A", UnitPrice: 10},
			GreedyDiscount: 70,
			MLDiscount:     25,
		}},
		Summary: domain.ComparisonSummary{Count: 1},
	}}
	h := handlers.NewInventoryHandler(fake, nil)
	_, api := humatest.New(t)
	handlers.RegisterInventoryRoutes(api, h)

	resp := api.Get("/api/v1/compare")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"greedy_discount":70`)
	assert.Contains(t, resp.Body.String(), `"ml_discount":25`)
}
