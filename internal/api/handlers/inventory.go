package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/markdown-pricer/internal/engine"
	"github.com/donaldgifford/markdown-pricer/internal/store"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// InventoryProvider defines the engine views served by the inventory handler.
type InventoryProvider interface {
	Inventory(ctx context.Context, seg domain.Segment, mode domain.Mode) ([]domain.ScoredItem, error)
	Item(ctx context.Context, productID string, mode domain.Mode) (*domain.ScoredItem, error)
	ExpiredLoss(ctx context.Context) (*domain.LossReport, error)
	Compare(ctx context.Context) (*engine.ComparisonReport, error)
}

// StatsProvider defines the store method behind the stats endpoint.
type StatsProvider interface {
	GetInventoryStats(ctx context.Context) (*domain.InventoryStats, error)
}

// InventoryHandler handles inventory pricing endpoints.
type InventoryHandler struct {
	engine InventoryProvider
	stats  StatsProvider
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(e InventoryProvider, s StatsProvider) *InventoryHandler {
	return &InventoryHandler{engine: e, stats: s}
}

// --- Input/Output types ---

// ListInventoryInput selects a segment and a pricing strategy.
type ListInventoryInput struct {
	Segment string `query:"segment" doc:"expired, near_expiry, low_turnover, high_pressure or all; anything else means all"`
	Mode    string `query:"mode"    doc:"greedy or ml; anything else means greedy"`
}

// ListInventoryOutput is the response for a priced inventory segment.
type ListInventoryOutput struct {
	Body struct {
		Segment domain.Segment      `json:"segment"`
		Mode    domain.Mode         `json:"mode"`
		Items   []domain.ScoredItem `json:"items"`
		Count   int                 `json:"count"`
	}
}

// GetItemInput is the input for pricing a single item.
type GetItemInput struct {
	ProductID string `path:"product_id" doc:"Product identifier"`
	Mode      string `query:"mode"      doc:"greedy or ml; anything else means greedy"`
}

// GetItemOutput is the response for a single priced item.
type GetItemOutput struct {
	Body domain.ScoredItem
}

// ExpiredOutput is the expired stock loss report.
type ExpiredOutput struct {
	Body domain.LossReport
}

// StatsOutput holds per-segment inventory counts.
type StatsOutput struct {
	Body domain.InventoryStats
}

// CompareOutput is the greedy vs ml comparison report.
type CompareOutput struct {
	Body engine.ComparisonReport
}

// --- Handlers ---

// ListInventory prices a segment of the stored inventory, highest discount first.
func (h *InventoryHandler) ListInventory(
	ctx context.Context,
	input *ListInventoryInput,
) (*ListInventoryOutput, error) {
	seg := domain.ParseSegment(input.Segment)
	mode := domain.ParseMode(input.Mode)

	items, err := h.engine.Inventory(ctx, seg, mode)
	if err != nil {
		return nil, huma.Error500InternalServerError("inventory query failed: " + err.Error())
	}

	if items == nil {
		items = []domain.ScoredItem{}
	}

	resp := &ListInventoryOutput{}
	resp.Body.Segment = seg
	resp.Body.Mode = mode
	resp.Body.Items = items
	resp.Body.Count = len(items)
	return resp, nil
}

// GetItem prices a single stored item.
func (h *InventoryHandler) GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error) {
	it, err := h.engine.Item(ctx, input.ProductID, domain.ParseMode(input.Mode))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("item not found")
		}
		return nil, huma.Error500InternalServerError("item query failed: " + err.Error())
	}
	return &GetItemOutput{Body: *it}, nil
}

// Expired returns the loss report for expired stock.
func (h *InventoryHandler) Expired(ctx context.Context, _ *struct{}) (*ExpiredOutput, error) {
	report, err := h.engine.ExpiredLoss(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("expired report failed: " + err.Error())
	}
	return &ExpiredOutput{Body: *report}, nil
}

// Stats returns per-segment inventory counts.
func (h *InventoryHandler) Stats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	stats, err := h.stats.GetInventoryStats(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("inventory stats failed: " + err.Error())
	}
	return &StatsOutput{Body: *stats}, nil
}

// Compare returns greedy and ml decisions side by side with margins.
func (h *InventoryHandler) Compare(ctx context.Context, _ *struct{}) (*CompareOutput, error) {
	report, err := h.engine.Compare(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("comparison failed: " + err.Error())
	}
	return &CompareOutput{Body: *report}, nil
}

// RegisterInventoryRoutes registers inventory endpoints with the Huma API.
func RegisterInventoryRoutes(api huma.API, h *InventoryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-inventory",
		Method:      http.MethodGet,
		Path:        "/api/v1/inventory",
		Summary:     "List priced inventory",
		Description: "Returns a segment of the stored inventory priced with the chosen strategy, " +
			"sorted by discount descending. Expired items are never discounted.",
		Tags:   []string{"inventory"},
		Errors: []int{http.StatusInternalServerError},
	}, h.ListInventory)

	huma.Register(api, huma.Operation{
		OperationID: "get-inventory-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/inventory/stats",
		Summary:     "Inventory segment counts",
		Description: "Returns item counts per segment.",
		Tags:        []string{"inventory"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Stats)

	huma.Register(api, huma.Operation{
		OperationID: "get-expired-report",
		Method:      http.MethodGet,
		Path:        "/api/v1/inventory/expired",
		Summary:     "Expired stock loss report",
		Description: "Returns expired items, most recently expired first, with the value lost at unit price.",
		Tags:        []string{"inventory"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Expired)

	huma.Register(api, huma.Operation{
		OperationID: "get-inventory-item",
		Method:      http.MethodGet,
		Path:        "/api/v1/inventory/{product_id}",
		Summary:     "Price a single item",
		Description: "Returns one stored item priced with the chosen strategy.",
		Tags:        []string{"inventory"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.GetItem)

	huma.Register(api, huma.Operation{
		OperationID: "compare-strategies",
		Method:      http.MethodGet,
		Path:        "/api/v1/compare",
		Summary:     "Compare greedy and ml pricing",
		Description: "Prices active inventory with both strategies and reports margins at the configured cost ratio.",
		Tags:        []string{"pricing"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Compare)
}
