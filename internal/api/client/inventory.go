package client

import (
	"context"
	"net/url"

	"github.com/donaldgifford/markdown-pricer/internal/engine"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// InventoryPage is a priced inventory segment.
type InventoryPage struct {
	Segment domain.Segment      `json:"segment"`
	Mode    domain.Mode         `json:"mode"`
	Items   []domain.ScoredItem `json:"items"`
	Count   int                 `json:"count"`
}

// Inventory returns a segment of the stored inventory priced with mode.
// Empty arguments let the server pick its defaults.
func (c *Client) Inventory(ctx context.Context, segment, mode string) (*InventoryPage, error) {
	var page InventoryPage
	path := withQuery("/api/v1/inventory", "segment", segment, "mode", mode)
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Item prices a single stored item.
func (c *Client) Item(ctx context.Context, productID, mode string) (*domain.ScoredItem, error) {
	var it domain.ScoredItem
	path := withQuery("/api/v1/inventory/"+url.PathEscape(productID), "mode", mode)
	if err := c.get(ctx, path, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// Expired returns the expired stock loss report.
func (c *Client) Expired(ctx context.Context) (*domain.LossReport, error) {
	var report domain.LossReport
	if err := c.get(ctx, "/api/v1/inventory/expired", &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Stats returns per-segment inventory counts.
func (c *Client) Stats(ctx context.Context) (*domain.InventoryStats, error) {
	var stats domain.InventoryStats
	if err := c.get(ctx, "/api/v1/inventory/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Compare returns greedy and ml decisions for active inventory.
func (c *Client) Compare(ctx context.Context) (*engine.ComparisonReport, error) {
	var report engine.ComparisonReport
	if err := c.get(ctx, "/api/v1/compare", &report); err != nil {
		return nil, err
	}
	return &report, nil
}
