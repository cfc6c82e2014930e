// Package store defines the datastore abstraction for markdown-pricer.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("not found")

// InventoryQuery defines optional filters for inventory queries.
type InventoryQuery struct {
	// Segment pushes the segment predicate into SQL. Empty means every row,
	// expired included; SegmentAll means every non-expired row.
	Segment   domain.Segment
	ProductID *string
	Limit     int // 0 means no limit
	Offset    int
	OrderBy   string // "product_id", "days_to_expiry", "stock_pressure", "unit_price"
}

// Store defines all data access operations for markdown-pricer.
type Store interface {
	// Inventory
	UpsertItems(ctx context.Context, items []domain.InventoryItem) (int, error)
	ReplaceInventory(ctx context.Context, items []domain.InventoryItem) (int, error)
	ListInventory(ctx context.Context, q *InventoryQuery) ([]domain.InventoryItem, int, error)
	GetItem(ctx context.Context, productID string) (*domain.InventoryItem, error)
	RefreshExpiry(ctx context.Context, asOf time.Time) (int, error)
	GetInventoryStats(ctx context.Context) (*domain.InventoryStats, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
