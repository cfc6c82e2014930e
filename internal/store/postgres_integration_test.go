//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/markdown-pricer/internal/store"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("mdp_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testInventory() []domain.InventoryItem {
	return []domain.InventoryItem{
		{
			ProductID: "P-001", ProductName: "Greek Yogurt", ExpirationDate: date(2026, 10, 20),
			StockQuantity: 40, DaysToExpiry: 3, TurnoverLabel: "Slow", StockPressure: 2.5, UnitPrice: 4.5,
		},
		{
			ProductID: "P-002", ProductName: "Sourdough", ExpirationDate: date(2026, 11, 10),
			StockQuantity: 12, DaysToExpiry: 24, TurnoverLabel: "Fast", StockPressure: 0.4, UnitPrice: 6,
		},
		{
			ProductID: "P-003", ProductName: "Milk 1L", ExpirationDate: date(2026, 10, 10),
			StockQuantity: 8, DaysToExpiry: -7, TurnoverLabel: "Medium", StockPressure: 1.2, UnitPrice: 1.99,
			IsExpired: true,
		},
	}
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_MigrateIdempotent(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestPostgresStore_ReplaceAndList(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	n, err := s.ReplaceInventory(ctx, testInventory())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	all, total, err := s.ListInventory(ctx, &store.InventoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, "P-001", all[0].ProductID)
	require.NotNil(t, all[0].ExpirationDate)
	assert.Equal(t, 2026, all[0].ExpirationDate.Year())

	tests := []struct {
		segment domain.Segment
		want    []string
	}{
		{domain.SegmentExpired, []string{"P-003"}},
		{domain.SegmentNearExpiry, []string{"P-001"}},
		{domain.SegmentLowTurnover, []string{"P-001"}},
		{domain.SegmentHighPressure, []string{"P-001"}},
		{domain.SegmentAll, []string{"P-001", "P-002"}},
	}

	for _, tt := range tests {
		items, count, err := s.ListInventory(ctx, &store.InventoryQuery{Segment: tt.segment})
		require.NoError(t, err, tt.segment)
		assert.Equal(t, len(tt.want), count, tt.segment)

		var ids []string
		for _, it := range items {
			ids = append(ids, it.ProductID)
		}
		assert.Equal(t, tt.want, ids, tt.segment)
	}

	// Replacing drops rows that are no longer present.
	n, err = s.ReplaceInventory(ctx, testInventory()[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, total, err = s.ListInventory(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestPostgresStore_UpsertAndGet(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	items := testInventory()
	_, err := s.UpsertItems(ctx, items)
	require.NoError(t, err)

	items[0].UnitPrice = 3.99
	_, err = s.UpsertItems(ctx, items[:1])
	require.NoError(t, err)

	got, err := s.GetItem(ctx, "P-001")
	require.NoError(t, err)
	assert.InDelta(t, 3.99, got.UnitPrice, 1e-9)
	assert.False(t, got.UpdatedAt.IsZero())

	_, err = s.GetItem(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostgresStore_RefreshExpiry(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	_, err := s.ReplaceInventory(ctx, testInventory())
	require.NoError(t, err)

	n, err := s.RefreshExpiry(ctx, time.Date(2026, 10, 21, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	yogurt, err := s.GetItem(ctx, "P-001")
	require.NoError(t, err)
	assert.InDelta(t, -1, yogurt.DaysToExpiry, 1e-9)
	assert.True(t, yogurt.IsExpired)

	bread, err := s.GetItem(ctx, "P-002")
	require.NoError(t, err)
	assert.InDelta(t, 20, bread.DaysToExpiry, 1e-9)
	assert.False(t, bread.IsExpired)
}

func TestPostgresStore_GetInventoryStats(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	_, err := s.ReplaceInventory(ctx, testInventory())
	require.NoError(t, err)

	st, err := s.GetInventoryStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domain.InventoryStats{
		Total:        3,
		Expired:      1,
		NearExpiry:   1,
		LowTurnover:  1,
		HighPressure: 1,
	}, st)
}
