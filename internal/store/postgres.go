package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if !strings.Contains(connString, "pool_max_conns") {
		cfg.MaxConns = defaultPoolSize
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// UpsertItems inserts or updates items by product_id in a single batch.
func (s *PostgresStore) UpsertItems(ctx context.Context, items []domain.InventoryItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := upsertBatch(ctx, tx, items); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing upsert: %w", err)
	}
	return len(items), nil
}

// ReplaceInventory atomically swaps the stored inventory for items.
// On any error the previous inventory is left untouched.
func (s *PostgresStore) ReplaceInventory(ctx context.Context, items []domain.InventoryItem) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, queryTruncateInventory); err != nil {
		return 0, fmt.Errorf("clearing inventory: %w", err)
	}

	if err := upsertBatch(ctx, tx, items); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing inventory replace: %w", err)
	}
	return len(items), nil
}

func upsertBatch(ctx context.Context, tx pgx.Tx, items []domain.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range items {
		it := &items[i]
		batch.Queue(queryUpsertItem, pgx.NamedArgs{
			"product_id":      it.ProductID,
			"product_name":    it.ProductName,
			"expiration_date": it.ExpirationDate,
			"stock_quantity":  it.StockQuantity,
			"days_to_expiry":  it.DaysToExpiry,
			"turnover_label":  it.TurnoverLabel,
			"stock_pressure":  it.StockPressure,
			"unit_price":      it.UnitPrice,
			"is_expired":      it.IsExpired,
		})
	}

	br := tx.SendBatch(ctx, batch)
	for i := range items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("upserting item %s: %w", items[i].ProductID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing batch: %w", err)
	}
	return nil
}

// ListInventory queries inventory with optional filters, returning results
// and total count.
func (s *PostgresStore) ListInventory(
	ctx context.Context,
	q *InventoryQuery,
) ([]domain.InventoryItem, int, error) {
	if q == nil {
		q = &InventoryQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting inventory: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying inventory: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var it domain.InventoryItem
		if err := scanItem(rows, &it); err != nil {
			return nil, 0, fmt.Errorf("scanning inventory item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating inventory: %w", err)
	}

	return items, total, nil
}

// GetItem retrieves a single item by product ID.
func (s *PostgresStore) GetItem(ctx context.Context, productID string) (*domain.InventoryItem, error) {
	it := &domain.InventoryItem{}
	err := scanItem(s.pool.QueryRow(ctx, queryGetItem, productID), it)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return it, nil
}

// RefreshExpiry recomputes days_to_expiry and is_expired from
// expiration_date relative to asOf (truncated to a calendar date).
func (s *PostgresStore) RefreshExpiry(ctx context.Context, asOf time.Time) (int, error) {
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	tag, err := s.pool.Exec(ctx, queryRefreshExpiry, day)
	if err != nil {
		return 0, fmt.Errorf("refreshing expiry: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// GetInventoryStats returns aggregate segment counts.
func (s *PostgresStore) GetInventoryStats(ctx context.Context) (*domain.InventoryStats, error) {
	st := &domain.InventoryStats{}
	err := s.pool.QueryRow(ctx, queryInventoryStats,
		domain.NearExpiryDays, domain.TurnoverSlow, domain.HighPressureThreshold,
	).Scan(&st.Total, &st.Expired, &st.NearExpiry, &st.LowTurnover, &st.HighPressure)
	if err != nil {
		return nil, fmt.Errorf("querying inventory stats: %w", err)
	}
	return st, nil
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanItem(row scannable, it *domain.InventoryItem) error {
	return row.Scan(
		&it.ProductID, &it.ProductName, &it.ExpirationDate, &it.StockQuantity,
		&it.DaysToExpiry, &it.TurnoverLabel, &it.StockPressure, &it.UnitPrice,
		&it.IsExpired, &it.UpdatedAt,
	)
}
