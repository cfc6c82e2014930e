package store

// SQL query constants organized by entity.
// PostgresStore methods reference these constants.

// Inventory queries.
const (
	queryUpsertItem = `
		INSERT INTO inventory_items (
			product_id, product_name, expiration_date, stock_quantity,
			days_to_expiry, turnover_label, stock_pressure, unit_price,
			is_expired, updated_at
		) VALUES (
			@product_id, @product_name, @expiration_date, @stock_quantity,
			@days_to_expiry, @turnover_label, @stock_pressure, @unit_price,
			@is_expired, now()
		)
		ON CONFLICT (product_id) DO UPDATE SET
			product_name = EXCLUDED.product_name,
			expiration_date = EXCLUDED.expiration_date,
			stock_quantity = EXCLUDED.stock_quantity,
			days_to_expiry = EXCLUDED.days_to_expiry,
			turnover_label = EXCLUDED.turnover_label,
			stock_pressure = EXCLUDED.stock_pressure,
			unit_price = EXCLUDED.unit_price,
			is_expired = EXCLUDED.is_expired,
			updated_at = now()`

	queryTruncateInventory = `DELETE FROM inventory_items`

	queryGetItem = baseInventorySelect + `
		WHERE product_id = $1`

	// Items without an expiration date keep their imported values.
	queryRefreshExpiry = `
		UPDATE inventory_items SET
			days_to_expiry = (expiration_date - $1::date),
			is_expired = (expiration_date < $1::date),
			updated_at = now()
		WHERE expiration_date IS NOT NULL`

	queryInventoryStats = `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_expired) AS expired,
			COUNT(*) FILTER (WHERE NOT is_expired AND days_to_expiry <= $1) AS near_expiry,
			COUNT(*) FILTER (WHERE NOT is_expired AND LOWER(TRIM(turnover_label)) = $2) AS low_turnover,
			COUNT(*) FILTER (WHERE NOT is_expired AND stock_pressure > $3) AS high_pressure
		FROM inventory_items`
)
