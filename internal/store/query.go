package store

import (
	"fmt"
	"strings"

	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

const (
	maxLimit = 10000

	orderByProductID     = "product_id"
	orderByDaysToExpiry  = "days_to_expiry"
	orderByStockPressure = "stock_pressure"
	orderByUnitPrice     = "unit_price"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByProductID:     "product_id ASC",
	orderByDaysToExpiry:  "days_to_expiry ASC, product_id ASC",
	orderByStockPressure: "stock_pressure DESC, product_id ASC",
	orderByUnitPrice:     "unit_price DESC, product_id ASC",
}

const defaultOrderBy = "product_id ASC"

const baseInventorySelect = `SELECT product_id, product_name, expiration_date, stock_quantity,
	days_to_expiry, turnover_label, stock_pressure, unit_price, is_expired, updated_at
FROM inventory_items`

const countInventorySelect = "SELECT COUNT(*) FROM inventory_items"

// segmentConditions returns the SQL predicates for a segment. They mirror
// engine.Matches exactly.
func segmentConditions(seg domain.Segment, paramIdx int) (conds []string, args []any) {
	if seg == "" {
		return nil, nil
	}

	if seg == domain.SegmentExpired {
		return []string{"is_expired = TRUE"}, nil
	}

	conds = append(conds, "is_expired = FALSE")

	switch seg {
	case domain.SegmentNearExpiry:
		conds = append(conds, fmt.Sprintf("days_to_expiry <= $%d", paramIdx))
		args = append(args, domain.NearExpiryDays)
	case domain.SegmentLowTurnover:
		conds = append(conds, fmt.Sprintf("LOWER(TRIM(turnover_label)) = $%d", paramIdx))
		args = append(args, domain.TurnoverSlow)
	case domain.SegmentHighPressure:
		conds = append(conds, fmt.Sprintf("stock_pressure > $%d", paramIdx))
		args = append(args, domain.HighPressureThreshold)
	default:
		// SegmentAll and anything unrecognized: non-expired only.
	}

	return conds, args
}

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for an inventory
// query. It returns two SQL strings (one for the data query, one for the
// count query) and the positional parameters.
func (q *InventoryQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.ProductID != nil {
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", paramIdx))
		args = append(args, *q.ProductID)
		paramIdx++
	}

	segConds, segArgs := segmentConditions(q.Segment, paramIdx)
	conditions = append(conditions, segConds...)
	args = append(args, segArgs...)

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if q.OrderBy != "" {
		if col, ok := validOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	dataSQL = fmt.Sprintf("%s%s ORDER BY %s", baseInventorySelect, whereClause, orderClause)

	if q.Limit > 0 {
		dataSQL += fmt.Sprintf(" LIMIT %d", min(q.Limit, maxLimit))
	}
	if q.Offset > 0 {
		dataSQL += fmt.Sprintf(" OFFSET %d", q.Offset)
	}

	countSQL = countInventorySelect + whereClause

	return dataSQL, countSQL, args
}
