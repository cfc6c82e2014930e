// Package domain defines the core business types for the markdown pricer.
package domain

import (
	"strings"
	"time"
)

// TurnoverSlow is the turnover label that marks low sell-through stock.
const TurnoverSlow = "slow"

// Segment thresholds. The store's SQL pushdown and the engine's in-memory
// predicates both use these.
const (
	NearExpiryDays        = 10.0
	HighPressureThreshold = 1.0
)

// Mode selects the discount strategy.
type Mode string

// Mode constants.
const (
	ModeGreedy Mode = "greedy"
	ModeML     Mode = "ml"
)

// ParseMode maps a free-form mode string onto a Mode.
// Anything that is not "ml" falls back to the greedy strategy.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeML {
		return ModeML
	}
	return ModeGreedy
}

// Segment names an actionable subset of inventory.
type Segment string

// Segment constants.
const (
	SegmentExpired      Segment = "expired"
	SegmentNearExpiry   Segment = "near_expiry"
	SegmentLowTurnover  Segment = "low_turnover"
	SegmentHighPressure Segment = "high_pressure"
	SegmentAll          Segment = "all"
)

// Segments lists every recognized segment in display order.
var Segments = []Segment{
	SegmentExpired,
	SegmentNearExpiry,
	SegmentLowTurnover,
	SegmentHighPressure,
	SegmentAll,
}

// ParseSegment maps a free-form filter string onto a Segment.
// Unrecognized values become SegmentAll (non-expired, no extra filter).
func ParseSegment(s string) Segment {
	seg := Segment(strings.ToLower(strings.TrimSpace(s)))
	switch seg {
	case SegmentExpired, SegmentNearExpiry, SegmentLowTurnover, SegmentHighPressure:
		return seg
	default:
		return SegmentAll
	}
}

// InventoryItem is a single perishable stock line.
type InventoryItem struct {
	ProductID      string     `json:"product_id"                db:"product_id"      validate:"required,max=128"`
	ProductName    string     `json:"product_name"              db:"product_name"    validate:"max=512"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty" db:"expiration_date"`
	StockQuantity  int        `json:"stock_quantity"            db:"stock_quantity"  validate:"gte=0"`

	DaysToExpiry  float64 `json:"days_to_expiry" db:"days_to_expiry"`
	TurnoverLabel string  `json:"turnover_label" db:"turnover_label" validate:"max=64"`
	StockPressure float64 `json:"stock_pressure" db:"stock_pressure" validate:"gte=0"`
	UnitPrice     float64 `json:"unit_price"     db:"unit_price"     validate:"gt=0"`
	IsExpired     bool    `json:"is_expired"     db:"is_expired"`

	UpdatedAt time.Time `json:"updated_at,omitzero" db:"updated_at"`
}

// IsSlow reports whether the item carries the slow turnover label.
func (i *InventoryItem) IsSlow() bool {
	return strings.EqualFold(strings.TrimSpace(i.TurnoverLabel), TurnoverSlow)
}

// ScoredItem is an InventoryItem with a pricing decision attached.
// It is derived per query and never persisted.
type ScoredItem struct {
	InventoryItem

	DiscountPercent int     `json:"discount_percent"`
	SellingPrice    float64 `json:"selling_price"`
}

// LossLine is a single expired item in the loss report.
type LossLine struct {
	InventoryItem

	Loss float64 `json:"loss"`
}

// LossReport summarizes stock that expired unsold.
type LossReport struct {
	Items      []LossLine `json:"items"`
	Count      int        `json:"count"`
	TotalUnits int        `json:"total_units"`
	TotalLoss  float64    `json:"total_loss"`
}

// Comparison holds both strategies' decisions for one item.
type Comparison struct {
	InventoryItem

	GreedyDiscount int     `json:"greedy_discount"`
	MLDiscount     int     `json:"ml_discount"`
	GreedyPrice    float64 `json:"greedy_price"`
	MLPrice        float64 `json:"ml_price"`
	CostPrice      float64 `json:"cost_price"`
	GreedyMargin   float64 `json:"greedy_margin"`
	MLMargin       float64 `json:"ml_margin"`
}

// ComparisonSummary aggregates a comparison run.
type ComparisonSummary struct {
	Count              int     `json:"count"`
	MeanGreedyDiscount float64 `json:"mean_greedy_discount"`
	MeanMLDiscount     float64 `json:"mean_ml_discount"`
	MeanGreedyMargin   float64 `json:"mean_greedy_margin"`
	MeanMLMargin       float64 `json:"mean_ml_margin"`
	Agreement          float64 `json:"agreement"` // share of items where both strategies agree
}

// InventoryStats holds aggregate counts for the stored inventory.
type InventoryStats struct {
	Total        int `json:"total"         db:"total"`
	Expired      int `json:"expired"       db:"expired"`
	NearExpiry   int `json:"near_expiry"   db:"near_expiry"`
	LowTurnover  int `json:"low_turnover"  db:"low_turnover"`
	HighPressure int `json:"high_pressure" db:"high_pressure"`
}
