// Package score implements the rule-based ("greedy") markdown discount
// heuristic and the discount/price bounds shared by every strategy.
package score

import (
	"math"
)

// Discount bounds. MaxDiscount is a hard policy cap for every strategy.
const (
	MinDiscount = 0
	MaxDiscount = 70
)

const (
	// ExpiryHorizonDays is where expiry urgency reaches zero.
	ExpiryHorizonDays = 15.0
	// PressureSaturation is the stock pressure at which the pressure score saturates.
	PressureSaturation = 3.0
)

// Weights defines the relative importance of each scoring factor.
type Weights struct {
	Expiry   float64
	Turnover float64
	Pressure float64
}

// DefaultWeights returns the default scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Expiry:   0.5,
		Turnover: 0.3,
		Pressure: 0.2,
	}
}

// Options tunes the greedy scorer.
type Options struct {
	Weights Weights
	// ClampExpiry caps the expiry score at 1.0. Without it, items already
	// past their expiry date score above 1.0 on that factor.
	ClampExpiry bool
}

// DefaultOptions returns the default weights with an unclamped expiry score.
func DefaultOptions() Options {
	return Options{Weights: DefaultWeights()}
}

// ItemData holds the fields needed for scoring (decoupled from the inventory model).
type ItemData struct {
	DaysToExpiry  float64
	StockPressure float64
	Slow          bool
}

// Breakdown shows per-factor scores.
type Breakdown struct {
	Expiry   float64 `json:"expiry"`
	Turnover float64 `json:"turnover"`
	Pressure float64 `json:"pressure"`
	Raw      float64 `json:"raw"`
	Discount int     `json:"discount"`
}

// Score computes the greedy discount for an item.
func Score(data *ItemData, opts Options) Breakdown {
	b := Breakdown{
		Expiry:   expiryScore(data.DaysToExpiry, opts.ClampExpiry),
		Turnover: turnoverScore(data.Slow),
		Pressure: pressureScore(data.StockPressure),
	}

	w := opts.Weights
	b.Raw = b.Expiry*w.Expiry + b.Turnover*w.Turnover + b.Pressure*w.Pressure
	b.Discount = RoundDiscount(b.Raw * 100)

	return b
}

// Discount is shorthand for Score(data, opts).Discount.
func Discount(data *ItemData, opts Options) int {
	return Score(data, opts).Discount
}

// RoundDiscount rounds a raw percentage half-to-even and clamps it into
// [MinDiscount, MaxDiscount]. Non-finite input yields MinDiscount.
func RoundDiscount(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MinDiscount
	}
	if v >= MaxDiscount {
		return MaxDiscount
	}
	if v <= MinDiscount {
		return MinDiscount
	}
	return ClampDiscount(int(math.RoundToEven(v)))
}

// ClampDiscount bounds a discount to [MinDiscount, MaxDiscount].
func ClampDiscount(d int) int {
	return min(max(d, MinDiscount), MaxDiscount)
}

// SellingPrice applies a discount percentage to a unit price.
func SellingPrice(unitPrice float64, discount int) float64 {
	return unitPrice * (1 - float64(discount)/100)
}

// expiryScore rises linearly as expiry approaches, reaching 1.0 on the
// expiry day. Negative days push it above 1.0 unless clamped.
func expiryScore(days float64, clamp bool) float64 {
	s := math.Max(0, (ExpiryHorizonDays-days)/ExpiryHorizonDays)
	if clamp {
		s = math.Min(s, 1)
	}
	return s
}

func turnoverScore(slow bool) float64 {
	if slow {
		return 1
	}
	return 0
}

// pressureScore saturates at PressureSaturation.
func pressureScore(pressure float64) float64 {
	return math.Min(pressure/PressureSaturation, 1)
}
