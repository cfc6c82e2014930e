package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_DefaultWeights(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()
	sum := w.Expiry + w.Turnover + w.Pressure
	assert.InDelta(t, 1.0, sum, 0.001, "default weights should sum to 1.0")
}

func TestScore_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		data         ItemData
		wantExpiry   float64
		wantTurnover float64
		wantPressure float64
		wantDiscount int
	}{
		{
			name:         "all factors saturated clamps to 70",
			data:         ItemData{DaysToExpiry: 0, StockPressure: 3, Slow: true},
			wantExpiry:   1,
			wantTurnover: 1,
			wantPressure: 1,
			wantDiscount: 70,
		},
		{
			name:         "fresh fast item with no pressure gets nothing",
			data:         ItemData{DaysToExpiry: 15, StockPressure: 0},
			wantDiscount: 0,
		},
		{
			name:         "far from expiry scores zero on expiry",
			data:         ItemData{DaysToExpiry: 40, StockPressure: 0},
			wantDiscount: 0,
		},
		{
			name:         "mid expiry with moderate pressure",
			data:         ItemData{DaysToExpiry: 10, StockPressure: 1.5},
			wantExpiry:   5.0 / 15.0,
			wantPressure: 0.5,
			wantDiscount: 27,
		},
		{
			name:         "slow item five days out",
			data:         ItemData{DaysToExpiry: 5, Slow: true},
			wantExpiry:   10.0 / 15.0,
			wantTurnover: 1,
			wantDiscount: 63,
		},
		{
			name:         "pressure saturates above three",
			data:         ItemData{DaysToExpiry: 15, StockPressure: 9},
			wantPressure: 1,
			wantDiscount: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := Score(&tt.data, DefaultOptions())
			assert.InDelta(t, tt.wantExpiry, b.Expiry, 1e-9)
			assert.InDelta(t, tt.wantTurnover, b.Turnover, 1e-9)
			assert.InDelta(t, tt.wantPressure, b.Pressure, 1e-9)
			assert.Equal(t, tt.wantDiscount, b.Discount)
		})
	}
}

func TestScore_PastExpiry(t *testing.T) {
	t.Parallel()

	data := &ItemData{DaysToExpiry: -15}

	unclamped := Score(data, DefaultOptions())
	assert.InDelta(t, 2.0, unclamped.Expiry, 1e-9, "expiry score is uncapped by default")
	assert.Equal(t, 70, unclamped.Discount)

	opts := DefaultOptions()
	opts.ClampExpiry = true
	clamped := Score(data, opts)
	assert.InDelta(t, 1.0, clamped.Expiry, 1e-9)
	assert.Equal(t, 50, clamped.Discount)
}

func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	data := &ItemData{DaysToExpiry: 7, StockPressure: 2.2, Slow: true}
	first := Score(data, DefaultOptions())
	for range 100 {
		assert.Equal(t, first, Score(data, DefaultOptions()))
	}
}

func TestScore_Bounds(t *testing.T) {
	t.Parallel()

	for days := -30.0; days <= 60; days += 2.5 {
		for pressure := 0.0; pressure <= 10; pressure += 0.5 {
			for _, slow := range []bool{true, false} {
				d := Discount(&ItemData{DaysToExpiry: days, StockPressure: pressure, Slow: slow}, DefaultOptions())
				assert.GreaterOrEqual(t, d, MinDiscount)
				assert.LessOrEqual(t, d, MaxDiscount)
			}
		}
	}
}

func TestRoundDiscount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  int
	}{
		{"rounds down", 26.4, 26},
		{"rounds up", 26.6, 27},
		{"half to even down", 12.5, 12},
		{"half to even up", 13.5, 14},
		{"above cap", 73.2, 70},
		{"exactly cap", 70, 70},
		{"negative", -3.7, 0},
		{"huge", 1e12, 70},
		{"NaN", math.NaN(), 0},
		{"+Inf", math.Inf(1), 0},
		{"-Inf", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RoundDiscount(tt.input))
		})
	}
}

func TestClampDiscount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ClampDiscount(-5))
	assert.Equal(t, 35, ClampDiscount(35))
	assert.Equal(t, 70, ClampDiscount(100))
}

func TestSellingPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		unitPrice float64
		discount  int
		want      float64
	}{
		{"twenty percent off 100", 100, 20, 80},
		{"no discount", 49.99, 0, 49.99},
		{"max discount", 10, 70, 3},
		{"fractional price", 3.75, 15, 3.1875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, SellingPrice(tt.unitPrice, tt.discount), 1e-9)
		})
	}
}
