package engine

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeMocks "github.com/donaldgifford/markdown-pricer/internal/store/mocks"
	"github.com/donaldgifford/markdown-pricer/pkg/predict"
	score "github.com/donaldgifford/markdown-pricer/pkg/scorer"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// quietLogger returns a logger that discards output for tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pressureModel predicts 10 + 10*stock_pressure.
func pressureModel() *predict.LinearModel {
	return &predict.LinearModel{Intercept: 10, Coefficients: []float64{0, 10, 0}}
}

func newTestEngine(ms *storeMocks.MockStore, opts ...EngineOption) *Engine {
	p := predict.NewPredictor(pressureModel(), predict.WithLogger(quietLogger()))
	opts = append([]EngineOption{WithLogger(quietLogger())}, opts...)
	if ms == nil {
		return NewEngine(nil, p, opts...)
	}
	return NewEngine(ms, p, opts...)
}

// fixtureInventory covers every segment:
//
//	A: near expiry, slow, high pressure   greedy 70, ml 25
//	B: fresh, fast, low pressure          greedy 12, ml 13
//	C: expired                            never discounted
//	D: fresh, slow                        greedy 30, ml 10
//	E: expired, older than C
func fixtureInventory() []domain.InventoryItem {
	return []domain.InventoryItem{
		{ProductID: "A", DaysToExpiry: 3, TurnoverLabel: "Slow", StockPressure: 1.5, UnitPrice: 10, StockQuantity: 4},
		{ProductID: "B", DaysToExpiry: 12, TurnoverLabel: "fast", StockPressure: 0.3, UnitPrice: 5, StockQuantity: 9},
		{ProductID: "C", DaysToExpiry: -2, TurnoverLabel: "slow", StockPressure: 2, UnitPrice: 2.5, StockQuantity: 3, IsExpired: true},
		{ProductID: "D", DaysToExpiry: 40, TurnoverLabel: "slow", StockPressure: 0, UnitPrice: 8, StockQuantity: 1},
		{ProductID: "E", DaysToExpiry: -9, TurnoverLabel: "fast", StockPressure: 0.1, UnitPrice: 1.1, StockQuantity: 10, IsExpired: true},
	}
}

func scoredIDs(items []domain.ScoredItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ProductID
	}
	return out
}

func TestNewEngine_Defaults(t *testing.T) {
	t.Parallel()

	eng := NewEngine(nil, nil)
	assert.InDelta(t, DefaultCostRatio, eng.costRatio, 1e-9)
	assert.Equal(t, score.DefaultOptions(), eng.scoring)
	assert.NotNil(t, eng.log)
	assert.NotNil(t, eng.tracer)
	assert.NotNil(t, eng.nowFunc)
	assert.Nil(t, eng.Predictor())
}

func TestNewEngine_WithOptions(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	l := quietLogger()
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	opts := score.Options{Weights: score.Weights{Expiry: 1}, ClampExpiry: true}

	eng := NewEngine(ms, nil,
		WithLogger(l),
		WithScoring(opts),
		WithCostRatio(0.5),
		WithNowFunc(func() time.Time { return now }),
	)

	assert.Same(t, l, eng.log)
	assert.Equal(t, opts, eng.scoring)
	assert.InDelta(t, 0.5, eng.costRatio, 1e-9)
	assert.Equal(t, now, eng.nowFunc())
}

func TestWithCostRatio_IgnoresNonPositive(t *testing.T) {
	t.Parallel()

	for _, r := range []float64{0, -1} {
		eng := NewEngine(nil, nil, WithCostRatio(r))
		assert.InDelta(t, DefaultCostRatio, eng.costRatio, 1e-9)
	}
}

func TestFixtureInventory_GreedyExpectations(t *testing.T) {
	t.Parallel()

	// Guards the fixture comments above against drift in the scorer.
	items := fixtureInventory()
	opts := score.DefaultOptions()
	require.Equal(t, 70, score.Discount(ItemData(&items[0]), opts))
	require.Equal(t, 12, score.Discount(ItemData(&items[1]), opts))
	require.Equal(t, 30, score.Discount(ItemData(&items[3]), opts))
}
