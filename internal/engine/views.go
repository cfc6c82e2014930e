package engine

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/markdown-pricer/internal/metrics"
	"github.com/donaldgifford/markdown-pricer/internal/store"
	"github.com/donaldgifford/markdown-pricer/pkg/predict"
	score "github.com/donaldgifford/markdown-pricer/pkg/scorer"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// ErrNoStore is returned by views that need stored inventory when the
// engine was built without a store.
var ErrNoStore = errors.New("engine has no store")

// ComparisonReport holds a greedy vs ml comparison over active inventory.
type ComparisonReport struct {
	Items   []domain.Comparison      `json:"items"`
	Summary domain.ComparisonSummary `json:"summary"`
}

// FeatureImportance is one feature's importance score.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// ModelInfo describes the loaded model.
type ModelInfo struct {
	Name       string              `json:"name"`
	Loaded     bool                `json:"loaded"`
	Features   []string            `json:"features"`
	Importance []FeatureImportance `json:"importance,omitempty"`
}

func (eng *Engine) listSegment(ctx context.Context, seg domain.Segment) ([]domain.InventoryItem, error) {
	if eng.store == nil {
		return nil, ErrNoStore
	}
	items, _, err := eng.store.ListInventory(ctx, &store.InventoryQuery{Segment: seg})
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	return items, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Inventory prices the stored items in a segment, highest discount first.
func (eng *Engine) Inventory(
	ctx context.Context,
	seg domain.Segment,
	mode domain.Mode,
) (_ []domain.ScoredItem, err error) {
	seg = domain.ParseSegment(string(seg))
	mode = domain.ParseMode(string(mode))

	ctx, span := eng.tracer.Start(ctx, "engine.Inventory", trace.WithAttributes(
		attribute.String("segment", string(seg)),
		attribute.String("mode", string(mode)),
	))
	defer func() { endSpan(span, err) }()

	items, err := eng.listSegment(ctx, seg)
	if err != nil {
		return nil, err
	}

	scored := eng.GetFilteredInventory(ctx, items, seg, mode)
	SortByDiscount(scored)

	span.SetAttributes(attribute.Int("items", len(scored)))
	return scored, nil
}

// SortByDiscount orders items by discount, highest first. Ties keep their
// input order.
func SortByDiscount(items []domain.ScoredItem) {
	slices.SortStableFunc(items, func(a, b domain.ScoredItem) int {
		return cmp.Compare(b.DiscountPercent, a.DiscountPercent)
	})
}

// Item prices a single stored item. Expired items are never discounted.
func (eng *Engine) Item(
	ctx context.Context,
	productID string,
	mode domain.Mode,
) (*domain.ScoredItem, error) {
	if eng.store == nil {
		return nil, ErrNoStore
	}

	it, err := eng.store.GetItem(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("getting item %s: %w", productID, err)
	}

	seg := domain.SegmentAll
	if it.IsExpired {
		seg = domain.SegmentExpired
	}

	scored := eng.GetFilteredInventory(ctx, []domain.InventoryItem{*it}, seg, mode)
	return &scored[0], nil
}

// ExpiredLoss reports expired stock, most recently expired first, with the
// value lost at unit price.
func (eng *Engine) ExpiredLoss(ctx context.Context) (_ *domain.LossReport, err error) {
	ctx, span := eng.tracer.Start(ctx, "engine.ExpiredLoss")
	defer func() { endSpan(span, err) }()

	items, err := eng.listSegment(ctx, domain.SegmentExpired)
	if err != nil {
		return nil, err
	}

	report := BuildLossReport(items)
	metrics.ExpiredLossTotal.Set(report.TotalLoss)
	return report, nil
}

// BuildLossReport computes per-item and total loss for expired items.
// Non-expired items are ignored.
func BuildLossReport(items []domain.InventoryItem) *domain.LossReport {
	expired := Filter(items, domain.SegmentExpired)
	slices.SortStableFunc(expired, func(a, b domain.InventoryItem) int {
		return cmp.Compare(b.DaysToExpiry, a.DaysToExpiry)
	})

	report := &domain.LossReport{Items: make([]domain.LossLine, 0, len(expired))}
	total := decimal.Zero

	for i := range expired {
		it := expired[i]
		loss := decimal.NewFromFloat(it.UnitPrice).
			Mul(decimal.NewFromInt(int64(it.StockQuantity))).
			Round(2)
		total = total.Add(loss)

		report.Items = append(report.Items, domain.LossLine{
			InventoryItem: it,
			Loss:          loss.InexactFloat64(),
		})
		report.TotalUnits += it.StockQuantity
	}

	report.Count = len(report.Items)
	report.TotalLoss = total.InexactFloat64()
	return report
}

// Compare prices active inventory with both strategies and reports the
// resulting margins at the configured cost ratio.
func (eng *Engine) Compare(ctx context.Context) (_ *ComparisonReport, err error) {
	ctx, span := eng.tracer.Start(ctx, "engine.Compare")
	defer func() { endSpan(span, err) }()

	items, err := eng.listSegment(ctx, domain.SegmentAll)
	if err != nil {
		return nil, err
	}

	report := eng.BuildComparison(ctx, items)
	span.SetAttributes(
		attribute.Int("items", report.Summary.Count),
		attribute.Float64("agreement", report.Summary.Agreement),
	)
	return report, nil
}

// BuildComparison runs both strategies over the non-expired items.
func (eng *Engine) BuildComparison(ctx context.Context, items []domain.InventoryItem) *ComparisonReport {
	active := Filter(items, domain.SegmentAll)
	greedy := eng.ApplyStrategy(ctx, active, domain.ModeGreedy)
	ml := eng.ApplyStrategy(ctx, active, domain.ModeML)

	report := &ComparisonReport{Items: make([]domain.Comparison, len(active))}

	var sumGD, sumMD, sumGM, sumMM float64
	agree := 0

	for i := range active {
		cost := active[i].UnitPrice * eng.costRatio
		c := domain.Comparison{
			InventoryItem:  active[i],
			GreedyDiscount: greedy[i].DiscountPercent,
			MLDiscount:     ml[i].DiscountPercent,
			GreedyPrice:    greedy[i].SellingPrice,
			MLPrice:        ml[i].SellingPrice,
			CostPrice:      cost,
			GreedyMargin:   margin(greedy[i].SellingPrice, cost),
			MLMargin:       margin(ml[i].SellingPrice, cost),
		}
		report.Items[i] = c

		sumGD += float64(c.GreedyDiscount)
		sumMD += float64(c.MLDiscount)
		sumGM += c.GreedyMargin
		sumMM += c.MLMargin
		if c.GreedyDiscount == c.MLDiscount {
			agree++
		}
	}

	n := len(active)
	report.Summary.Count = n
	if n > 0 {
		fn := float64(n)
		report.Summary.MeanGreedyDiscount = sumGD / fn
		report.Summary.MeanMLDiscount = sumMD / fn
		report.Summary.MeanGreedyMargin = sumGM / fn
		report.Summary.MeanMLMargin = sumMM / fn
		report.Summary.Agreement = float64(agree) / fn
	}

	return report
}

func margin(price, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return (price - cost) / cost
}

// SlowTurnoverRatio is the turnover ratio below which an item counts as slow.
const SlowTurnoverRatio = 1.0

// SimulationInput describes a hypothetical item for the interactive predictor.
type SimulationInput struct {
	DaysToExpiry  float64 `json:"days_to_expiry"`
	StockPressure float64 `json:"stock_pressure"`
	TurnoverRatio float64 `json:"turnover_ratio"`
	UnitPrice     float64 `json:"unit_price"`
	StockQuantity int     `json:"stock_quantity"`
}

// SimulationResult is the interactive predictor's answer.
type SimulationResult struct {
	Mode         domain.Mode     `json:"mode"`
	Discount     int             `json:"discount_percent"`
	FinalPrice   float64         `json:"final_price"`
	TurnoverSlow bool            `json:"turnover_slow"`
	Greedy       score.Breakdown `json:"greedy"`
	ModelError   string          `json:"model_error,omitempty"`
}

// Simulate prices a hypothetical item. The slow flag is derived from the
// turnover ratio. A failed ml prediction still yields the safe default, with
// the failure reason reported alongside.
func (eng *Engine) Simulate(ctx context.Context, in SimulationInput, mode domain.Mode) SimulationResult {
	mode = domain.ParseMode(string(mode))
	data := &score.ItemData{
		DaysToExpiry:  in.DaysToExpiry,
		StockPressure: in.StockPressure,
		Slow:          in.TurnoverRatio < SlowTurnoverRatio,
	}

	res := SimulationResult{
		Mode:         mode,
		TurnoverSlow: data.Slow,
		Greedy:       score.Score(data, eng.scoring),
	}

	switch mode {
	case domain.ModeML:
		pr := eng.predictor.Predict(ctx, data)
		res.Discount = pr.Discount
		if pr.Err != nil {
			RecordPredictionFailure(pr.Err)
			res.ModelError = predict.FailureReason(pr.Err)
		}
	default:
		res.Discount = res.Greedy.Discount
	}

	res.Discount = eng.capDiscount(res.Discount)
	res.FinalPrice = score.SellingPrice(in.UnitPrice, res.Discount)
	return res
}

// Model describes the loaded model and, when the backend supports it, its
// feature importance sorted from most to least important.
func (eng *Engine) Model() ModelInfo {
	info := ModelInfo{
		Name:     eng.predictor.ModelName(),
		Loaded:   eng.predictor.Model() != nil,
		Features: predict.FeatureNames,
	}

	fi, ok := eng.predictor.Model().(predict.FeatureImporter)
	if !ok {
		return info
	}

	for name, v := range fi.Importance() {
		info.Importance = append(info.Importance, FeatureImportance{Feature: name, Importance: v})
	}
	slices.SortFunc(info.Importance, func(a, b FeatureImportance) int {
		if c := cmp.Compare(b.Importance, a.Importance); c != 0 {
			return c
		}
		return cmp.Compare(a.Feature, b.Feature)
	})
	return info
}
