// Package engine implements the markdown pricing core: strategy dispatch,
// inventory segmentation, the derived inventory views, and the import and
// expiry-refresh jobs.
package engine

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/markdown-pricer/internal/inventory"
	"github.com/donaldgifford/markdown-pricer/internal/notify"
	"github.com/donaldgifford/markdown-pricer/internal/store"
	"github.com/donaldgifford/markdown-pricer/pkg/predict"
	score "github.com/donaldgifford/markdown-pricer/pkg/scorer"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

const instrumentationName = "github.com/donaldgifford/markdown-pricer/internal/engine"

// DefaultCostRatio is the cost price as a share of unit price used for
// margin analysis.
const DefaultCostRatio = 0.6

// DefaultDigestSize caps the markdowns listed in one digest.
const DefaultDigestSize = 10

// Engine prices inventory with the greedy scorer or the model predictor.
// It holds no mutable state after construction and is safe for concurrent use.
type Engine struct {
	store     store.Store
	predictor *predict.Predictor
	source    inventory.Source
	notifier  notify.Notifier
	log       *slog.Logger

	scoring     score.Options
	maxDiscount int
	costRatio   float64
	digestSize  int
	digestMode  domain.Mode
	nowFunc     func() time.Time

	tracer      trace.Tracer
	itemsScored metric.Int64Counter
	importRows  metric.Int64Counter
}

// NewEngine creates a new Engine with injected dependencies. The store may be
// nil for offline scoring; the predictor may be nil, in which case ml mode
// always yields the safe default discount.
func NewEngine(
	s store.Store,
	p *predict.Predictor,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		store:       s,
		predictor:   p,
		log:         slog.Default(),
		scoring:     score.DefaultOptions(),
		maxDiscount: score.MaxDiscount,
		costRatio:   DefaultCostRatio,
		digestSize:  DefaultDigestSize,
		digestMode:  domain.ModeGreedy,
		nowFunc:     time.Now,
		tracer:      otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(eng)
	}

	meter := otel.Meter(instrumentationName)

	var err error
	eng.itemsScored, err = meter.Int64Counter("mdp.engine.items_scored",
		metric.WithDescription("Items priced by the strategy dispatcher."),
	)
	if err != nil {
		eng.log.Warn("creating otel counter", "name", "mdp.engine.items_scored", "error", err)
	}
	eng.importRows, err = meter.Int64Counter("mdp.engine.import.rows",
		metric.WithDescription("Inventory rows written by imports."),
	)
	if err != nil {
		eng.log.Warn("creating otel counter", "name", "mdp.engine.import.rows", "error", err)
	}

	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithScoring overrides the greedy scorer options.
func WithScoring(o score.Options) EngineOption {
	return func(e *Engine) {
		e.scoring = o
	}
}

// WithMaxDiscount lowers the discount cap applied to every strategy.
// Values outside (0, score.MaxDiscount] keep the policy cap.
func WithMaxDiscount(d int) EngineOption {
	return func(e *Engine) {
		if d > 0 && d <= score.MaxDiscount {
			e.maxDiscount = d
		}
	}
}

// WithCostRatio sets the cost-to-price ratio for margin analysis.
// Non-positive values keep the default.
func WithCostRatio(r float64) EngineOption {
	return func(e *Engine) {
		if r > 0 {
			e.costRatio = r
		}
	}
}

// WithSource sets the inventory source used by RunImport.
func WithSource(s inventory.Source) EngineOption {
	return func(e *Engine) {
		e.source = s
	}
}

// WithNotifier sets the notifier used by RunDigest.
func WithNotifier(n notify.Notifier) EngineOption {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithDigest sets how many markdowns a digest lists and which strategy
// prices them. A non-positive size keeps the default.
func WithDigest(size int, mode domain.Mode) EngineOption {
	return func(e *Engine) {
		if size > 0 {
			e.digestSize = size
		}
		e.digestMode = domain.ParseMode(string(mode))
	}
}

// WithNowFunc overrides the clock for testing.
func WithNowFunc(f func() time.Time) EngineOption {
	return func(e *Engine) {
		e.nowFunc = f
	}
}

// Predictor returns the engine's model predictor (may be nil).
func (eng *Engine) Predictor() *predict.Predictor {
	return eng.predictor
}
