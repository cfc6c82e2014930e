package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	score "github.com/donaldgifford/markdown-pricer/pkg/scorer"
)

// Result is the outcome of a single prediction. When Err is set, Discount
// is always score.MinDiscount.
type Result struct {
	Discount int
	Raw      float64
	Err      error
}

// OK reports whether the prediction succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Predictor turns model output into a policy-bounded discount.
type Predictor struct {
	model     Model
	log       *slog.Logger
	onFailure func(error)
}

// Option configures the Predictor.
type Option func(*Predictor)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Predictor) {
		p.log = l
	}
}

// WithFailureHook registers a callback invoked for every failed prediction
// that Discount absorbs.
func WithFailureHook(f func(error)) Option {
	return func(p *Predictor) {
		p.onFailure = f
	}
}

// NewPredictor creates a Predictor around m. A nil model is allowed; every
// prediction then fails with ErrModelUnavailable.
func NewPredictor(m Model, opts ...Option) *Predictor {
	p := &Predictor{
		model: m,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ModelName returns the backing model's name, or "none".
func (p *Predictor) ModelName() string {
	if p == nil || p.model == nil {
		return "none"
	}
	return p.model.Name()
}

// Model returns the wrapped model (may be nil).
func (p *Predictor) Model() Model {
	if p == nil {
		return nil
	}
	return p.model
}

// Predict runs the model on a single item and reports the full outcome.
func (p *Predictor) Predict(ctx context.Context, data *score.ItemData) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("%w: %v", ErrModelPanic, r)}
		}
	}()

	if p == nil || p.model == nil {
		return Result{Err: ErrModelUnavailable}
	}

	features := Features(data)
	for i, f := range features {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Result{Err: fmt.Errorf("%w: %s is %v", ErrMalformedFeatures, FeatureNames[i], f)}
		}
	}

	out, err := p.model.Predict(ctx, [][]float64{features})
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %w", ErrPredictionFailed, err)}
	}
	if len(out) != 1 {
		return Result{Err: fmt.Errorf("%w: got %d values for 1 row", ErrUnexpectedOutput, len(out))}
	}

	raw := out[0]
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return Result{Raw: raw, Err: ErrNonFinitePrediction}
	}

	return Result{Discount: score.RoundDiscount(raw), Raw: raw}
}

// Discount returns the predicted discount, or score.MinDiscount when the
// prediction fails for any reason. It never returns an error.
func (p *Predictor) Discount(ctx context.Context, data *score.ItemData) int {
	res := p.Predict(ctx, data)
	if res.Err == nil {
		return res.Discount
	}

	if p != nil {
		if p.log != nil {
			p.log.Warn("prediction failed, using safe default",
				"model", p.ModelName(),
				"reason", FailureReason(res.Err),
				"error", res.Err,
			)
		}
		if p.onFailure != nil {
			p.onFailure(res.Err)
		}
	}

	return score.MinDiscount
}

// FailureReason maps a prediction error onto a short, stable label.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrModelUnavailable):
		return "unavailable"
	case errors.Is(err, ErrMalformedFeatures):
		return "malformed_features"
	case errors.Is(err, ErrModelPanic):
		return "panic"
	case errors.Is(err, ErrUnexpectedOutput):
		return "unexpected_output"
	case errors.Is(err, ErrNonFinitePrediction):
		return "non_finite"
	default:
		return "model_error"
	}
}
