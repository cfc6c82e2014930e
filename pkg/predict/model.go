// Package predict wraps a trained regression model behind a fail-safe
// discount predictor. Model backends (XGBoost tree dumps, linear
// coefficients, a remote model server) implement the Model interface.
package predict

import (
	"context"
	"errors"

	score "github.com/donaldgifford/markdown-pricer/pkg/scorer"
)

// NumFeatures is the width of every feature row.
const NumFeatures = 3

// FeatureNames names the feature columns in vector order.
var FeatureNames = []string{"Days_To_Expiry", "Stock_Pressure", "Turnover_Slow"}

// Prediction failure taxonomy. Every failure maps to a zero discount at the
// Predictor boundary; the sentinels keep the cause inspectable.
var (
	ErrModelUnavailable    = errors.New("model unavailable")
	ErrMalformedFeatures   = errors.New("malformed feature vector")
	ErrPredictionFailed    = errors.New("prediction failed")
	ErrUnexpectedOutput    = errors.New("unexpected prediction output")
	ErrNonFinitePrediction = errors.New("non-finite prediction")
	ErrModelPanic          = errors.New("model panicked")
	ErrFeatureCount        = errors.New("wrong feature count")
)

// Model is an opaque trained regressor: one prediction per feature row.
// Implementations must be safe for concurrent use once constructed.
type Model interface {
	Predict(ctx context.Context, rows [][]float64) ([]float64, error)
	Name() string
}

// FeatureImporter is implemented by models that can report per-feature
// importance.
type FeatureImporter interface {
	Importance() map[string]float64
}

// Features builds the model input row in the fixed order
// [days_to_expiry, stock_pressure, turnover_slow].
func Features(d *score.ItemData) []float64 {
	slow := 0.0
	if d.Slow {
		slow = 1
	}
	return []float64{d.DaysToExpiry, d.StockPressure, slow}
}
