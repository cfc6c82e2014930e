package predict

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LinearModel is a linear regressor: intercept + coefficients · features.
type LinearModel struct {
	Intercept    float64   `yaml:"intercept"    json:"intercept"`
	Coefficients []float64 `yaml:"coefficients" json:"coefficients"`
}

// LoadLinearModel reads a linear model artifact (YAML or JSON).
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path) //nolint:gosec // model path from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading linear model: %w", err)
	}

	m := &LinearModel{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing linear model: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the coefficient count.
func (m *LinearModel) Validate() error {
	if len(m.Coefficients) != NumFeatures {
		return fmt.Errorf("%w: linear model has %d coefficients, want %d",
			ErrFeatureCount, len(m.Coefficients), NumFeatures)
	}
	return nil
}

// Name returns the backend name.
func (*LinearModel) Name() string {
	return "linear"
}

// Predict evaluates every row.
func (m *LinearModel) Predict(_ context.Context, rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(m.Coefficients) {
			return nil, fmt.Errorf("row %d: %w: got %d", i, ErrFeatureCount, len(row))
		}
		v := m.Intercept
		for j, x := range row {
			v += m.Coefficients[j] * x
		}
		out[i] = v
	}
	return out, nil
}

// Importance reports absolute coefficient magnitudes per feature.
func (m *LinearModel) Importance() map[string]float64 {
	imp := make(map[string]float64, len(m.Coefficients))
	for i, c := range m.Coefficients {
		if i >= len(FeatureNames) {
			break
		}
		if c < 0 {
			c = -c
		}
		imp[FeatureNames[i]] = c
	}
	return imp
}
