package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// RemoteModel calls a model server that speaks the TensorFlow Serving REST
// predict protocol: POST {endpoint}/v1/models/{name}:predict.
type RemoteModel struct {
	endpoint string
	model    string
	client   *http.Client
	limiter  *rate.Limiter
}

// RemoteOption configures the RemoteModel.
type RemoteOption func(*RemoteModel)

// WithRemoteHTTPClient overrides the default HTTP client.
func WithRemoteHTTPClient(c *http.Client) RemoteOption {
	return func(m *RemoteModel) {
		m.client = c
	}
}

// WithRemoteRateLimit caps outgoing requests per second.
func WithRemoteRateLimit(perSecond float64, burst int) RemoteOption {
	return func(m *RemoteModel) {
		if perSecond <= 0 {
			m.limiter = nil
			return
		}
		m.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// NewRemoteModel creates a remote model backend.
func NewRemoteModel(endpoint, model string, opts ...RemoteOption) *RemoteModel {
	m := &RemoteModel{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the backend name.
func (m *RemoteModel) Name() string {
	return "remote:" + m.model
}

type remoteRequest struct {
	Instances [][]float64 `json:"instances"`
}

type remoteResponse struct {
	Predictions []json.RawMessage `json:"predictions"`
	Error       string            `json:"error,omitempty"`
}

// Predict sends every row in a single request.
func (m *RemoteModel) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	body, err := json.Marshal(remoteRequest{Instances: rows})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := m.endpoint + "/v1/models/" + m.model + ":predict"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling model server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"model server error (status %d): %s",
			resp.StatusCode,
			string(respBody),
		)
	}

	var out remoteResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("parsing model server response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("model server error: %s", out.Error)
	}
	if len(out.Predictions) != len(rows) {
		return nil, fmt.Errorf("%w: got %d predictions for %d rows",
			ErrUnexpectedOutput, len(out.Predictions), len(rows))
	}

	preds := make([]float64, len(out.Predictions))
	for i, raw := range out.Predictions {
		v, err := decodePrediction(raw)
		if err != nil {
			return nil, fmt.Errorf("prediction %d: %w", i, err)
		}
		preds[i] = v
	}
	return preds, nil
}

// decodePrediction accepts either a bare number or a single-element array,
// since regressors exported with an output dimension of 1 return [[v]].
func decodePrediction(raw json.RawMessage) (float64, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, nil
	}

	var vs []float64
	if err := json.Unmarshal(raw, &vs); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnexpectedOutput, string(raw))
	}
	if len(vs) != 1 {
		return 0, fmt.Errorf("%w: expected 1 output, got %d", ErrUnexpectedOutput, len(vs))
	}
	return vs[0], nil
}
