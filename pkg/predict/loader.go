package predict

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Model backend kinds.
const (
	KindNone    = "none"
	KindXGBoost = "xgboost"
	KindLinear  = "linear"
	KindRemote  = "remote"
)

// ErrUnknownKind is returned for unsupported model backends.
var ErrUnknownKind = errors.New("unknown model kind")

// Spec describes how to construct a Model.
type Spec struct {
	Kind          string
	Path          string
	BaseScore     float64
	Endpoint      string
	Name          string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// LoadModel builds the Model described by spec. KindNone (or an empty kind)
// returns a nil Model and no error; predictions then fail safe to zero.
func LoadModel(spec Spec) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(spec.Kind)) {
	case "", KindNone:
		return nil, nil
	case KindXGBoost:
		if spec.Path == "" {
			return nil, errors.New("xgboost model requires a path")
		}
		m, err := LoadTreeEnsemble(spec.Path, spec.BaseScore)
		if err != nil {
			return nil, err
		}
		return m, nil
	case KindLinear:
		if spec.Path == "" {
			return nil, errors.New("linear model requires a path")
		}
		m, err := LoadLinearModel(spec.Path)
		if err != nil {
			return nil, err
		}
		return m, nil
	case KindRemote:
		if spec.Endpoint == "" || spec.Name == "" {
			return nil, errors.New("remote model requires an endpoint and a name")
		}
		timeout := spec.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		return NewRemoteModel(spec.Endpoint, spec.Name,
			WithRemoteHTTPClient(&http.Client{
				Timeout:   timeout,
				Transport: otelhttp.NewTransport(http.DefaultTransport),
			}),
			WithRemoteRateLimit(spec.RatePerSecond, spec.Burst),
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
}
