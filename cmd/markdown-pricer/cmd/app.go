package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/donaldgifford/markdown-pricer/internal/config"
	"github.com/donaldgifford/markdown-pricer/internal/engine"
	"github.com/donaldgifford/markdown-pricer/internal/inventory"
	"github.com/donaldgifford/markdown-pricer/internal/metrics"
	"github.com/donaldgifford/markdown-pricer/internal/notify"
	"github.com/donaldgifford/markdown-pricer/internal/store"
	"github.com/donaldgifford/markdown-pricer/internal/telemetry"
	"github.com/donaldgifford/markdown-pricer/pkg/logger"
	"github.com/donaldgifford/markdown-pricer/pkg/predict"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

const webhookTimeout = 10 * time.Second

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)
	return cfg, log, nil
}

// newSource builds the configured inventory source. It returns nil when no
// source is configured.
func newSource(cfg *config.SourceConfig) (inventory.Source, error) {
	switch cfg.Kind {
	case config.SourceFile:
		return inventory.NewFileSource(cfg.Path), nil
	case config.SourceS3:
		src, err := inventory.NewObjectSource(inventory.ObjectConfig{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			Bucket:    cfg.Bucket,
			Key:       cfg.Key,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("creating s3 source: %w", err)
		}
		return src, nil
	default:
		return nil, nil
	}
}

// newPredictor loads the configured model. A missing model is not an error:
// ml mode then prices every item at the safe default.
func newPredictor(cfg *config.ModelConfig, log *slog.Logger) (*predict.Predictor, error) {
	m, err := predict.LoadModel(cfg.Spec())
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}

	p := predict.NewPredictor(m,
		predict.WithLogger(log),
		predict.WithFailureHook(engine.RecordPredictionFailure),
	)

	metrics.ModelInfo.Reset()
	metrics.ModelInfo.WithLabelValues(p.ModelName()).Set(1)

	if m == nil {
		log.Warn("no model configured, ml mode will return zero discounts")
	} else {
		log.Info("model loaded", "model", p.ModelName(), "kind", cfg.Kind)
	}
	return p, nil
}

// newNotifier builds the digest notifier. Without a webhook, digests are
// only logged.
func newNotifier(cfg *config.NotifyConfig, log *slog.Logger) notify.Notifier {
	if cfg.DiscordWebhookURL == "" {
		return notify.NewNoOpNotifier(log)
	}
	return notify.NewDiscordNotifier(cfg.DiscordWebhookURL,
		notify.WithHTTPClient(&http.Client{
			Timeout:   webhookTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
	)
}

func newEngine(
	cfg *config.Config,
	s store.Store,
	p *predict.Predictor,
	src inventory.Source,
	log *slog.Logger,
) *engine.Engine {
	opts := []engine.EngineOption{
		engine.WithLogger(log),
		engine.WithScoring(cfg.Scoring.Options()),
		engine.WithMaxDiscount(cfg.Scoring.MaxDiscount),
		engine.WithCostRatio(cfg.Scoring.CostRatio),
		engine.WithNotifier(newNotifier(&cfg.Notify, log)),
		engine.WithDigest(cfg.Notify.DigestSize, domain.Mode(cfg.Notify.DigestMode)),
	}
	if src != nil {
		opts = append(opts, engine.WithSource(src))
	}
	return engine.NewEngine(s, p, opts...)
}

func telemetryConfig(cfg *config.TelemetryConfig) telemetry.Config {
	return telemetry.Config{
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.Insecure,
		SampleRatio:    cfg.SampleRatio,
		MetricInterval: cfg.MetricInterval,
		ServiceName:    logger.ServiceName,
		ServiceVersion: Version,
	}
}
