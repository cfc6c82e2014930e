// Package metrics defines Prometheus metrics for markdown-pricer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mdp"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Health metrics.
var (
	HealthcheckStatus = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthcheck_status",
		Help:      "Whether the service is healthy (1) or not (0).",
	})

	ReadinessStatus = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readiness_status",
		Help:      "Whether the database is reachable (1) or not (0).",
	})
)

// Pricing metrics.
var (
	DiscountDistribution = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "discount_percent",
		Help:      "Distribution of recommended discount percentages.",
		Buckets:   prometheus.LinearBuckets(0, 10, 8), // 0, 10, ..., 70
	}, []string{"mode"})

	StrategyApplicationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strategy_applications_total",
		Help:      "Total number of items priced, by strategy and segment.",
	}, []string{"mode", "segment"})
)

// Model metrics.
var (
	PredictionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_failures_total",
		Help:      "Total number of model predictions that fell back to the safe default.",
	}, []string{"reason"})

	ModelPredictDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "model_predict_duration_seconds",
		Help:      "Duration of single-item model predictions in seconds.",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	ModelInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_info",
		Help:      "Loaded model backend (value is always 1).",
	}, []string{"model"})
)

// Import metrics.
var (
	ImportRowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Total number of inventory rows imported.",
	})

	ImportErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_errors_total",
		Help:      "Total number of failed inventory imports.",
	})

	ImportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "import_duration_seconds",
		Help:      "Duration of inventory imports in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	ImportLastSuccessTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "import_last_success_timestamp",
		Help:      "Unix timestamp of the last successful import.",
	})

	ExpiryRefreshRowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expiry_refresh_rows_total",
		Help:      "Total number of rows updated by expiry refresh.",
	})
)

// Inventory gauges.
var (
	InventoryItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_items",
		Help:      "Number of stored inventory items by segment.",
	}, []string{"segment"})

	ExpiredLossTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "expired_loss",
		Help:      "Value of expired unsold stock at unit price.",
	})
)

// Notification metrics.
var (
	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of digest webhook deliveries in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of markdown digests that failed to send.",
	})
)
