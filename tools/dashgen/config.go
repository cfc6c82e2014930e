package main

import "errors"

// KnownMetrics is the set of metric names exported by markdown-pricer plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"mdp_http_request_duration_seconds": true,
	"mdp_http_requests_total":           true,

	// Health metrics.
	"mdp_healthcheck_status": true,
	"mdp_readiness_status":   true,

	// Pricing metrics.
	"mdp_discount_percent":               true,
	"mdp_strategy_applications_total":    true,
	"mdp_prediction_failures_total":      true,
	"mdp_model_predict_duration_seconds": true,
	"mdp_model_info":                     true,

	// Import and expiry refresh metrics.
	"mdp_import_rows_total":             true,
	"mdp_import_errors_total":           true,
	"mdp_import_duration_seconds":       true,
	"mdp_import_last_success_timestamp": true,
	"mdp_expiry_refresh_rows_total":     true,

	// Inventory metrics.
	"mdp_inventory_items": true,
	"mdp_expired_loss":    true,

	// Notification metrics.
	"mdp_notification_duration_seconds": true,
	"mdp_notification_failures_total":   true,

	// Recording rules.
	"mdp:http_requests:rate5m":       true,
	"mdp:http_errors:rate5m":         true,
	"mdp:prediction_failures:rate5m": true,
	"mdp:import_errors:rate5m":       true,
	"mdp:discounts:mean1h":           true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
