// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/markdown-pricer/pkg/logger"
	"github.com/donaldgifford/markdown-pricer/pkg/predict"
	score "github.com/donaldgifford/markdown-pricer/pkg/scorer"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Model     ModelConfig     `yaml:"model"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Source    SourceConfig    `yaml:"source"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Notify    NotifyConfig    `yaml:"notify"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s pool_max_conns=%d",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode, d.PoolSize,
	)
}

// ModelConfig selects the discount model backend.
type ModelConfig struct {
	Kind      string          `yaml:"kind"` // none, xgboost, linear, remote
	Path      string          `yaml:"path"`
	BaseScore float64         `yaml:"base_score"`
	Endpoint  string          `yaml:"endpoint"`
	Name      string          `yaml:"name"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig throttles calls to a remote model server.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// Spec converts the model config into a predict.Spec.
func (m *ModelConfig) Spec() predict.Spec {
	return predict.Spec{
		Kind:          m.Kind,
		Path:          m.Path,
		BaseScore:     m.BaseScore,
		Endpoint:      m.Endpoint,
		Name:          m.Name,
		Timeout:       m.Timeout,
		RatePerSecond: m.RateLimit.PerSecond,
		Burst:         m.RateLimit.Burst,
	}
}

// ScoringConfig defines greedy scoring weights and margin analysis settings.
type ScoringConfig struct {
	Weights          ScoringWeights `yaml:"weights"`
	ClampExpiryScore bool           `yaml:"clamp_expiry_score"`
	MaxDiscount      int            `yaml:"max_discount"`
	CostRatio        float64        `yaml:"cost_ratio"`
}

// ScoringWeights defines the relative weight of each scoring factor.
type ScoringWeights struct {
	Expiry   float64 `yaml:"expiry"`
	Turnover float64 `yaml:"turnover"`
	Pressure float64 `yaml:"pressure"`
}

// Options converts the scoring config into greedy scorer options.
func (s *ScoringConfig) Options() score.Options {
	return score.Options{
		Weights: score.Weights{
			Expiry:   s.Weights.Expiry,
			Turnover: s.Weights.Turnover,
			Pressure: s.Weights.Pressure,
		},
		ClampExpiry: s.ClampExpiryScore,
	}
}

// Source kinds.
const (
	SourceNone = ""
	SourceFile = "file"
	SourceS3   = "s3"
)

// SourceConfig locates the inventory file that imports read.
type SourceConfig struct {
	Kind      string `yaml:"kind"` // file, s3
	Path      string `yaml:"path"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Key       string `yaml:"key"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// ScheduleConfig defines job intervals. A negative interval disables the job.
type ScheduleConfig struct {
	ImportInterval        time.Duration `yaml:"import_interval"`
	ExpiryRefreshInterval time.Duration `yaml:"expiry_refresh_interval"`
	DigestInterval        time.Duration `yaml:"digest_interval"`
}

// NotifyConfig defines markdown digest delivery. An empty webhook URL sends
// digests to the log only.
type NotifyConfig struct {
	DiscordWebhookURL string `yaml:"discord_webhook_url"`
	DigestSize        int    `yaml:"digest_size"`
	DigestMode        string `yaml:"digest_mode"` // greedy, ml
}

// TelemetryConfig defines OpenTelemetry export. An empty endpoint disables it.
type TelemetryConfig struct {
	OTLPEndpoint   string        `yaml:"otlp_endpoint"`
	Insecure       bool          `yaml:"insecure"`
	SampleRatio    float64       `yaml:"sample_ratio"`
	MetricInterval time.Duration `yaml:"metric_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. A .env file next to the config file, or in
// the working directory, is loaded first; variables already set win.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(
		filepath.Join(filepath.Dir(path), ".env"),
		".env",
	); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(files ...string) error {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true

		if err := godotenv.Load(abs); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Default returns a Config with every default applied, for commands that can
// run without a config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyModelDefaults(&cfg.Model)
	applyScoringDefaults(&cfg.Scoring)
	applyScheduleDefaults(&cfg.Schedule, cfg.Source.Kind != SourceNone, cfg.Notify.DiscordWebhookURL != "")
	applyNotifyDefaults(&cfg.Notify)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyModelDefaults(m *ModelConfig) {
	m.Kind = strings.ToLower(strings.TrimSpace(m.Kind))
	if m.Kind == "" {
		m.Kind = predict.KindNone
	}
	if m.Kind == predict.KindXGBoost && m.BaseScore == 0 {
		m.BaseScore = predict.DefaultBaseScore
	}
	if m.Timeout == 0 {
		m.Timeout = 5 * time.Second
	}
}

func applyScoringDefaults(s *ScoringConfig) {
	if s.Weights == (ScoringWeights{}) {
		w := score.DefaultWeights()
		s.Weights = ScoringWeights{Expiry: w.Expiry, Turnover: w.Turnover, Pressure: w.Pressure}
	}
	if s.MaxDiscount == 0 {
		s.MaxDiscount = score.MaxDiscount
	}
	if s.CostRatio == 0 {
		s.CostRatio = 0.6
	}
}

func applyScheduleDefaults(s *ScheduleConfig, hasSource, hasWebhook bool) {
	if s.ImportInterval == 0 && hasSource {
		s.ImportInterval = 6 * time.Hour
	}
	if s.ExpiryRefreshInterval == 0 {
		s.ExpiryRefreshInterval = time.Hour
	}
	if s.DigestInterval == 0 && hasWebhook {
		s.DigestInterval = 24 * time.Hour
	}
}

func applyNotifyDefaults(n *NotifyConfig) {
	if n.DigestSize == 0 {
		n.DigestSize = 10
	}
	n.DigestMode = strings.ToLower(strings.TrimSpace(n.DigestMode))
	if n.DigestMode == "" {
		n.DigestMode = string(domain.ModeGreedy)
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
	if t.MetricInterval == 0 {
		t.MetricInterval = time.Minute
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, errors.New("database.user is required"))
	}

	errs = append(errs, validateModel(&cfg.Model)...)
	errs = append(errs, validateScoring(&cfg.Scoring)...)
	errs = append(errs, validateSource(&cfg.Source)...)
	errs = append(errs, validateNotify(&cfg.Notify)...)

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf(
			"telemetry.sample_ratio must be between 0 and 1 (got %v)", cfg.Telemetry.SampleRatio))
	}

	if !logger.ValidLevel(cfg.Logging.Level) {
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
	}
	if !logger.ValidFormat(cfg.Logging.Format) {
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}

func validateModel(m *ModelConfig) []error {
	var errs []error

	switch m.Kind {
	case predict.KindNone:
	case predict.KindXGBoost, predict.KindLinear:
		if m.Path == "" {
			errs = append(errs, fmt.Errorf("model.path is required when kind is %s", m.Kind))
		}
	case predict.KindRemote:
		if m.Endpoint == "" {
			errs = append(errs, errors.New("model.endpoint is required when kind is remote"))
		}
		if m.Name == "" {
			errs = append(errs, errors.New("model.name is required when kind is remote"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"model.kind must be one of: none, xgboost, linear, remote (got %q)", m.Kind))
	}

	if m.RateLimit.PerSecond < 0 || m.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("model.rate_limit values must not be negative"))
	}

	return errs
}

func validateScoring(s *ScoringConfig) []error {
	var errs []error

	w := s.Weights
	if w.Expiry < 0 || w.Turnover < 0 || w.Pressure < 0 {
		errs = append(errs, errors.New("scoring.weights must not be negative"))
	}
	if s.MaxDiscount < 0 || s.MaxDiscount > score.MaxDiscount {
		errs = append(errs, fmt.Errorf(
			"scoring.max_discount must be between 0 and %d (got %d)", score.MaxDiscount, s.MaxDiscount))
	}
	if s.CostRatio < 0 || s.CostRatio >= 1 {
		errs = append(errs, fmt.Errorf(
			"scoring.cost_ratio must be in (0, 1) (got %v)", s.CostRatio))
	}

	return errs
}

func validateSource(s *SourceConfig) []error {
	var errs []error

	switch s.Kind {
	case SourceNone:
	case SourceFile:
		if s.Path == "" {
			errs = append(errs, errors.New("source.path is required when kind is file"))
		}
	case SourceS3:
		if s.Endpoint == "" {
			errs = append(errs, errors.New("source.endpoint is required when kind is s3"))
		}
		if s.Bucket == "" || s.Key == "" {
			errs = append(errs, errors.New("source.bucket and source.key are required when kind is s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("source.kind must be one of: file, s3 (got %q)", s.Kind))
	}

	return errs
}

func validateNotify(n *NotifyConfig) []error {
	var errs []error

	if n.DigestSize < 0 {
		errs = append(errs, fmt.Errorf("notify.digest_size must not be negative (got %d)", n.DigestSize))
	}
	if n.DigestMode != string(domain.ModeGreedy) && n.DigestMode != string(domain.ModeML) {
		errs = append(errs, fmt.Errorf("notify.digest_mode must be one of: greedy, ml (got %q)", n.DigestMode))
	}
	if n.DiscordWebhookURL != "" && !strings.HasPrefix(n.DiscordWebhookURL, "https://") &&
		!strings.HasPrefix(n.DiscordWebhookURL, "http://") {
		errs = append(errs, errors.New("notify.discord_webhook_url must be an http(s) URL"))
	}

	return errs
}
