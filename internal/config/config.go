package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	// SessionSecret signs the galileo_auth session cookie.
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`

	// DatabaseURL switches the repositories from the in-memory stand-in to
	// Postgres when set.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Seed admin account, created at startup when the user store is empty.
	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@galileo.local"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" required:"true"`

	// Outbound automation webhooks. Endpoints with an empty URL report
	// "not configured" instead of falling back to hard-coded literals.
	ClientSearchWebhookURL      string `envconfig:"CLIENT_SEARCH_WEBHOOK_URL"`
	PortfolioAnalysisWebhookURL string `envconfig:"PORTFOLIO_ANALYSIS_WEBHOOK_URL"`
	RiskAssessmentWebhookURL    string `envconfig:"RISK_ASSESSMENT_WEBHOOK_URL"`
	MarketDataWebhookURL        string `envconfig:"MARKET_DATA_WEBHOOK_URL"`
	RefreshWebhookURL           string `envconfig:"REFRESH_WEBHOOK_URL"`

	// Outbound call and refresh-poll tuning.
	WebhookTimeoutSec     int `envconfig:"WEBHOOK_TIMEOUT_SEC" default:"30"`
	RefreshMaxAttempts    int `envconfig:"REFRESH_MAX_ATTEMPTS" default:"5"`
	RefreshBackoffInitSec int `envconfig:"REFRESH_BACKOFF_INITIAL_SEC" default:"2"`
	RefreshBackoffMaxSec  int `envconfig:"REFRESH_BACKOFF_MAX_SEC" default:"30"`

	// Optional S3 contract archive. Archiving is enabled when the bucket is set.
	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_CONTRACT_BUCKET"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
