// Package config loads static process configuration from the environment.
package config

import (
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	defaultHTTPAddr         = ":8080"
	defaultCashbackPercent  = 1.0
	defaultWebhookRateLimit = 60
)

// Config holds everything the service reads at startup. Values never change
// while the process is running.
type Config struct {
	Environment string
	HTTPAddr    string

	// DatabaseURL is a Postgres DSN.
	DatabaseURL string

	// ShopifyWebhookSecret signs every inbound webhook body. Empty means the
	// service rejects all webhook deliveries (fail closed).
	ShopifyWebhookSecret string

	// ShopDomain is the only shop this receiver accepts events from.
	ShopDomain string

	// CashbackPercent is the reward rate applied at processing time.
	CashbackPercent float64

	// AuditAPIKey authenticates callers of the read-only audit routes.
	// Empty means those routes reject every request (fail closed).
	AuditAPIKey string

	// WebhookRateLimit caps deliveries accepted per shop domain per minute.
	WebhookRateLimit int

	Tracing TracingConfig
	Metrics MetricsConfig
}

// TracingConfig configures the OTLP trace exporter.
type TracingConfig struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

// MetricsConfig configures the OTLP metric exporter.
type MetricsConfig struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Environment:          getenv("ENVIRONMENT", "development"),
		HTTPAddr:             getenv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseURL:          getenv("DATABASE_URL", ""),
		ShopifyWebhookSecret: os.Getenv("SHOPIFY_WEBHOOK_SECRET"),
		ShopDomain:           normalizeShopDomain(os.Getenv("SHOP_DOMAIN")),
		CashbackPercent:      parsePercent(os.Getenv("CASHBACK_PERCENT")),
		AuditAPIKey:          strings.TrimSpace(os.Getenv("AUDIT_API_KEY")),
		WebhookRateLimit:     parseLimit(os.Getenv("WEBHOOK_RATE_LIMIT")),
		Tracing: TracingConfig{
			Enabled:          getenv("TRACING_ENABLED", "false") == "true",
			ExporterEndpoint: getenv("TRACING_EXPORTER_ENDPOINT", ""),
			ExporterProtocol: getenv("TRACING_EXPORTER_PROTOCOL", "grpc"),
			SamplingRatio:    parseRatio(os.Getenv("TRACING_SAMPLING_RATIO")),
		},
		Metrics: MetricsConfig{
			Enabled:          getenv("METRICS_ENABLED", "false") == "true",
			ExporterEndpoint: getenv("METRICS_EXPORTER_ENDPOINT", ""),
			ExporterProtocol: getenv("METRICS_EXPORTER_PROTOCOL", "grpc"),
		},
	}
}

// IsProduction reports whether the process runs with production hardening.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// parsePercent falls back to the default rate when the configured value is
// not a finite positive number.
func parsePercent(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultCashbackPercent
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return defaultCashbackPercent
	}
	return value
}

// parseLimit falls back to the default delivery cap when the configured
// value is not a positive integer.
func parseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultWebhookRateLimit
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return defaultWebhookRateLimit
	}
	return value
}

func parseRatio(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

func normalizeShopDomain(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
