// Package observability assembles logging, tracing and metrics wiring.
package observability

import (
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/config"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/observability/logger"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/observability/metrics"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/observability/tracing"
	"go.uber.org/fx"
)

const serviceName = "luxem-cashback"

var version = "dev"

var Module = fx.Module("observability",
	logger.Module,
	fx.Provide(func(cfg config.Config) tracing.Config {
		return tracing.Config{
			Enabled:          cfg.Tracing.Enabled,
			ServiceName:      serviceName,
			ServiceVersion:   version,
			Environment:      cfg.Environment,
			ExporterEndpoint: cfg.Tracing.ExporterEndpoint,
			ExporterProtocol: cfg.Tracing.ExporterProtocol,
			SamplingRatio:    cfg.Tracing.SamplingRatio,
		}
	}),
	fx.Provide(func() metrics.Config {
		return metrics.Config{ServiceName: serviceName}
	}),
	fx.Provide(func(cfg config.Config) metrics.ProviderConfig {
		return metrics.ProviderConfig{
			Enabled:          cfg.Metrics.Enabled,
			ServiceName:      serviceName,
			ServiceVersion:   version,
			Environment:      cfg.Environment,
			ExporterEndpoint: cfg.Metrics.ExporterEndpoint,
			ExporterProtocol: cfg.Metrics.ExporterProtocol,
		}
	}),
	fx.Provide(metrics.NewMeterProvider),
	fx.Provide(metrics.NewHTTPMetrics),
	fx.Provide(metrics.NewWebhookMetrics),
	fx.Invoke(tracing.NewProvider),
)
