package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// WebhookMetrics counts webhook pipeline outcomes. Storage failures get a
// dedicated counter because the HTTP response deliberately hides them.
type WebhookMetrics struct {
	outcomes        metric.Int64Counter
	storageFailures metric.Int64Counter
}

// NewWebhookMetrics creates webhook pipeline instruments.
func NewWebhookMetrics(cfg Config, provider metric.MeterProvider) (*WebhookMetrics, error) {
	meter := provider.Meter(serviceName(cfg) + "/webhook")

	outcomes, err := meter.Int64Counter("webhook.orders_paid.outcome")
	if err != nil {
		return nil, err
	}
	storageFailures, err := meter.Int64Counter("cashback.storage_failures")
	if err != nil {
		return nil, err
	}

	return &WebhookMetrics{
		outcomes:        outcomes,
		storageFailures: storageFailures,
	}, nil
}

// RecordOutcome counts one processed delivery by terminal outcome.
func (m *WebhookMetrics) RecordOutcome(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordStorageFailure counts a persistence error that was acknowledged to
// the upstream sender anyway.
func (m *WebhookMetrics) RecordStorageFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.storageFailures.Add(ctx, 1)
}
