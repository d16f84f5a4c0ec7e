package domain

import (
	"context"
	"errors"
	"time"
)

// Outcome labels the terminal state of one delivery. Every outcome except
// the rejection errors is acknowledged with HTTP 200 so the upstream never
// retries an event that cannot or need not succeed again.
type Outcome string

const (
	OutcomeRecorded       Outcome = "recorded"
	OutcomeIgnoredTopic   Outcome = "ignored_topic"
	OutcomeMissingData    Outcome = "missing_data"
	OutcomeStorageFailure Outcome = "storage_failure"
)

type Service interface {
	// ProcessOrderPaid runs the full pipeline for one raw delivery:
	// gate, verify, normalize, calculate, record.
	ProcessOrderPaid(ctx context.Context, req ProcessRequest) (Outcome, error)

	ListEvents(ctx context.Context, req ListEventsRequest) ([]CashbackEvent, error)
	GetEvent(ctx context.Context, orderID string) (*CashbackEvent, error)
}

// ProcessRequest carries the unparsed delivery exactly as received. Payload
// must be the raw body bytes; signature verification depends on it.
type ProcessRequest struct {
	Topic      string
	ShopDomain string
	Signature  string
	Payload    []byte
}

// ListEventsRequest filters the audit listing.
type ListEventsRequest struct {
	CustomerEmail string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	PageSize      int
}

var (
	ErrInvalidPayload    = errors.New("invalid_payload")
	ErrInvalidShopDomain = errors.New("invalid_shop_domain")
	ErrInvalidSignature  = errors.New("invalid_signature")
	ErrMissingSecret     = errors.New("missing_webhook_secret")
	ErrInvalidOrderID    = errors.New("invalid_order_id")
	ErrEventNotFound     = errors.New("event_not_found")
)
