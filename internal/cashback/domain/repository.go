package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// UpsertEvent inserts the event or, when a row for the same order id
	// already exists, refreshes its derived fields. Atomic against the
	// primary key; safe under concurrent redelivery.
	UpsertEvent(ctx context.Context, db *gorm.DB, event *CashbackEvent) error

	FindEvent(ctx context.Context, db *gorm.DB, orderID string) (*CashbackEvent, error)
	ListEvents(ctx context.Context, db *gorm.DB, req ListEventsRequest) ([]CashbackEvent, error)
}
