// Package repository persists cashback events behind the domain contract.
package repository

import (
	"context"
	"errors"

	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/domain"
	"gorm.io/gorm"
)

type Store struct{}

func Provide() domain.Repository {
	return &Store{}
}

// UpsertEvent writes the row in a single statement. The primary key on
// order_id is the only concurrency control: redeliveries refresh the derived
// fields while created_at and shop_domain keep their first-seen values.
func (s *Store) UpsertEvent(ctx context.Context, db *gorm.DB, event *domain.CashbackEvent) error {
	if event == nil || event.OrderID == "" {
		return domain.ErrInvalidOrderID
	}

	return db.WithContext(ctx).Exec(
		`INSERT INTO cashback_events
			(order_id, created_at, updated_at, shop_domain, customer_email,
			 currency, total_paid, cashback_percent, cashback_amount, raw)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (order_id) DO UPDATE SET
			updated_at = excluded.updated_at,
			customer_email = excluded.customer_email,
			currency = excluded.currency,
			total_paid = excluded.total_paid,
			cashback_percent = excluded.cashback_percent,
			cashback_amount = excluded.cashback_amount,
			raw = excluded.raw`,
		event.OrderID,
		event.CreatedAt,
		event.UpdatedAt,
		event.ShopDomain,
		event.CustomerEmail,
		event.Currency,
		event.TotalPaid,
		event.CashbackPercent,
		event.CashbackAmount,
		event.Raw,
	).Error
}

func (s *Store) FindEvent(ctx context.Context, db *gorm.DB, orderID string) (*domain.CashbackEvent, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidOrderID
	}

	var event domain.CashbackEvent
	err := db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

const defaultPageSize = 50
const maxPageSize = 200

func (s *Store) ListEvents(ctx context.Context, db *gorm.DB, req domain.ListEventsRequest) ([]domain.CashbackEvent, error) {
	query := db.WithContext(ctx).Model(&domain.CashbackEvent{})

	if req.CustomerEmail != "" {
		query = query.Where("customer_email = ?", req.CustomerEmail)
	}
	if req.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *req.CreatedFrom)
	}
	if req.CreatedTo != nil {
		query = query.Where("created_at <= ?", *req.CreatedTo)
	}

	size := req.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	var events []domain.CashbackEvent
	if err := query.Order("created_at DESC").Limit(size).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
