// Package domain contains the cashback persistence model and contracts.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CashbackEvent is the single persisted entity: one row per paid order.
// OrderID doubles as the idempotency key.
type CashbackEvent struct {
	OrderID   string    `gorm:"primaryKey;type:text" json:"order_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	ShopDomain    string  `gorm:"type:text;not null" json:"shop_domain"`
	CustomerEmail *string `gorm:"type:text;index" json:"customer_email,omitempty"`
	Currency      string  `gorm:"type:text;not null;default:USD" json:"currency"`

	TotalPaid       float64 `gorm:"type:numeric(12,2);not null" json:"total_paid"`
	CashbackPercent float64 `gorm:"type:numeric(5,2);not null" json:"cashback_percent"`
	CashbackAmount  float64 `gorm:"type:numeric(12,2);not null" json:"cashback_amount"`

	// Raw keeps the original delivery body for audit and replay.
	Raw datatypes.JSON `gorm:"type:jsonb;not null" json:"-"`
}

// TableName sets the database table name.
func (CashbackEvent) TableName() string { return "cashback_events" }
