package repository

import (
	"context"
	"testing"
	"time"

	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/domain"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCashbackTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS cashback_events (
			order_id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			shop_domain TEXT NOT NULL,
			customer_email TEXT,
			currency TEXT NOT NULL DEFAULT 'USD',
			total_paid NUMERIC NOT NULL,
			cashback_percent NUMERIC NOT NULL,
			cashback_amount NUMERIC NOT NULL,
			raw TEXT NOT NULL
		)`,
	).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	if err := db.Exec(`DELETE FROM cashback_events`).Error; err != nil {
		t.Fatalf("reset table: %v", err)
	}
	return db
}

func sampleEvent(orderID string, total float64) *domain.CashbackEvent {
	email := "buyer@example.com"
	now := time.Now().UTC()
	return &domain.CashbackEvent{
		OrderID:         orderID,
		CreatedAt:       now,
		UpdatedAt:       now,
		ShopDomain:      "luxem.myshopify.com",
		CustomerEmail:   &email,
		Currency:        "EUR",
		TotalPaid:       total,
		CashbackPercent: 5,
		CashbackAmount:  domain.RewardAmount(total, 5),
		Raw:             datatypes.JSON([]byte(`{"id":"` + orderID + `"}`)),
	}
}

func TestUpsertEventInsertsOnce(t *testing.T) {
	db := setupCashbackTestDB(t)
	store := &Store{}
	ctx := context.Background()

	if err := store.UpsertEvent(ctx, db, sampleEvent("1001", 200)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	found, err := store.FindEvent(ctx, db, "1001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil {
		t.Fatalf("expected row for order 1001")
	}
	if found.TotalPaid != 200 || found.CashbackAmount != 10 {
		t.Fatalf("got total=%v cashback=%v", found.TotalPaid, found.CashbackAmount)
	}
}

func TestUpsertEventIsIdempotentPerOrder(t *testing.T) {
	db := setupCashbackTestDB(t)
	store := &Store{}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.UpsertEvent(ctx, db, sampleEvent("1001", 200)); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	var count int64
	if err := db.Model(&domain.CashbackEvent{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 row, got %d", count)
	}
}

func TestUpsertEventRefreshesDerivedFields(t *testing.T) {
	db := setupCashbackTestDB(t)
	store := &Store{}
	ctx := context.Background()

	first := sampleEvent("1001", 200)
	if err := store.UpsertEvent(ctx, db, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := sampleEvent("1001", 250)
	second.CreatedAt = first.CreatedAt.Add(time.Hour)
	if err := store.UpsertEvent(ctx, db, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	found, err := store.FindEvent(ctx, db, "1001")
	if err != nil || found == nil {
		t.Fatalf("find: %v", err)
	}
	if found.TotalPaid != 250 || found.CashbackAmount != 12.5 {
		t.Fatalf("expected refreshed totals, got total=%v cashback=%v", found.TotalPaid, found.CashbackAmount)
	}
	if !found.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at must keep the first-seen value")
	}
}

func TestFindEventMissing(t *testing.T) {
	db := setupCashbackTestDB(t)
	store := &Store{}

	found, err := store.FindEvent(context.Background(), db, "nope")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil for unknown order")
	}
}

func TestListEventsFilters(t *testing.T) {
	db := setupCashbackTestDB(t)
	store := &Store{}
	ctx := context.Background()

	a := sampleEvent("a", 10)
	other := "other@example.com"
	b := sampleEvent("b", 20)
	b.CustomerEmail = &other
	for _, event := range []*domain.CashbackEvent{a, b} {
		if err := store.UpsertEvent(ctx, db, event); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	events, err := store.ListEvents(ctx, db, domain.ListEventsRequest{CustomerEmail: other})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 || events[0].OrderID != "b" {
		t.Fatalf("expected only order b, got %v", events)
	}
}
