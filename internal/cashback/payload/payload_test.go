package payload

import (
	"errors"
	"testing"

	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/domain"
)

func TestParseOrderComplete(t *testing.T) {
	body := []byte(`{"id":"1001","email":"buyer@example.com","total_price":"200.00","currency":"EUR"}`)

	order, ok, err := ParseOrder(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected complete order")
	}
	if order.OrderID != "1001" {
		t.Errorf("order id = %q", order.OrderID)
	}
	if order.CustomerEmail == nil || *order.CustomerEmail != "buyer@example.com" {
		t.Errorf("email = %v", order.CustomerEmail)
	}
	if order.Currency != "EUR" {
		t.Errorf("currency = %q", order.Currency)
	}
	if order.TotalPaid != 200.00 {
		t.Errorf("total = %v", order.TotalPaid)
	}
}

func TestParseOrderFallbackFields(t *testing.T) {
	body := []byte(`{
		"order_id": 4242,
		"customer": {"default_address": {"email": "nested@example.com"}},
		"presentment_currency": "gbp",
		"current_total_price": "99.90"
	}`)

	order, ok, err := ParseOrder(body)
	if err != nil || !ok {
		t.Fatalf("expected complete order, ok=%v err=%v", ok, err)
	}
	if order.OrderID != "4242" {
		t.Errorf("order id = %q, want numeric id coerced to string", order.OrderID)
	}
	if order.CustomerEmail == nil || *order.CustomerEmail != "nested@example.com" {
		t.Errorf("email = %v", order.CustomerEmail)
	}
	if order.Currency != "GBP" {
		t.Errorf("currency = %q", order.Currency)
	}
	if order.TotalPaid != 99.90 {
		t.Errorf("total = %v", order.TotalPaid)
	}
}

func TestParseOrderShopMoneyFallback(t *testing.T) {
	body := []byte(`{
		"id": "77",
		"total_price_set": {"shop_money": {"amount": "15.50", "currency_code": "CAD"}}
	}`)

	order, ok, err := ParseOrder(body)
	if err != nil || !ok {
		t.Fatalf("expected complete order, ok=%v err=%v", ok, err)
	}
	if order.Currency != "CAD" || order.TotalPaid != 15.50 {
		t.Errorf("got currency=%q total=%v", order.Currency, order.TotalPaid)
	}
}

func TestParseOrderDefaultsCurrency(t *testing.T) {
	order, ok, err := ParseOrder([]byte(`{"id":"1","total_price":"5.00"}`))
	if err != nil || !ok {
		t.Fatalf("expected complete order, ok=%v err=%v", ok, err)
	}
	if order.Currency != "USD" {
		t.Errorf("currency = %q, want USD default", order.Currency)
	}
	if order.CustomerEmail != nil {
		t.Errorf("email should be nil, got %v", *order.CustomerEmail)
	}
}

func TestParseOrderMissingData(t *testing.T) {
	cases := map[string]string{
		"no order id":     `{"total_price":"10.00"}`,
		"empty order id":  `{"id":"","total_price":"10.00"}`,
		"no amount":       `{"id":"1"}`,
		"zero amount":     `{"id":"1","total_price":"0"}`,
		"negative amount": `{"id":"1","total_price":"-3.50"}`,
		"bad amount":      `{"id":"1","total_price":"lots"}`,
	}
	for name, body := range cases {
		_, ok, err := ParseOrder([]byte(body))
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
		if ok {
			t.Errorf("%s: expected missing-data skip", name)
		}
	}
}

func TestParseOrderMalformedJSON(t *testing.T) {
	_, _, err := ParseOrder([]byte(`{"id":`))
	if !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload error, got %v", err)
	}
}
