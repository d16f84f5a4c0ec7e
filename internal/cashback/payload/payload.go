// Package payload normalizes loosely-structured "orders/paid" bodies.
//
// Upstream payloads differ by API version: identifiers, emails, currencies
// and totals each live under several possible field names. Extraction walks
// an ordered fallback list per field and returns a discriminated result
// instead of guessing.
package payload

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/domain"
)

// Order is the normalized shape the pipeline consumes.
type Order struct {
	OrderID       string
	CustomerEmail *string
	Currency      string
	TotalPaid     float64
}

const defaultCurrency = "USD"

var (
	orderIDPaths = [][]string{{"id"}, {"order_id"}}
	emailPaths   = [][]string{
		{"email"},
		{"customer", "email"},
		{"customer", "default_address", "email"},
	}
	currencyPaths = [][]string{
		{"currency"},
		{"presentment_currency"},
		{"total_price_set", "shop_money", "currency_code"},
	}
	amountPaths = [][]string{
		{"total_price"},
		{"current_total_price"},
		{"total_price_set", "shop_money", "amount"},
	}
)

// ParseOrder extracts the order from a raw JSON body. The bool reports
// whether the body carried enough data to process: a missing order id or a
// non-positive paid total is a soft skip, not an error. Only malformed JSON
// returns domain.ErrInvalidPayload.
func ParseOrder(body []byte) (Order, bool, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var event map[string]any
	if err := decoder.Decode(&event); err != nil {
		return Order{}, false, domain.ErrInvalidPayload
	}

	order := Order{
		OrderID:  firstString(event, orderIDPaths),
		Currency: strings.ToUpper(firstString(event, currencyPaths)),
	}
	if order.Currency == "" {
		order.Currency = defaultCurrency
	}
	if email := firstString(event, emailPaths); email != "" {
		order.CustomerEmail = &email
	}

	if order.OrderID == "" {
		return order, false, nil
	}

	amount, ok := firstAmount(event, amountPaths)
	if !ok || amount <= 0 {
		return order, false, nil
	}
	order.TotalPaid = amount

	return order, true, nil
}

func firstString(event map[string]any, paths [][]string) string {
	for _, path := range paths {
		if value := stringAt(event, path); value != "" {
			return value
		}
	}
	return ""
}

func firstAmount(event map[string]any, paths [][]string) (float64, bool) {
	for _, path := range paths {
		raw, ok := valueAt(event, path)
		if !ok {
			continue
		}
		if amount, ok := coerceAmount(raw); ok {
			return amount, true
		}
	}
	return 0, false
}

func valueAt(event map[string]any, path []string) (any, bool) {
	var current any = event
	for _, key := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func stringAt(event map[string]any, path []string) string {
	raw, ok := valueAt(event, path)
	if !ok {
		return ""
	}
	switch typed := raw.(type) {
	case string:
		return strings.TrimSpace(typed)
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	}
	return ""
}

func coerceAmount(raw any) (float64, bool) {
	switch typed := raw.(type) {
	case json.Number:
		parsed, err := typed.Float64()
		return parsed, err == nil
	case float64:
		return typed, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return parsed, err == nil
	}
	return 0, false
}
