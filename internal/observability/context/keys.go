package context

import "context"

type contextKey string

const (
	requestIDKey  contextKey = "observability_request_id"
	shopDomainKey contextKey = "observability_shop_domain"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

func WithShopDomain(ctx context.Context, shopDomain string) context.Context {
	if ctx == nil || shopDomain == "" {
		return ctx
	}
	return context.WithValue(ctx, shopDomainKey, shopDomain)
}

func ShopDomainFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(shopDomainKey).(string)
	return value
}
