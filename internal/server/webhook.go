package server

import (
	"net/http"
	"strings"

	cashbackdomain "github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/domain"
	obscontext "github.com/LSC-ship-it/luxem-lsc-cashback/internal/observability/context"
	"github.com/gin-gonic/gin"
)

const (
	headerHmacSignature = "X-Shopify-Hmac-Sha256"
	headerShopDomain    = "X-Shopify-Shop-Domain"
	headerTopic         = "X-Shopify-Topic"
)

var webhookAck = map[cashbackdomain.Outcome]string{
	cashbackdomain.OutcomeRecorded:       "recorded",
	cashbackdomain.OutcomeIgnoredTopic:   "ignored",
	cashbackdomain.OutcomeMissingData:    "skipped",
	cashbackdomain.OutcomeStorageFailure: "accepted",
}

// OrdersPaidWebhook receives one "orders/paid" delivery. The body is read
// raw and passed through untouched; signature verification must see the
// exact bytes the upstream signed.
func (s *Server) OrdersPaidWebhook(c *gin.Context) {
	shopDomain := strings.TrimSpace(c.GetHeader(headerShopDomain))
	if shopDomain != "" {
		ctx := obscontext.WithShopDomain(c.Request.Context(), shopDomain)
		c.Request = c.Request.WithContext(ctx)

		if !s.limiter.Allow(shopDomain) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": gin.H{
				"code":    "rate_limited",
				"message": "too many deliveries",
			}})
			return
		}
	}

	body, err := c.GetRawData()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	outcome, err := s.cashbackSvc.ProcessOrderPaid(c.Request.Context(), cashbackdomain.ProcessRequest{
		Topic:      c.GetHeader(headerTopic),
		ShopDomain: shopDomain,
		Signature:  c.GetHeader(headerHmacSignature),
		Payload:    body,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status, ok := webhookAck[outcome]
	if !ok {
		status = "accepted"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
