package server

import (
	"net/http"
	"strings"
	"time"

	cashbackdomain "github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/domain"
	"github.com/gin-gonic/gin"
)

// ListCashbackEvents serves the read-only audit listing over the secondary
// indexes (customer email, creation time).
func (s *Server) ListCashbackEvents(c *gin.Context) {
	var query struct {
		CustomerEmail string `form:"customer_email"`
		CreatedFrom   string `form:"created_from"`
		CreatedTo     string `form:"created_to"`
		PageSize      int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	createdFrom, err := parseOptionalTime(query.CreatedFrom, false)
	if err != nil {
		AbortWithError(c, newValidationError("created_from", "invalid_created_from", "invalid created_from"))
		return
	}
	createdTo, err := parseOptionalTime(query.CreatedTo, true)
	if err != nil {
		AbortWithError(c, newValidationError("created_to", "invalid_created_to", "invalid created_to"))
		return
	}

	events, err := s.cashbackSvc.ListEvents(c.Request.Context(), cashbackdomain.ListEventsRequest{
		CustomerEmail: strings.TrimSpace(query.CustomerEmail),
		CreatedFrom:   createdFrom,
		CreatedTo:     createdTo,
		PageSize:      query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}

// GetCashbackEvent returns the single row for one order id.
func (s *Server) GetCashbackEvent(c *gin.Context) {
	orderID := strings.TrimSpace(c.Param("order_id"))

	event, err := s.cashbackSvc.GetEvent(c.Request.Context(), orderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": event})
}

// parseOptionalTime parses RFC3339 or date-only values; date-only upper
// bounds extend to end of day.
func parseOptionalTime(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed, nil
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return &parsed, nil
}
