package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIKeyRequired authenticates audit-route callers with a static bearer
// key. An unset key rejects every request (fail closed); every rejection
// is the same plain 401 so callers cannot tell which check failed.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	configured := []byte(strings.TrimSpace(s.cfg.AuditAPIKey))

	return func(c *gin.Context) {
		if len(configured) == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), configured) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Next()
	}
}
