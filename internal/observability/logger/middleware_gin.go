package logger

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	obscontext "github.com/LSC-ship-it/luxem-lsc-cashback/internal/observability/context"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const requestIDHeader = "X-Request-Id"

// MiddlewareConfig controls the request logging middleware.
type MiddlewareConfig struct {
	// SkipPaths lists routes that are never access-logged (health probes).
	SkipPaths []string

	// GenID mints request ids; when nil a random hex id is used instead.
	GenID *snowflake.Node
}

// GinMiddleware assigns a request id, propagates it through the request
// context and response header, and writes one access log line per request.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = newRequestID(cfg.GenID)
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Request = c.Request.WithContext(obscontext.WithRequestID(c.Request.Context(), requestID))

		start := time.Now()
		c.Next()

		if _, ok := skip[c.FullPath()]; ok {
			return
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestID),
		}
		if shop := obscontext.ShopDomainFromGin(c); shop != "" {
			fields = append(fields, zap.String("shop_domain", shop))
		}
		if sig := c.GetHeader("X-Shopify-Hmac-Sha256"); sig != "" {
			fields = append(fields, zap.String("signature", MaskSignature(sig)))
		}

		log := FromContext(c.Request.Context())
		if log.Core().Enabled(zapcore.DebugLevel) {
			fields = append(fields, zap.Any("headers", MaskHeaders(c.Request.Header)))
		}
		log.Info("http request", fields...)
	}
}

func newRequestID(node *snowflake.Node) string {
	if node != nil {
		return node.Generate().String()
	}
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(buf[:])
}
