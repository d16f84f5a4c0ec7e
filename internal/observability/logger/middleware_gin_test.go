package logger

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGinMiddlewareSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{}))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got == "" {
		t.Fatalf("expected X-Request-Id header to be set")
	}
}

func TestGinMiddlewareKeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{}))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "delivery-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "delivery-7" {
		t.Fatalf("expected incoming request id to be kept, got %q", got)
	}
}

func TestGinMiddlewareLogsMaskedHeadersAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{}))
	r.POST("/hook", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.Header.Set("X-Shopify-Hmac-Sha256", "c29tZXNpZ25hdHVyZQ==")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one access log entry, got %d", len(entries))
	}

	headers, ok := entries[0].ContextMap()["headers"].(map[string]string)
	if !ok {
		t.Fatalf("expected headers field, got %+v", entries[0].ContextMap())
	}
	sig := headers["X-Shopify-Hmac-Sha256"]
	if strings.Contains(sig, "c29tZXNpZ25hdHVy") {
		t.Fatalf("signature must be masked, got %q", sig)
	}
	if !strings.HasSuffix(sig, "ZQ==") {
		t.Fatalf("masked signature should keep last 4 characters, got %q", sig)
	}
}
