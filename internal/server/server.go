// Package server exposes the webhook receiver and read-only audit routes.
package server

import (
	"context"
	"net/http"
	"time"

	cashbackdomain "github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/domain"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/config"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/observability/logger"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/observability/metrics"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/observability/tracing"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) {
		s.RegisterRoutes()
	}),
	fx.Invoke(RunHTTP),
)

type EngineParams struct {
	fx.In

	Cfg         config.Config
	GenID       *snowflake.Node      `optional:"true"`
	HTTPMetrics *metrics.HTTPMetrics `optional:"true"`
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(p EngineParams) *gin.Engine {
	if p.Cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz"},
		GenID:     p.GenID,
	}))
	engine.Use(tracing.GinMiddleware("luxem-cashback"))
	if p.HTTPMetrics != nil {
		engine.Use(metrics.GinMiddleware(p.HTTPMetrics))
	}

	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": gin.H{
			"code":    "method_not_allowed",
			"message": "method not allowed",
		}})
	})

	return engine
}

type Params struct {
	fx.In

	Engine      *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	CashbackSvc cashbackdomain.Service
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	cashbackSvc cashbackdomain.Service
	limiter     *rateLimiter
}

func NewServer(p Params) *Server {
	return &Server{
		engine:      p.Engine,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("server"),
		cashbackSvc: p.CashbackSvc,
		limiter:     newRateLimiter(p.Cfg.WebhookRateLimit, time.Minute),
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", s.Health)

	s.engine.POST("/webhooks/orders/paid", s.OrdersPaidWebhook)

	api := s.engine.Group("/api", s.APIKeyRequired())
	api.GET("/cashback/events", s.ListCashbackEvents)
	api.GET("/cashback/events/:order_id", s.GetCashbackEvent)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener once the fx app is ready and drains it
// on shutdown.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
