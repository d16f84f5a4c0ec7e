package service

import (
	"context"
	"strings"
	"time"

	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/domain"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/payload"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/signature"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/config"
	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Topics recognized as a paid order. Anything else is acknowledged and
// skipped so the upstream never retries an irrelevant event type.
var paidTopics = map[string]struct{}{
	"orders/paid": {},
	"orders_paid": {},
}

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Cfg     config.Config
	Repo    domain.Repository
	Metrics *metrics.WebhookMetrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	metrics  *metrics.WebhookMetrics
	verifier signature.Verifier

	shopDomain string
	percent    float64
}

func NewService(p Params) domain.Service {
	log := p.Log.Named("cashback.service")
	if strings.TrimSpace(p.Cfg.ShopifyWebhookSecret) == "" {
		log.Error("webhook secret is not configured; all deliveries will be rejected")
	}

	return &Service{
		db:         p.DB,
		log:        log,
		repo:       p.Repo,
		metrics:    p.Metrics,
		verifier:   signature.NewVerifier(p.Cfg.ShopifyWebhookSecret),
		shopDomain: strings.ToLower(strings.TrimSpace(p.Cfg.ShopDomain)),
		percent:    p.Cfg.CashbackPercent,
	}
}

// ProcessOrderPaid runs one delivery through the pipeline:
// gate (shop domain, topic) → verify → normalize → calculate → record.
// Storage failures are swallowed deliberately: the delivery is acknowledged
// and the failure is logged and counted instead, so a broken database does
// not trigger an upstream retry storm. The trade-off (a dropped record on
// storage failure) is accepted.
func (s *Service) ProcessOrderPaid(ctx context.Context, req domain.ProcessRequest) (domain.Outcome, error) {
	shop := strings.ToLower(strings.TrimSpace(req.ShopDomain))
	if shop == "" || shop != s.shopDomain {
		return "", domain.ErrInvalidShopDomain
	}

	topic := strings.ToLower(strings.TrimSpace(req.Topic))
	if _, ok := paidTopics[topic]; !ok {
		s.log.Debug("ignoring webhook topic", zap.String("topic", topic))
		s.recordOutcome(ctx, domain.OutcomeIgnoredTopic)
		return domain.OutcomeIgnoredTopic, nil
	}

	if err := s.verifier.Verify(req.Payload, req.Signature); err != nil {
		return "", err
	}

	order, complete, err := payload.ParseOrder(req.Payload)
	if err != nil {
		return "", err
	}
	if !complete {
		s.log.Info("skipping delivery with incomplete order data",
			zap.String("order_id", order.OrderID),
		)
		s.recordOutcome(ctx, domain.OutcomeMissingData)
		return domain.OutcomeMissingData, nil
	}

	now := time.Now().UTC()
	event := &domain.CashbackEvent{
		OrderID:         order.OrderID,
		CreatedAt:       now,
		UpdatedAt:       now,
		ShopDomain:      shop,
		CustomerEmail:   order.CustomerEmail,
		Currency:        order.Currency,
		TotalPaid:       order.TotalPaid,
		CashbackPercent: s.percent,
		CashbackAmount:  domain.RewardAmount(order.TotalPaid, s.percent),
		Raw:             datatypes.JSON(req.Payload),
	}

	if err := s.repo.UpsertEvent(ctx, s.db, event); err != nil {
		s.log.Error("cashback event not persisted",
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordStorageFailure(ctx)
		}
		s.recordOutcome(ctx, domain.OutcomeStorageFailure)
		return domain.OutcomeStorageFailure, nil
	}

	s.log.Info("cashback recorded",
		zap.String("order_id", event.OrderID),
		zap.Float64("total_paid", event.TotalPaid),
		zap.Float64("cashback_amount", event.CashbackAmount),
		zap.String("currency", event.Currency),
	)
	s.recordOutcome(ctx, domain.OutcomeRecorded)
	return domain.OutcomeRecorded, nil
}

func (s *Service) ListEvents(ctx context.Context, req domain.ListEventsRequest) ([]domain.CashbackEvent, error) {
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	return s.repo.ListEvents(ctx, s.db, req)
}

func (s *Service) GetEvent(ctx context.Context, orderID string) (*domain.CashbackEvent, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, domain.ErrInvalidOrderID
	}
	event, err := s.repo.FindEvent(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *Service) recordOutcome(ctx context.Context, outcome domain.Outcome) {
	if s.metrics != nil {
		s.metrics.RecordOutcome(ctx, string(outcome))
	}
}
