package eventbus

import (
	"context"
	"sync"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/metrics"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// PromotionUsageEvents lists the event types the promotion usage subscriber handles.
var PromotionUsageEvents = []string{
	order.EventPromotionApplied,
	order.EventPromotionRemoved,
	order.EventPromotionUsed,
}

// PromotionUsageSubscriber counts redemptions per promotion. Only
// PromotionUsed is a redemption; applied and removed are logged.
type PromotionUsageSubscriber struct {
	mu          sync.Mutex
	redemptions map[kernel.UUID]int
	logger      *zap.Logger
	metrics     *metrics.Collector
}

var _ Subscriber = (*PromotionUsageSubscriber)(nil)

func NewPromotionUsageSubscriber(logger *zap.Logger, collector *metrics.Collector) *PromotionUsageSubscriber {
	return &PromotionUsageSubscriber{
		redemptions: make(map[kernel.UUID]int),
		logger:      logger.Named("promotion_usage"),
		metrics:     collector,
	}
}

func (s *PromotionUsageSubscriber) Name() string { return "promotion_usage" }

func (s *PromotionUsageSubscriber) Handle(_ context.Context, event order.Event) error {
	switch e := event.(type) {
	case *order.PromotionApplied:
		s.logger.Debug("Promotion applied",
			zap.String("order_id", e.OrderID.String()),
			zap.String("promotion_id", e.PromotionID.String()),
			zap.Int64("discount", e.DiscountAmount),
		)
	case *order.PromotionRemoved:
		s.logger.Debug("Promotion removed",
			zap.String("order_id", e.OrderID.String()),
			zap.String("promotion_id", e.PromotionID.String()),
		)
	case *order.PromotionUsed:
		s.mu.Lock()
		s.redemptions[e.PromotionID]++
		s.mu.Unlock()

		s.metrics.PromotionRedemptions.Inc()
		s.logger.Info("Promotion redeemed",
			zap.String("order_id", e.OrderID.String()),
			zap.String("promotion_id", e.PromotionID.String()),
		)
	default:
		return errors.Errorf("promotion usage: unexpected event %s", event.GetEventType())
	}

	return nil
}

// Redemptions returns how many completed orders used promotionID.
func (s *PromotionUsageSubscriber) Redemptions(promotionID kernel.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redemptions[promotionID]
}
