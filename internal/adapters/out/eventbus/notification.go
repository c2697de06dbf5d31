package eventbus

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/metrics"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// NotificationEvents lists the event types the notification subscriber handles.
var NotificationEvents = []string{
	order.EventCreated,
	order.EventStateChanged,
	order.EventCompleted,
	order.EventCanceled,
}

// NotificationSubscriber stands in for customer notifications: it writes
// one log entry per lifecycle event.
type NotificationSubscriber struct {
	logger  *zap.Logger
	metrics *metrics.Collector
}

var _ Subscriber = (*NotificationSubscriber)(nil)

func NewNotificationSubscriber(logger *zap.Logger, collector *metrics.Collector) *NotificationSubscriber {
	return &NotificationSubscriber{
		logger:  logger.Named("notification"),
		metrics: collector,
	}
}

func (s *NotificationSubscriber) Name() string { return "notification" }

func (s *NotificationSubscriber) Handle(_ context.Context, event order.Event) error {
	logger := s.logger.With(zap.String("order_id", event.GetAggregateID().String()))

	switch e := event.(type) {
	case *order.Created:
		logger.Info("Order created",
			zap.String("number", e.Number),
			zap.String("currency", e.Currency.String()),
		)
	case *order.StateChanged:
		logger.Info("Order state changed",
			zap.String("from", e.PreviousState.String()),
			zap.String("to", e.NewState.String()),
		)
	case *order.Completed:
		s.metrics.OrdersCompleted.Inc()
		logger.Info("Order completed",
			zap.String("number", e.Number),
			zap.Int64("grand_total", e.GrandTotal),
		)
	case *order.OrderCanceled:
		s.metrics.OrdersCanceled.Inc()
		logger.Info("Order canceled", zap.String("from", e.PreviousState.String()))
	default:
		return errors.Errorf("notification: unexpected event %s", event.GetEventType())
	}

	return nil
}
