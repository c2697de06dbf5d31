// Package eventbus delivers relayed outbox messages to in-process
// subscribers. Delivery is at least once: a message whose subscriber
// failed is relayed again, and subscribers that already handled it are
// skipped on the retry.
package eventbus

import (
	"context"
	"sync"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"

	"github.com/go-faster/errors"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	defaultDeliveryMemory = 10_000
	handlerTimeout        = 30 * time.Second
)

// Subscriber reacts to order events.
type Subscriber interface {
	Name() string
	Handle(ctx context.Context, event order.Event) error
}

type deliveryKey struct {
	subscriber string
	eventID    kernel.UUID
}

// Bus implements ports.EventPublisher.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Subscriber
	delivered   *lru.Cache[deliveryKey, struct{}]
	logger      *zap.Logger
	metrics     *metrics.Collector
}

var _ ports.EventPublisher = (*Bus)(nil)

// New creates a bus that remembers the last deliveryMemory successful
// deliveries for retry deduplication; zero selects a default.
func New(logger *zap.Logger, collector *metrics.Collector, deliveryMemory int) (*Bus, error) {
	if deliveryMemory <= 0 {
		deliveryMemory = defaultDeliveryMemory
	}
	delivered, err := lru.New[deliveryKey, struct{}](deliveryMemory)
	if err != nil {
		return nil, errors.Wrap(err, "create delivery cache")
	}

	return &Bus{
		subscribers: make(map[string][]Subscriber),
		delivered:   delivered,
		logger:      logger.Named("eventbus"),
		metrics:     collector,
	}, nil
}

// Subscribe registers sub for the given event types.
func (b *Bus) Subscribe(sub Subscriber, eventTypes ...string) error {
	if sub == nil {
		return errors.New("subscriber cannot be nil")
	}
	if len(eventTypes) == 0 {
		return errors.Errorf("subscriber %s has no event types", sub.Name())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range eventTypes {
		if _, err := order.DecodeEvent(eventType, []byte(`{}`)); err != nil {
			return errors.Wrapf(err, "subscribe %s", sub.Name())
		}
		b.subscribers[eventType] = append(b.subscribers[eventType], sub)

		b.logger.Info("Registered subscriber",
			zap.String("subscriber", sub.Name()),
			zap.String("event_type", eventType),
		)
	}
	return nil
}

// Publish decodes msg and hands it to every subscriber of its type. It
// fails if any subscriber fails; the others are not rolled back.
func (b *Bus) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	event, err := order.DecodeEvent(msg.EventType, msg.Payload)
	if err != nil {
		return errors.Wrapf(err, "decode message %s", msg.ID)
	}

	b.mu.RLock()
	subscribers := append([]Subscriber(nil), b.subscribers[msg.EventType]...)
	b.mu.RUnlock()

	if len(subscribers) == 0 {
		b.logger.Debug("No subscribers for event", zap.String("event_type", msg.EventType))
		return nil
	}

	var result error
	for _, sub := range subscribers {
		key := deliveryKey{subscriber: sub.Name(), eventID: event.GetEventID()}
		if b.delivered.Contains(key) {
			b.count(sub, msg.EventType, metrics.OutcomeDuplicate)
			continue
		}

		start := time.Now()
		handlerCtx, cancel := context.WithTimeout(ctx, handlerTimeout)
		handleErr := sub.Handle(handlerCtx, event)
		cancel()

		if handleErr != nil {
			b.count(sub, msg.EventType, metrics.OutcomeFailure)
			b.logger.Error("Subscriber failed",
				zap.String("subscriber", sub.Name()),
				zap.String("event_type", msg.EventType),
				zap.String("order_id", event.GetAggregateID().String()),
				zap.Duration("duration", time.Since(start)),
				zap.Error(handleErr),
			)
			result = multierr.Append(result, errors.Wrap(handleErr, sub.Name()))
			continue
		}

		b.delivered.Add(key, struct{}{})
		b.count(sub, msg.EventType, metrics.OutcomeSuccess)
	}

	return result
}

func (b *Bus) count(sub Subscriber, eventType, outcome string) {
	if b.metrics == nil {
		return
	}
	b.metrics.EventsDelivered.WithLabelValues(sub.Name(), eventType, outcome).Inc()
}
