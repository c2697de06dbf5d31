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

// InventoryEvents lists the event types the inventory subscriber handles.
var InventoryEvents = []string{
	order.EventLineItemAdded,
	order.EventLineItemRemoved,
	order.EventLineItemQuantityChanged,
	order.EventFinalizeInventory,
	order.EventReleaseInventory,
}

// InventorySubscriber keeps a reservation ledger per order and variant.
// Finalized reservations move to the committed ledger; released ones are
// dropped.
type InventorySubscriber struct {
	mu        sync.Mutex
	reserved  map[kernel.UUID]map[kernel.UUID]int
	committed map[kernel.UUID]int
	logger    *zap.Logger
	metrics   *metrics.Collector
}

var _ Subscriber = (*InventorySubscriber)(nil)

func NewInventorySubscriber(logger *zap.Logger, collector *metrics.Collector) *InventorySubscriber {
	return &InventorySubscriber{
		reserved:  make(map[kernel.UUID]map[kernel.UUID]int),
		committed: make(map[kernel.UUID]int),
		logger:    logger.Named("inventory"),
		metrics:   collector,
	}
}

func (s *InventorySubscriber) Name() string { return "inventory" }

func (s *InventorySubscriber) Handle(_ context.Context, event order.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderID := event.GetAggregateID()

	switch e := event.(type) {
	case *order.LineItemAdded:
		s.reserve(orderID, e.VariantID, e.Quantity)
	case *order.LineItemRemoved:
		s.reserve(orderID, e.VariantID, -e.Quantity)
	case *order.LineItemQuantityChanged:
		s.reserve(orderID, e.VariantID, e.Quantity-e.PreviousQuantity)
	case *order.FinalizeInventory:
		for _, line := range e.Lines {
			s.committed[line.VariantID] += line.Quantity
		}
		delete(s.reserved, orderID)
		s.logger.Info("Inventory finalized",
			zap.String("order_id", orderID.String()),
			zap.Int("lines", len(e.Lines)),
		)
	case *order.ReleaseInventory:
		delete(s.reserved, orderID)
		s.logger.Info("Inventory released",
			zap.String("order_id", orderID.String()),
			zap.Int("lines", len(e.Lines)),
		)
	default:
		return errors.Errorf("inventory: unexpected event %s", event.GetEventType())
	}

	s.metrics.InventoryReserved.Set(float64(s.totalReserved()))
	return nil
}

// Reserved returns the units of variantID held by orderID.
func (s *InventorySubscriber) Reserved(orderID, variantID kernel.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserved[orderID][variantID]
}

// Committed returns the units of variantID deducted by completed orders.
func (s *InventorySubscriber) Committed(variantID kernel.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed[variantID]
}

func (s *InventorySubscriber) reserve(orderID, variantID kernel.UUID, delta int) {
	lines, ok := s.reserved[orderID]
	if !ok {
		lines = make(map[kernel.UUID]int)
		s.reserved[orderID] = lines
	}

	lines[variantID] += delta
	if lines[variantID] <= 0 {
		delete(lines, variantID)
	}
	if len(lines) == 0 {
		delete(s.reserved, orderID)
	}
}

func (s *InventorySubscriber) totalReserved() int {
	total := 0
	for _, lines := range s.reserved {
		for _, qty := range lines {
			total += qty
		}
	}
	return total
}
