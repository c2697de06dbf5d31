// Package ports defines the contracts between the ordering core and its
// infrastructure: persistence, the transactional outbox, the read-only
// catalog and event delivery.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their owned
// collections (line items, adjustments, shipments, payments).
type OrderRepository interface {
	// Add persists a new order. Its version becomes 1.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists an existing order when the stored version still equals
	// aggregate.Version(); otherwise it returns errs.VersionIsInvalidError and
	// writes nothing. On success the aggregate is marked with the new version.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	GetByNumber(ctx context.Context, number string) (*order.Order, error)
}
