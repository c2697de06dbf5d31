package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OutboxMessage is a serialized domain event waiting for delivery.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	EventType   string
	Payload     []byte
	OccurredAt  time.Time
	Attempts    int
}

// OutboxRepository stores events in the same transaction as the aggregate
// that raised them, so subscribers only ever see committed changes.
type OutboxRepository interface {
	Append(ctx context.Context, events []order.Event) error

	// FetchPending returns up to limit unpublished messages, oldest first,
	// locking them against concurrent relays until the transaction ends.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error

	// MarkFailed records a delivery attempt; the message stays pending.
	MarkFailed(ctx context.Context, id kernel.UUID, reason string) error
}

// EventPublisher delivers one outbox message to its subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}
