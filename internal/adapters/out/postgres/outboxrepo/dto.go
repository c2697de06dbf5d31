// Package outboxrepo stores serialized order events in the same
// transaction as the order that raised them.
package outboxrepo

import (
	"encoding/json"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// OutboxMessageDTO is one pending or delivered event. Seq preserves the
// order in which events were appended, which timestamps alone do not.
type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq         int64      `gorm:"autoIncrement;not null;uniqueIndex"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventType   string     `gorm:"type:varchar(64);not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null"`
	PublishedAt *time.Time `gorm:"index"`
	Attempts    int        `gorm:"not null;default:0"`
	LastError   string     `gorm:"type:text"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromEvent(event order.Event) (OutboxMessageDTO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxMessageDTO{}, errors.Wrapf(err, "marshal %s", event.GetEventType())
	}

	return OutboxMessageDTO{
		ID:          event.GetEventID().Raw(),
		AggregateID: event.GetAggregateID().Raw(),
		EventType:   event.GetEventType(),
		Payload:     payload,
		OccurredAt:  event.GetTimestamp(),
	}, nil
}

func toMessage(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		AggregateID: aggregateID,
		EventType:   dto.EventType,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
		Attempts:    dto.Attempts,
	}, nil
}
