package outboxrepo

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxErrorLength bounds the stored last_error text.
const maxErrorLength = 1024

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

var _ ports.OutboxRepository = (*GormOutboxRepository)(nil)

func (r *GormOutboxRepository) Append(ctx context.Context, events []order.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(events))
	for _, event := range events {
		dto, err := fromEvent(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return errors.Wrap(err, "insert outbox messages")
	}
	return nil
}

// FetchPending locks the oldest unpublished rows with SKIP LOCKED so two
// relays never deliver the same message concurrently.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrap(err, "select pending outbox messages")
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		msg, err := toMessage(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id = ?", id.Raw()).
		Update("published_at", at)
	if result.Error != nil {
		return errors.Wrap(result.Error, "mark outbox message published")
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id.String())
	}
	return nil
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, reason string) error {
	reason = truncateError(reason)

	result := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id = ?", id.Raw()).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "mark outbox message failed")
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id.String())
	}
	return nil
}

// truncateError cuts reason to at most maxErrorLength bytes without
// splitting a rune. Postgres rejects invalid UTF-8 in text columns.
func truncateError(reason string) string {
	reason = strings.ToValidUTF8(reason, "\uFFFD")
	if len(reason) <= maxErrorLength {
		return reason
	}
	cut := maxErrorLength
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}
	return reason[:cut]
}
