package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// RelayResult summarizes one relay pass.
type RelayResult struct {
	Published int
	Failed    int
	Deferred  int
}

// RelayOutboxCommandHandler publishes pending outbox messages and marks
// them delivered in the same transaction that locked them.
//
// A failed message stays pending. Later messages of the same order in the
// batch are deferred to the next pass so subscribers see each order's
// events in the order they were raised.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	logger     *zap.Logger
	now        func() time.Time
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.Named("outbox_relay"),
		now:        time.Now,
	}
}

func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayResult, error) {
	var result RelayResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, errors.Wrap(err, "begin transaction")
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return result, errors.Wrap(err, "fetch pending messages")
	}
	if len(messages) == 0 {
		return result, nil
	}

	blocked := make(map[kernel.UUID]struct{})
	for _, msg := range messages {
		if _, ok := blocked[msg.AggregateID]; ok {
			result.Deferred++
			continue
		}

		if pubErr := h.publisher.Publish(ctx, msg); pubErr != nil {
			h.logger.Warn("Publish outbox message",
				zap.String("message_id", msg.ID.String()),
				zap.String("event_type", msg.EventType),
				zap.Int("attempt", msg.Attempts+1),
				zap.Error(pubErr),
			)
			if err = outbox.MarkFailed(ctx, msg.ID, pubErr.Error()); err != nil {
				return result, errors.Wrap(err, "mark message failed")
			}
			blocked[msg.AggregateID] = struct{}{}
			result.Failed++
			continue
		}

		if err = outbox.MarkPublished(ctx, msg.ID, h.now().UTC()); err != nil {
			return result, errors.Wrap(err, "mark message published")
		}
		result.Published++
	}

	if err = uow.Commit(ctx); err != nil {
		return result, errors.Wrap(err, "commit transaction")
	}

	h.logger.Debug("Relayed outbox batch",
		zap.Int("published", result.Published),
		zap.Int("failed", result.Failed),
		zap.Int("deferred", result.Deferred),
	)
	return result, nil
}
