package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction. Commit first writes the buffered
// events of every aggregate added or updated through OrderRepository to the
// outbox, then commits.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error

	// Rollback is safe to defer: after Commit it returns an error and
	// changes nothing.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	OutboxRepository() OutboxRepository
}
