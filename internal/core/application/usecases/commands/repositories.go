// Package commands holds the write side of the ordering service. Each
// command is built by a validating constructor and run by a handler that
// loads the order, mutates it and saves it inside one unit of work.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Narrow views of ports.UnitOfWork, one per kind of handler.
type (
	// TxManager is the transaction half of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory hands out the order repository bound to the open transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OutboxRepoFactory hands out the outbox bound to the open transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for commands that change one order.
	// Buffered order events reach the outbox on Commit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   // ... mutate o
	//   err = uow.OrderRepository().Update(ctx, o)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory returns a fresh OrderUoW per Handle call.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW manages transactions for the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory returns a fresh OutboxUoW per relay pass.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
