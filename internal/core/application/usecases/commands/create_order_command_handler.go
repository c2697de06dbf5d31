package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"

	"github.com/go-faster/errors"
)

// CreateOrderCommandHandler opens a cart in Cart state with a generated
// order number. The Created event is written to the outbox with the order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	numbers    order.NumberGenerator
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, numbers order.NumberGenerator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.StoreID(), cmd.Currency(), h.numbers)
	if err != nil {
		return err
	}
	if err = o.SetCustomer(cmd.CustomerID()); err != nil {
		return err
	}
	if err = o.SetEmail(cmd.Email()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit transaction")
	}

	return nil
}
