package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrRemoveLineItemCommandIsNotConstructed = errors.New(
		"RemoveLineItemCommand must be created via NewRemoveLineItemCommand constructor",
	)
	ErrUpdateLineItemQuantityCommandIsNotConstructed = errors.New(
		"UpdateLineItemQuantityCommand must be created via NewUpdateLineItemQuantityCommand constructor",
	)
)

type RemoveLineItemCommand struct {
	orderID    kernel.UUID
	lineItemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveLineItemCommand(orderID, lineItemID kernel.UUID) (RemoveLineItemCommand, error) {
	if err := errors.Join(orderID.Validate(), lineItemID.Validate()); err != nil {
		return RemoveLineItemCommand{}, err
	}

	return RemoveLineItemCommand{
		orderID:    orderID,
		lineItemID: lineItemID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveLineItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLineItemCommandIsNotConstructed)
}

func (c RemoveLineItemCommand) OrderID() kernel.UUID    { return c.orderID }
func (c RemoveLineItemCommand) LineItemID() kernel.UUID { return c.lineItemID }

// UpdateLineItemQuantityCommand sets an absolute quantity; use
// RemoveLineItemCommand to drop a line.
type UpdateLineItemQuantityCommand struct {
	orderID    kernel.UUID
	lineItemID kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

func NewUpdateLineItemQuantityCommand(orderID, lineItemID kernel.UUID, quantity int) (UpdateLineItemQuantityCommand, error) {
	var quantityErr error
	if quantity < 1 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if err := errors.Join(orderID.Validate(), lineItemID.Validate(), quantityErr); err != nil {
		return UpdateLineItemQuantityCommand{}, err
	}

	return UpdateLineItemQuantityCommand{
		orderID:    orderID,
		lineItemID: lineItemID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateLineItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLineItemQuantityCommandIsNotConstructed)
}

func (c UpdateLineItemQuantityCommand) OrderID() kernel.UUID    { return c.orderID }
func (c UpdateLineItemQuantityCommand) LineItemID() kernel.UUID { return c.lineItemID }
func (c UpdateLineItemQuantityCommand) Quantity() int           { return c.quantity }
