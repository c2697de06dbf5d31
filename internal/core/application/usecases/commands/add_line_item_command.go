package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrAddLineItemCommandIsNotConstructed = errors.New(
	"AddLineItemCommand must be created via NewAddLineItemCommand constructor",
)

// AddLineItemCommand puts quantity units of a catalog variant in the cart.
type AddLineItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	variantID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

func NewAddLineItemCommand(orderID, variantID kernel.UUID, quantity int) (AddLineItemCommand, error) {
	cmd := AddLineItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVariantID(variantID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddLineItemCommand{}, err
	}

	return cmd, nil
}

func (c AddLineItemCommand) Validate() error {
	return c.guard.Validate(ErrAddLineItemCommandIsNotConstructed)
}

func (c AddLineItemCommand) OrderID() kernel.UUID   { return c.orderID }
func (c AddLineItemCommand) VariantID() kernel.UUID { return c.variantID }
func (c AddLineItemCommand) Quantity() int          { return c.quantity }

func (c *AddLineItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddLineItemCommand) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}

	c.variantID = variantID
	return nil
}

func (c *AddLineItemCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	c.quantity = quantity
	return nil
}
