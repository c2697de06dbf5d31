package commands

import (
	"context"
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrAddAdjustmentCommandIsNotConstructed = errors.New(
	"AddAdjustmentCommand must be created via NewAddAdjustmentCommand constructor",
)

// AddAdjustmentCommand records tax or a fee computed outside the core.
type AddAdjustmentCommand struct {
	orderID     kernel.UUID
	amount      int64
	description string
	lineItemID  *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAddAdjustmentCommand(orderID kernel.UUID, amount int64, description string, lineItemID *kernel.UUID) (AddAdjustmentCommand, error) {
	var amountErr, descriptionErr, lineErr error
	if amount == 0 {
		amountErr = errs.NewValueIsInvalidError("adjustment amount")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		descriptionErr = errs.NewValueIsRequiredError("adjustment description")
	}
	if lineItemID != nil {
		lineErr = lineItemID.Validate()
	}
	if err := errors.Join(orderID.Validate(), amountErr, descriptionErr, lineErr); err != nil {
		return AddAdjustmentCommand{}, err
	}

	return AddAdjustmentCommand{
		orderID:     orderID,
		amount:      amount,
		description: description,
		lineItemID:  lineItemID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AddAdjustmentCommand) Validate() error {
	return c.guard.Validate(ErrAddAdjustmentCommandIsNotConstructed)
}

type AddAdjustmentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAddAdjustmentCommandHandler(uowFactory OrderUoWFactory) AddAdjustmentCommandHandler {
	return AddAdjustmentCommandHandler{uowFactory: uowFactory}
}

func (h *AddAdjustmentCommandHandler) Handle(ctx context.Context, cmd AddAdjustmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.orderID, func(o *order.Order) error {
		_, err := o.AddAdjustment(cmd.amount, cmd.description, cmd.lineItemID)
		return err
	})
}
