package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

type RemoveLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRemoveLineItemCommandHandler(uowFactory OrderUoWFactory) RemoveLineItemCommandHandler {
	return RemoveLineItemCommandHandler{uowFactory: uowFactory}
}

func (h *RemoveLineItemCommandHandler) Handle(ctx context.Context, cmd RemoveLineItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.RemoveLineItem(cmd.LineItemID())
	})
}

type UpdateLineItemQuantityCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateLineItemQuantityCommandHandler(uowFactory OrderUoWFactory) UpdateLineItemQuantityCommandHandler {
	return UpdateLineItemQuantityCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateLineItemQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateLineItemQuantityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.UpdateLineItemQuantity(cmd.LineItemID(), cmd.Quantity())
	})
}
