package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// AddLineItemCommandHandler resolves the variant from the catalog before
// opening the transaction, so a catalog miss never touches the database.
type AddLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
	variants   ports.VariantRepository
}

func NewAddLineItemCommandHandler(uowFactory OrderUoWFactory, variants ports.VariantRepository) AddLineItemCommandHandler {
	return AddLineItemCommandHandler{
		uowFactory: uowFactory,
		variants:   variants,
	}
}

func (h *AddLineItemCommandHandler) Handle(ctx context.Context, cmd AddLineItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	variant, err := h.variants.GetVariant(ctx, cmd.VariantID())
	if err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		_, err := o.AddLineItem(variant, cmd.Quantity())
		return err
	})
}
