package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

type SetShippingMethodCommandHandler struct {
	uowFactory OrderUoWFactory
	methods    ports.ShippingMethodRepository
}

func NewSetShippingMethodCommandHandler(
	uowFactory OrderUoWFactory,
	methods ports.ShippingMethodRepository,
) SetShippingMethodCommandHandler {
	return SetShippingMethodCommandHandler{
		uowFactory: uowFactory,
		methods:    methods,
	}
}

func (h *SetShippingMethodCommandHandler) Handle(ctx context.Context, cmd SetShippingMethodCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	method, err := h.methods.GetShippingMethod(ctx, cmd.ShippingMethodID())
	if err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.SetShippingMethod(method)
	})
}

type SetFulfillmentLocationCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetFulfillmentLocationCommandHandler(uowFactory OrderUoWFactory) SetFulfillmentLocationCommandHandler {
	return SetFulfillmentLocationCommandHandler{uowFactory: uowFactory}
}

func (h *SetFulfillmentLocationCommandHandler) Handle(ctx context.Context, cmd SetFulfillmentLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.SetFulfillmentLocation(cmd.StockLocationID())
	})
}

// SetAddressesCommandHandler applies both addresses in one transaction; if
// either is rejected neither is stored.
type SetAddressesCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetAddressesCommandHandler(uowFactory OrderUoWFactory) SetAddressesCommandHandler {
	return SetAddressesCommandHandler{uowFactory: uowFactory}
}

func (h *SetAddressesCommandHandler) Handle(ctx context.Context, cmd SetAddressesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if id := cmd.ShippingAddressID(); id != nil {
			if err := o.SetShippingAddress(*id); err != nil {
				return err
			}
		}
		if id := cmd.BillingAddressID(); id != nil {
			return o.SetBillingAddress(*id)
		}
		return nil
	})
}
