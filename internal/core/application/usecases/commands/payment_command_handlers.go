package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

type AddPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAddPaymentCommandHandler(uowFactory OrderUoWFactory) AddPaymentCommandHandler {
	return AddPaymentCommandHandler{uowFactory: uowFactory}
}

// Handle returns the id of the new payment, which SettlePaymentCommand
// refers to later.
func (h *AddPaymentCommandHandler) Handle(ctx context.Context, cmd AddPaymentCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var paymentID kernel.UUID
	err := modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		p, err := o.AddPayment(cmd.Amount(), cmd.MethodID(), cmd.MethodType())
		if err != nil {
			return err
		}
		paymentID = p.ID()
		return nil
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	return paymentID, nil
}

// SettlePaymentCommandHandler settles a payment through its owning order so
// the change is saved with the order's version check.
type SettlePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSettlePaymentCommandHandler(uowFactory OrderUoWFactory) SettlePaymentCommandHandler {
	return SettlePaymentCommandHandler{uowFactory: uowFactory}
}

func (h *SettlePaymentCommandHandler) Handle(ctx context.Context, cmd SettlePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		p, err := o.Payment(cmd.PaymentID())
		if err != nil {
			return err
		}
		return p.Settle()
	})
}
