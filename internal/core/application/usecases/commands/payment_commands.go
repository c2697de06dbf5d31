package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrAddPaymentCommandIsNotConstructed = errors.New(
		"AddPaymentCommand must be created via NewAddPaymentCommand constructor",
	)
	ErrSettlePaymentCommandIsNotConstructed = errors.New(
		"SettlePaymentCommand must be created via NewSettlePaymentCommand constructor",
	)
)

// AddPaymentCommand records a pending payment of amount minor units.
type AddPaymentCommand struct {
	orderID    kernel.UUID
	amount     int64
	methodID   kernel.UUID
	methodType payment.MethodType

	guard guard.ConstructorGuard
}

func NewAddPaymentCommand(orderID kernel.UUID, amount int64, methodID kernel.UUID, methodType string) (AddPaymentCommand, error) {
	var amountErr error
	if amount < 0 {
		amountErr = errs.NewValueIsOutOfRangeError("payment amount", amount, 0, "unbounded")
	}
	mt, methodErr := payment.ParseMethodType(methodType)

	if err := errors.Join(orderID.Validate(), amountErr, methodID.Validate(), methodErr); err != nil {
		return AddPaymentCommand{}, err
	}

	return AddPaymentCommand{
		orderID:    orderID,
		amount:     amount,
		methodID:   methodID,
		methodType: mt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AddPaymentCommand) Validate() error {
	return c.guard.Validate(ErrAddPaymentCommandIsNotConstructed)
}

func (c AddPaymentCommand) OrderID() kernel.UUID           { return c.orderID }
func (c AddPaymentCommand) Amount() int64                  { return c.amount }
func (c AddPaymentCommand) MethodID() kernel.UUID          { return c.methodID }
func (c AddPaymentCommand) MethodType() payment.MethodType { return c.methodType }

// SettlePaymentCommand reports that the gateway captured a payment.
type SettlePaymentCommand struct {
	orderID   kernel.UUID
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSettlePaymentCommand(orderID, paymentID kernel.UUID) (SettlePaymentCommand, error) {
	if err := errors.Join(orderID.Validate(), paymentID.Validate()); err != nil {
		return SettlePaymentCommand{}, err
	}
	return SettlePaymentCommand{orderID: orderID, paymentID: paymentID, guard: guard.NewConstructorGuard()}, nil
}

func (c SettlePaymentCommand) Validate() error {
	return c.guard.Validate(ErrSettlePaymentCommandIsNotConstructed)
}

func (c SettlePaymentCommand) OrderID() kernel.UUID   { return c.orderID }
func (c SettlePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }
