package payment

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")
	ErrPaymentIsNotPending     = errors.New("payment is not pending")
)

// MethodType classifies how a payment is made.
type MethodType string

const (
	MethodCard           MethodType = "card"
	MethodBankTransfer   MethodType = "bank_transfer"
	MethodCashOnDelivery MethodType = "cash_on_delivery"
	MethodGiftCard       MethodType = "gift_card"
	MethodExternal       MethodType = "external"
)

// ParseMethodType normalizes a method type name.
func ParseMethodType(s string) (MethodType, error) {
	m := MethodType(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m MethodType) Validate() error {
	switch m {
	case MethodCard, MethodBankTransfer, MethodCashOnDelivery, MethodGiftCard, MethodExternal:
		return nil
	case "":
		return errs.NewValueIsRequiredError("payment method type")
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method type", fmt.Errorf("%q is not supported", string(m)))
	}
}

// Payment is a transaction amount in the order's currency together with
// its settlement status.
type Payment struct {
	id         kernel.UUID
	orderID    kernel.UUID
	amount     kernel.Money
	methodID   kernel.UUID
	methodType MethodType
	status     Status

	guard guard.ConstructorGuard
}

// NewPayment creates a pending payment. Amount must not be negative.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	methodID kernel.UUID,
	methodType MethodType,
) (*Payment, error) {
	return RestorePayment(id, orderID, amount, methodID, methodType, Pending)
}

// RestorePayment rebuilds a payment from persistence.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	methodID kernel.UUID,
	methodType MethodType,
	status Status,
) (*Payment, error) {
	p := &Payment{
		id:         id,
		orderID:    orderID,
		amount:     amount,
		methodID:   methodID,
		methodType: methodType,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}

	var amountErr error
	if amount.IsNegative() {
		amountErr = errs.NewValueIsOutOfRangeError("payment amount", amount.Amount(), 0, "unbounded")
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		amount.Currency().Validate(),
		amountErr,
		methodID.Validate(),
		methodType.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

func (p *Payment) Amount() kernel.Money {
	return p.amount
}

func (p *Payment) MethodID() kernel.UUID {
	return p.methodID
}

func (p *Payment) MethodType() MethodType {
	return p.methodType
}

func (p *Payment) Status() Status {
	return p.status
}

// IsSettled reports whether the funds were captured.
func (p *Payment) IsSettled() bool {
	return p.status == Settled
}

// Settle records a successful capture.
func (p *Payment) Settle() error {
	return p.transition(Settled)
}

// Fail records a declined or errored capture.
func (p *Payment) Fail() error {
	return p.transition(Failed)
}

// Void cancels a payment before capture.
func (p *Payment) Void() error {
	return p.transition(Voided)
}

func (p *Payment) transition(to Status) error {
	if p.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%w: cannot move from %s to %s", ErrPaymentIsNotPending, p.status, to))
	}
	p.status = to
	return nil
}
