package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrSetShippingMethodCommandIsNotConstructed = errors.New(
		"SetShippingMethodCommand must be created via NewSetShippingMethodCommand constructor",
	)
	ErrSetFulfillmentLocationCommandIsNotConstructed = errors.New(
		"SetFulfillmentLocationCommand must be created via NewSetFulfillmentLocationCommand constructor",
	)
	ErrSetAddressesCommandIsNotConstructed = errors.New(
		"SetAddressesCommand must be created via NewSetAddressesCommand constructor",
	)
)

type SetShippingMethodCommand struct {
	orderID          kernel.UUID
	shippingMethodID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSetShippingMethodCommand(orderID, shippingMethodID kernel.UUID) (SetShippingMethodCommand, error) {
	if err := errors.Join(orderID.Validate(), shippingMethodID.Validate()); err != nil {
		return SetShippingMethodCommand{}, err
	}
	return SetShippingMethodCommand{
		orderID:          orderID,
		shippingMethodID: shippingMethodID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c SetShippingMethodCommand) Validate() error {
	return c.guard.Validate(ErrSetShippingMethodCommandIsNotConstructed)
}

func (c SetShippingMethodCommand) OrderID() kernel.UUID          { return c.orderID }
func (c SetShippingMethodCommand) ShippingMethodID() kernel.UUID { return c.shippingMethodID }

type SetFulfillmentLocationCommand struct {
	orderID         kernel.UUID
	stockLocationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSetFulfillmentLocationCommand(orderID, stockLocationID kernel.UUID) (SetFulfillmentLocationCommand, error) {
	if err := errors.Join(orderID.Validate(), stockLocationID.Validate()); err != nil {
		return SetFulfillmentLocationCommand{}, err
	}
	return SetFulfillmentLocationCommand{
		orderID:         orderID,
		stockLocationID: stockLocationID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c SetFulfillmentLocationCommand) Validate() error {
	return c.guard.Validate(ErrSetFulfillmentLocationCommandIsNotConstructed)
}

func (c SetFulfillmentLocationCommand) OrderID() kernel.UUID         { return c.orderID }
func (c SetFulfillmentLocationCommand) StockLocationID() kernel.UUID { return c.stockLocationID }

// SetAddressesCommand sets the shipping address, the billing address or
// both. Addresses live in the customer directory; the order keeps ids only.
type SetAddressesCommand struct {
	orderID           kernel.UUID
	shippingAddressID *kernel.UUID
	billingAddressID  *kernel.UUID

	guard guard.ConstructorGuard
}

func NewSetAddressesCommand(orderID kernel.UUID, shippingAddressID, billingAddressID *kernel.UUID) (SetAddressesCommand, error) {
	var shippingErr, billingErr error
	if shippingAddressID == nil && billingAddressID == nil {
		shippingErr = errs.NewValueIsRequiredError("shipping or billing address")
	}
	if shippingAddressID != nil {
		shippingErr = shippingAddressID.Validate()
	}
	if billingAddressID != nil {
		billingErr = billingAddressID.Validate()
	}
	if err := errors.Join(orderID.Validate(), shippingErr, billingErr); err != nil {
		return SetAddressesCommand{}, err
	}

	return SetAddressesCommand{
		orderID:           orderID,
		shippingAddressID: shippingAddressID,
		billingAddressID:  billingAddressID,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c SetAddressesCommand) Validate() error {
	return c.guard.Validate(ErrSetAddressesCommandIsNotConstructed)
}

func (c SetAddressesCommand) OrderID() kernel.UUID            { return c.orderID }
func (c SetAddressesCommand) ShippingAddressID() *kernel.UUID { return c.shippingAddressID }
func (c SetAddressesCommand) BillingAddressID() *kernel.UUID  { return c.billingAddressID }
