package order

import (
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
)

// SetShippingMethod prices delivery with method and stores the cost as the
// shipment total.
func (o *Order) SetShippingMethod(method ShippingMethod) error {
	if err := o.ensureShippingEditable(); err != nil {
		return err
	}
	if method == nil {
		return errs.NewValueIsRequiredError("shipping method")
	}

	itemTotal, err := o.money(o.itemTotal)
	if err != nil {
		return err
	}
	cost, err := method.Cost(o.TotalWeightGrams(), itemTotal)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shipping method", fmt.Errorf("%w: %w", ErrShippingCostInvalid, err))
	}
	if cost.Currency() != o.currency || cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("shipping method", ErrShippingCostInvalid)
	}

	methodID := method.ID()
	o.shippingMethodID = &methodID
	o.shipmentTotal = cost.Amount()
	o.Recalculate()
	o.raise(&ShippingMethodSelected{
		BaseEvent:        o.newBaseEvent(EventShippingMethodSelected),
		ShippingMethodID: methodID,
		ShipmentTotal:    o.shipmentTotal,
	})
	return nil
}

// SetFulfillmentLocation picks the stock location the shipment leaves from.
func (o *Order) SetFulfillmentLocation(stockLocationID kernel.UUID) error {
	if err := o.ensureShippingEditable(); err != nil {
		return err
	}
	if stockLocationID.IsZero() {
		return errs.NewValueIsRequiredError("stock location")
	}

	o.fulfillmentLocationID = &stockLocationID
	o.raise(&FulfillmentLocationSelected{
		BaseEvent:       o.newBaseEvent(EventFulfillmentLocationSelected),
		StockLocationID: stockLocationID,
	})
	return nil
}

func (o *Order) SetShippingAddress(addressID kernel.UUID) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if addressID.IsZero() {
		return errs.NewValueIsRequiredError("shipping address")
	}
	if o.IsFullyDigital() {
		return errs.NewValueIsInvalidErrorWithCause("shipping address", ErrDigitalOrder)
	}

	o.shippingAddressID = &addressID
	o.raise(&ShippingAddressSet{
		BaseEvent: o.newBaseEvent(EventShippingAddressSet),
		AddressID: addressID,
	})
	return nil
}

func (o *Order) SetBillingAddress(addressID kernel.UUID) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if addressID.IsZero() {
		return errs.NewValueIsRequiredError("billing address")
	}

	o.billingAddressID = &addressID
	o.raise(&BillingAddressSet{
		BaseEvent: o.newBaseEvent(EventBillingAddressSet),
		AddressID: addressID,
	})
	return nil
}

// AddPayment records a pending payment of amount minor units. Totals are
// not affected.
func (o *Order) AddPayment(amount int64, methodID kernel.UUID, methodType payment.MethodType) (*payment.Payment, error) {
	if err := o.ensureOpen(); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("payment amount", amount, 0, "unbounded")
	}
	money, err := o.money(amount)
	if err != nil {
		return nil, err
	}

	p, err := payment.NewPayment(kernel.NewUUID(), o.id, money, methodID, methodType)
	if err != nil {
		return nil, err
	}
	o.payments = append(o.payments, p)
	return p, nil
}

// PaymentTotal sums payments that are pending or settled.
func (o *Order) PaymentTotal() int64 {
	var total int64
	for _, p := range o.payments {
		if s := p.Status(); s == payment.Pending || s == payment.Settled {
			total += p.Amount().Amount()
		}
	}
	return total
}

func (o *Order) SettledTotal() int64 {
	var total int64
	for _, p := range o.payments {
		if p.IsSettled() {
			total += p.Amount().Amount()
		}
	}
	return total
}

// ensureShippingEditable allows shipping changes only in Delivery, where
// line items are frozen and the shipment does not exist yet. Fully digital
// orders never ship.
func (o *Order) ensureShippingEditable() error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if o.IsFullyDigital() {
		return errs.NewValueIsInvalidErrorWithCause("shipping", ErrDigitalOrder)
	}
	switch {
	case o.state < Delivery:
		return errs.NewValueIsInvalidErrorWithCause("state", ErrShippingNotYetOpen)
	case o.state > Delivery:
		return errs.NewValueIsInvalidErrorWithCause("state", ErrShippingIsArranged)
	}
	return nil
}
