package order

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/shipment"
	"ordering/internal/pkg/errs"
)

// Next moves the order one step forward if the current step's guard holds.
//
//	Cart     -> Address   needs at least one line item
//	Address  -> Delivery  needs both addresses unless fully digital
//	Delivery -> Payment   needs a shipping method unless fully digital;
//	                      creates the shipment
//	Payment  -> Confirm   pending and settled payments cover the grand total
//	Confirm  -> Complete  settled payments cover the grand total
//
// No step is taken while the grand total is negative. Reaching Complete
// raises Completed, FinalizeInventory and, with a promotion applied,
// PromotionUsed. Every other step raises StateChanged.
func (o *Order) Next() error {
	if o.grandTotal < 0 && !o.state.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("grand total", ErrNegativeTotal)
	}

	var pending *shipment.Shipment

	switch o.state {
	case Cart:
		if len(o.lineItems) == 0 {
			return errs.NewValueIsInvalidErrorWithCause("state", ErrEmptyCart)
		}
	case Address:
		if !o.IsFullyDigital() {
			var shippingErr, billingErr error
			if o.shippingAddressID == nil {
				shippingErr = ErrShippingAddressRequired
			}
			if o.billingAddressID == nil {
				billingErr = ErrBillingAddressRequired
			}
			if err := errors.Join(shippingErr, billingErr); err != nil {
				return errs.NewValueIsInvalidErrorWithCause("state", err)
			}
		}
	case Delivery:
		if !o.IsFullyDigital() {
			if o.shippingMethodID == nil {
				return errs.NewValueIsInvalidErrorWithCause("state", ErrShippingMethodRequired)
			}
			cost, err := o.money(o.shipmentTotal)
			if err != nil {
				return err
			}
			pending, err = shipment.NewShipment(kernel.NewUUID(), o.id, *o.shippingMethodID, o.fulfillmentLocationID, cost)
			if err != nil {
				return err
			}
		}
	case Payment:
		if o.PaymentTotal() < o.grandTotal {
			return errs.NewValueIsInvalidErrorWithCause("state", ErrInsufficientPayment)
		}
	case Confirm:
		if o.SettledTotal() < o.grandTotal {
			return errs.NewValueIsInvalidErrorWithCause("state", ErrPaymentNotSettled)
		}
	}

	next, err := o.state.Next()
	if err != nil {
		return err
	}

	if pending != nil {
		o.shipments = append(o.shipments, pending)
	}
	previous := o.state
	o.state = next

	if next != Complete {
		o.raise(&StateChanged{
			BaseEvent:     o.newBaseEvent(EventStateChanged),
			PreviousState: previous,
			NewState:      next,
		})
		return nil
	}

	completedAt := o.now().UTC()
	o.completedAt = &completedAt
	o.raise(&Completed{
		BaseEvent:  o.newBaseEvent(EventCompleted),
		Number:     o.number,
		GrandTotal: o.grandTotal,
	})
	o.raise(&FinalizeInventory{
		BaseEvent:       o.newBaseEvent(EventFinalizeInventory),
		StockLocationID: o.fulfillmentLocationID,
		Lines:           o.inventoryLines(),
	})
	if o.promotionID != nil {
		o.raise(&PromotionUsed{
			BaseEvent:   o.newBaseEvent(EventPromotionUsed),
			PromotionID: *o.promotionID,
			CustomerID:  o.customerID,
		})
	}
	return nil
}

// Cancel moves the order to Canceled and asks inventory to release its
// reservations. A completed order cannot be canceled; canceling twice is
// a no-op.
func (o *Order) Cancel() error {
	if o.state == Canceled {
		return nil
	}
	next, err := o.state.Cancel()
	if err != nil {
		return err
	}

	previous := o.state
	canceledAt := o.now().UTC()
	o.state = next
	o.canceledAt = &canceledAt
	o.raise(&OrderCanceled{
		BaseEvent:     o.newBaseEvent(EventCanceled),
		PreviousState: previous,
	})
	o.raise(&ReleaseInventory{
		BaseEvent:       o.newBaseEvent(EventReleaseInventory),
		StockLocationID: o.fulfillmentLocationID,
		Lines:           o.inventoryLines(),
	})
	return nil
}
