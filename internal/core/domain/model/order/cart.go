package order

import (
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// AddLineItem adds quantity of variant to the cart. A variant already in
// the cart has its quantity increased instead of getting a second line.
// The unit price is captured in the order currency on first add.
func (o *Order) AddLineItem(variant Variant, quantity int) (*LineItem, error) {
	if err := o.ensureCart(); err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, errs.NewValueIsRequiredError("variant")
	}
	if quantity < 1 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if !variant.IsPurchasable() {
		return nil, errs.NewValueIsInvalidErrorWithCause("variant", ErrVariantNotPurchasable)
	}

	if existing := o.findLineItemByVariant(variant.ID()); existing != nil {
		existing.quantity += quantity
		o.Recalculate()
		o.raise(&LineItemAdded{
			BaseEvent:  o.newBaseEvent(EventLineItemAdded),
			LineItemID: existing.id,
			VariantID:  existing.variant.VariantID,
			Quantity:   quantity,
		})
		return existing, nil
	}

	price, err := variant.PriceIn(o.currency)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("variant price", fmt.Errorf("%w: %w", ErrVariantPriceInvalid, err))
	}
	if price.Currency() != o.currency || price.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("variant price", ErrVariantPriceInvalid)
	}

	li, err := NewLineItem(kernel.NewUUID(), o.id, VariantSnapshot{
		VariantID:       variant.ID(),
		SKU:             variant.SKU(),
		Digital:         variant.IsDigital(),
		UnitWeightGrams: variant.WeightGrams(),
	}, quantity, price.Amount())
	if err != nil {
		return nil, err
	}

	o.lineItems = append(o.lineItems, li)
	o.Recalculate()
	o.raise(&LineItemAdded{
		BaseEvent:  o.newBaseEvent(EventLineItemAdded),
		LineItemID: li.id,
		VariantID:  li.variant.VariantID,
		Quantity:   quantity,
	})
	return li, nil
}

func (o *Order) RemoveLineItem(lineItemID kernel.UUID) error {
	if err := o.ensureCart(); err != nil {
		return err
	}
	i, li := o.findLineItem(lineItemID)
	if li == nil {
		return errs.NewObjectNotFoundError("line item", lineItemID)
	}

	o.lineItems = append(o.lineItems[:i:i], o.lineItems[i+1:]...)
	o.Recalculate()
	o.raise(&LineItemRemoved{
		BaseEvent:  o.newBaseEvent(EventLineItemRemoved),
		LineItemID: li.id,
		VariantID:  li.variant.VariantID,
		Quantity:   li.quantity,
	})
	return nil
}

// UpdateLineItemQuantity sets an absolute quantity. Setting the current
// quantity again is a no-op.
func (o *Order) UpdateLineItemQuantity(lineItemID kernel.UUID, quantity int) error {
	if err := o.ensureCart(); err != nil {
		return err
	}
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	_, li := o.findLineItem(lineItemID)
	if li == nil {
		return errs.NewObjectNotFoundError("line item", lineItemID)
	}
	if li.quantity == quantity {
		return nil
	}

	previous := li.quantity
	li.quantity = quantity
	o.Recalculate()
	o.raise(&LineItemQuantityChanged{
		BaseEvent:        o.newBaseEvent(EventLineItemQuantityChanged),
		LineItemID:       li.id,
		VariantID:        li.variant.VariantID,
		PreviousQuantity: previous,
		Quantity:         quantity,
	})
	return nil
}

func (o *Order) ensureCart() error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if o.state != Cart {
		return errs.NewValueIsInvalidErrorWithCause("state", ErrOrderIsNotInCart)
	}
	return nil
}
