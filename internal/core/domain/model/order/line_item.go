package order

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// VariantSnapshot is what a line item remembers about its variant.
type VariantSnapshot struct {
	VariantID       kernel.UUID
	SKU             string
	Digital         bool
	UnitWeightGrams int64
}

// LineItem is a quantity of one variant at the unit price captured when it
// was added. It owns its line-scoped adjustments.
type LineItem struct {
	id          kernel.UUID
	orderID     kernel.UUID
	variant     VariantSnapshot
	quantity    int
	unitPrice   int64
	adjustments []Adjustment

	guard guard.ConstructorGuard
}

func NewLineItem(id, orderID kernel.UUID, variant VariantSnapshot, quantity int, unitPrice int64) (*LineItem, error) {
	return RestoreLineItem(id, orderID, variant, quantity, unitPrice, nil)
}

// RestoreLineItem rebuilds a line item together with its adjustments, which
// must all be scoped to this line.
func RestoreLineItem(
	id kernel.UUID,
	orderID kernel.UUID,
	variant VariantSnapshot,
	quantity int,
	unitPrice int64,
	adjustments []Adjustment,
) (*LineItem, error) {
	var quantityErr, priceErr, weightErr, skuErr, adjustmentsErr error
	if quantity < 1 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if unitPrice < 0 {
		priceErr = errs.NewValueIsOutOfRangeError("unit price", unitPrice, 0, "unbounded")
	}
	if variant.UnitWeightGrams < 0 {
		weightErr = errs.NewValueIsOutOfRangeError("unit weight", variant.UnitWeightGrams, 0, "unbounded")
	}
	if strings.TrimSpace(variant.SKU) == "" {
		skuErr = errs.NewValueIsRequiredError("sku")
	}
	for _, a := range adjustments {
		if a.scope != ScopeLineItem || a.lineItemID == nil || !a.lineItemID.IsEqual(id) {
			adjustmentsErr = errs.NewValueIsInvalidErrorWithCause("line item adjustment",
				errors.New("adjustment does not belong to this line item"))
			break
		}
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		variant.VariantID.Validate(),
		skuErr,
		weightErr,
		quantityErr,
		priceErr,
		adjustmentsErr,
	); err != nil {
		return nil, err
	}

	return &LineItem{
		id:          id,
		orderID:     orderID,
		variant:     variant,
		quantity:    quantity,
		unitPrice:   unitPrice,
		adjustments: append([]Adjustment(nil), adjustments...),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (li *LineItem) Validate() error {
	if li == nil {
		return ErrLineItemIsNotConstructed
	}
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li *LineItem) ID() kernel.UUID           { return li.id }
func (li *LineItem) OrderID() kernel.UUID      { return li.orderID }
func (li *LineItem) VariantID() kernel.UUID    { return li.variant.VariantID }
func (li *LineItem) Variant() VariantSnapshot  { return li.variant }
func (li *LineItem) Quantity() int             { return li.quantity }
func (li *LineItem) UnitPrice() int64          { return li.unitPrice }
func (li *LineItem) IsDigital() bool           { return li.variant.Digital }
func (li *LineItem) Adjustments() []Adjustment { return append([]Adjustment(nil), li.adjustments...) }

// Subtotal is quantity times the captured unit price.
func (li *LineItem) Subtotal() int64 {
	return int64(li.quantity) * li.unitPrice
}

func (li *LineItem) AdjustmentTotal() int64 {
	var total int64
	for _, a := range li.adjustments {
		total += a.amount
	}
	return total
}

func (li *LineItem) Total() int64 {
	return li.Subtotal() + li.AdjustmentTotal()
}

func (li *LineItem) WeightGrams() int64 {
	return int64(li.quantity) * li.variant.UnitWeightGrams
}

func (li *LineItem) view() LineView {
	return LineView{
		LineItemID: li.id,
		VariantID:  li.variant.VariantID,
		Quantity:   li.quantity,
		UnitPrice:  li.unitPrice,
		Subtotal:   li.Subtotal(),
	}
}
