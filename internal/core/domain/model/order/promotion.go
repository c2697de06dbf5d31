package order

import (
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// ApplyPromotion replaces the order's adjustments with the ones the
// calculator proposes for promotion. Only one promotion may be active;
// applying the active one again recalculates it.
//
// Every existing adjustment is discarded first, including tax and fee
// entries added with AddAdjustment.
func (o *Order) ApplyPromotion(promotion Promotion, code string, calculator PromotionCalculator) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if promotion == nil {
		return errs.NewValueIsRequiredError("promotion")
	}
	if calculator == nil {
		return errs.NewValueIsRequiredError("promotion calculator")
	}
	if o.promotionID != nil && !o.promotionID.IsEqual(promotion.ID()) {
		return errs.NewConflictErrorWithCause("promotion", ErrPromotionAlreadyApplied)
	}
	code = strings.TrimSpace(code)
	if promotion.RequiresCode() && !strings.EqualFold(strings.TrimSpace(promotion.Code()), code) {
		return errs.NewValueIsInvalidErrorWithCause("promotion code", ErrPromotionCodeMismatch)
	}

	proposed, err := calculator.Calculate(promotion, o.calculationInput())
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("promotion", fmt.Errorf("%w: %w", ErrPromotionCalculation, err))
	}
	for _, p := range proposed {
		if p.LineItemID == nil {
			continue
		}
		if _, li := o.findLineItem(*p.LineItemID); li == nil {
			return errs.NewObjectNotFoundError("line item", *p.LineItemID)
		}
	}

	promotionID := promotion.ID()
	o.clearAdjustments()
	for _, p := range proposed {
		o.attach(newAdjustment(p.Amount, p.Description, p.LineItemID, &promotionID))
	}
	o.promotionID = &promotionID
	o.promoCode = code
	o.Recalculate()

	var sum int64
	for _, a := range o.AllAdjustments() {
		sum += a.amount
	}
	o.raise(&PromotionApplied{
		BaseEvent:      o.newBaseEvent(EventPromotionApplied),
		PromotionID:    promotionID,
		Code:           code,
		DiscountAmount: max(0, -sum),
	})
	return nil
}

// RemovePromotion clears the active promotion and every adjustment. It is
// a no-op when no promotion is applied.
func (o *Order) RemovePromotion() error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if o.promotionID == nil {
		return nil
	}

	promotionID := *o.promotionID
	o.clearAdjustments()
	o.promotionID = nil
	o.promoCode = ""
	o.Recalculate()
	o.raise(&PromotionRemoved{
		BaseEvent:   o.newBaseEvent(EventPromotionRemoved),
		PromotionID: promotionID,
	})
	return nil
}

// AddAdjustment records a non-promotion amount such as tax or a fee, on the
// order when lineItemID is nil or on that line item otherwise.
func (o *Order) AddAdjustment(amount int64, description string, lineItemID *kernel.UUID) (Adjustment, error) {
	if err := o.ensureOpen(); err != nil {
		return Adjustment{}, err
	}
	if amount == 0 {
		return Adjustment{}, errs.NewValueIsInvalidError("adjustment amount")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return Adjustment{}, errs.NewValueIsRequiredError("adjustment description")
	}
	if lineItemID != nil {
		if _, li := o.findLineItem(*lineItemID); li == nil {
			return Adjustment{}, errs.NewObjectNotFoundError("line item", *lineItemID)
		}
	}

	a := newAdjustment(amount, description, lineItemID, nil)
	o.attach(a)
	o.Recalculate()
	return a, nil
}

func (o *Order) calculationInput() CalculationInput {
	lines := make([]LineView, 0, len(o.lineItems))
	for _, li := range o.lineItems {
		lines = append(lines, li.view())
	}
	return CalculationInput{
		OrderID:       o.id,
		Currency:      o.currency,
		ItemTotal:     o.itemTotal,
		ShipmentTotal: o.shipmentTotal,
		Lines:         lines,
	}
}

func (o *Order) clearAdjustments() {
	o.adjustments = nil
	for _, li := range o.lineItems {
		li.adjustments = nil
	}
}

// attach places a on its owner. The owner must exist.
func (o *Order) attach(a Adjustment) {
	if a.scope == ScopeLineItem {
		_, li := o.findLineItem(*a.lineItemID)
		li.adjustments = append(li.adjustments, a)
		return
	}
	o.adjustments = append(o.adjustments, a)
}
