package services

import (
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FlatOrderDiscount takes a fixed amount off the order, never more than the
// item total.
//
// Example usage:
//
//	calc, _ := NewFlatOrderDiscount(500)
//	err := o.ApplyPromotion(promotion, code, calc)
type FlatOrderDiscount struct {
	amount int64
}

// NewFlatOrderDiscount builds a calculator for amount minor units of the
// order currency.
func NewFlatOrderDiscount(amount int64) (FlatOrderDiscount, error) {
	if amount <= 0 {
		return FlatOrderDiscount{}, errs.NewValueIsOutOfRangeError("discount amount", amount, 1, "unbounded")
	}
	return FlatOrderDiscount{amount: amount}, nil
}

func (c FlatOrderDiscount) Calculate(_ order.Promotion, input order.CalculationInput) ([]order.ProposedAdjustment, error) {
	discount := min(c.amount, input.ItemTotal)
	if discount <= 0 {
		return nil, nil
	}
	return []order.ProposedAdjustment{{
		Amount:      -discount,
		Description: fmt.Sprintf("%s off", formatMinor(discount, input.Currency)),
	}}, nil
}

// PercentageOrderDiscount takes a percentage of the item total off the
// order.
type PercentageOrderDiscount struct {
	percent decimal.Decimal
}

// NewPercentageOrderDiscount accepts percentages in (0, 100].
func NewPercentageOrderDiscount(percent decimal.Decimal) (PercentageOrderDiscount, error) {
	if err := validatePercent(percent); err != nil {
		return PercentageOrderDiscount{}, err
	}
	return PercentageOrderDiscount{percent: percent}, nil
}

func (c PercentageOrderDiscount) Calculate(_ order.Promotion, input order.CalculationInput) ([]order.ProposedAdjustment, error) {
	discount := percentOf(input.ItemTotal, c.percent)
	if discount <= 0 {
		return nil, nil
	}
	return []order.ProposedAdjustment{{
		Amount:      -discount,
		Description: fmt.Sprintf("%s%% off order", c.percent.String()),
	}}, nil
}

// PercentageLineItemDiscount takes a percentage off each eligible line.
// With no variants configured every line is eligible.
type PercentageLineItemDiscount struct {
	percent  decimal.Decimal
	variants map[kernel.UUID]struct{}
}

func NewPercentageLineItemDiscount(percent decimal.Decimal, variantIDs ...kernel.UUID) (PercentageLineItemDiscount, error) {
	if err := validatePercent(percent); err != nil {
		return PercentageLineItemDiscount{}, err
	}
	variants := make(map[kernel.UUID]struct{}, len(variantIDs))
	for _, id := range variantIDs {
		if err := id.Validate(); err != nil {
			return PercentageLineItemDiscount{}, err
		}
		variants[id] = struct{}{}
	}
	return PercentageLineItemDiscount{percent: percent, variants: variants}, nil
}

func (c PercentageLineItemDiscount) Calculate(_ order.Promotion, input order.CalculationInput) ([]order.ProposedAdjustment, error) {
	var proposed []order.ProposedAdjustment
	for _, line := range input.Lines {
		if len(c.variants) > 0 {
			if _, ok := c.variants[line.VariantID]; !ok {
				continue
			}
		}
		discount := percentOf(line.Subtotal, c.percent)
		if discount <= 0 {
			continue
		}
		lineID := line.LineItemID
		proposed = append(proposed, order.ProposedAdjustment{
			Amount:      -discount,
			Description: fmt.Sprintf("%s%% off item", c.percent.String()),
			LineItemID:  &lineID,
		})
	}
	return proposed, nil
}

// percentOf rounds half away from zero and never exceeds amount.
func percentOf(amount int64, percent decimal.Decimal) int64 {
	if amount <= 0 {
		return 0
	}
	v := decimal.NewFromInt(amount).Mul(percent).Div(hundred).Round(0).IntPart()
	return min(v, amount)
}

func validatePercent(percent decimal.Decimal) error {
	if !percent.IsPositive() || percent.GreaterThan(hundred) {
		return errs.NewValueIsOutOfRangeError("percent", percent.String(), "0 (exclusive)", 100)
	}
	return nil
}

func formatMinor(amount int64, currency kernel.Currency) string {
	m, err := kernel.NewMoney(amount, currency)
	if err != nil {
		return fmt.Sprintf("%d", amount)
	}
	return m.String()
}
