package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// Variant is the purchasable catalog unit the order reads once, when a
// line item is added.
type Variant interface {
	ID() kernel.UUID
	SKU() string
	IsPurchasable() bool
	IsDigital() bool
	WeightGrams() int64
	PriceIn(currency kernel.Currency) (kernel.Money, error)
}

type Promotion interface {
	ID() kernel.UUID
	RequiresCode() bool
	Code() string
}

// PromotionCalculator proposes adjustments for a promotion. It receives a
// read-only view of the order and cannot mutate it; the order validates and
// attaches what is returned.
type PromotionCalculator interface {
	Calculate(promotion Promotion, input CalculationInput) ([]ProposedAdjustment, error)
}

// PromotionCalculatorFunc adapts a function to PromotionCalculator.
type PromotionCalculatorFunc func(promotion Promotion, input CalculationInput) ([]ProposedAdjustment, error)

func (f PromotionCalculatorFunc) Calculate(promotion Promotion, input CalculationInput) ([]ProposedAdjustment, error) {
	return f(promotion, input)
}

// CalculationInput is the order as a promotion calculator sees it.
type CalculationInput struct {
	OrderID       kernel.UUID
	Currency      kernel.Currency
	ItemTotal     int64
	ShipmentTotal int64
	Lines         []LineView
}

type LineView struct {
	LineItemID kernel.UUID
	VariantID  kernel.UUID
	Quantity   int
	UnitPrice  int64
	Subtotal   int64
}

// ProposedAdjustment is a signed amount, negative for discounts. A nil
// LineItemID targets the order itself.
type ProposedAdjustment struct {
	Amount      int64
	Description string
	LineItemID  *kernel.UUID
}

// ShippingMethod prices delivery of the order's physical goods.
type ShippingMethod interface {
	ID() kernel.UUID
	Cost(totalWeightGrams int64, itemTotal kernel.Money) (kernel.Money, error)
}

// NumberGenerator issues human-facing order numbers.
type NumberGenerator interface {
	Generate() (string, error)
}

// Option customizes an Order at construction or restore time.
type Option func(*Order)

// WithClock replaces time.Now for timestamps and events.
func WithClock(now func() time.Time) Option {
	return func(o *Order) {
		if now != nil {
			o.now = now
		}
	}
}
