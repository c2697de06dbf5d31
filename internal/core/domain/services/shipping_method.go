package services

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

const gramsPerKilogram = 1000

// WeightBasedShippingMethod prices a parcel as
//
//	base + ceil(weight in kg) * perKg
//
// and ships for free once the item total reaches freeAbove.
type WeightBasedShippingMethod struct {
	id        kernel.UUID
	name      string
	base      kernel.Money
	perKg     kernel.Money
	freeAbove *kernel.Money
}

// NewWeightBasedShippingMethod validates that every amount shares one
// currency and is not negative. freeAbove is optional.
func NewWeightBasedShippingMethod(
	id kernel.UUID,
	name string,
	base kernel.Money,
	perKg kernel.Money,
	freeAbove *kernel.Money,
) (*WeightBasedShippingMethod, error) {
	var nameErr, baseErr, perKgErr, freeErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("shipping method name")
	}
	if base.IsNegative() {
		baseErr = errs.NewValueIsOutOfRangeError("base cost", base.Amount(), 0, "unbounded")
	}
	if perKg.IsNegative() {
		perKgErr = errs.NewValueIsOutOfRangeError("per kg cost", perKg.Amount(), 0, "unbounded")
	} else if perKg.Currency() != base.Currency() {
		perKgErr = errs.NewValueIsInvalidErrorWithCause("per kg cost", kernel.ErrCurrencyMismatch)
	}
	if freeAbove != nil && freeAbove.Currency() != base.Currency() {
		freeErr = errs.NewValueIsInvalidErrorWithCause("free shipping threshold", kernel.ErrCurrencyMismatch)
	}

	if err := errors.Join(id.Validate(), nameErr, base.Currency().Validate(), baseErr, perKgErr, freeErr); err != nil {
		return nil, err
	}

	return &WeightBasedShippingMethod{
		id:        id,
		name:      strings.TrimSpace(name),
		base:      base,
		perKg:     perKg,
		freeAbove: freeAbove,
	}, nil
}

func (m *WeightBasedShippingMethod) ID() kernel.UUID           { return m.id }
func (m *WeightBasedShippingMethod) Name() string              { return m.name }
func (m *WeightBasedShippingMethod) Currency() kernel.Currency { return m.base.Currency() }

// Cost returns the shipping price for a parcel. The item total must be in
// the method's currency.
func (m *WeightBasedShippingMethod) Cost(totalWeightGrams int64, itemTotal kernel.Money) (kernel.Money, error) {
	if itemTotal.Currency() != m.base.Currency() {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("item total", kernel.ErrCurrencyMismatch)
	}
	if totalWeightGrams < 0 {
		return kernel.Money{}, errs.NewValueIsOutOfRangeError("weight", totalWeightGrams, 0, "unbounded")
	}
	if m.freeAbove != nil && itemTotal.Amount() >= m.freeAbove.Amount() {
		return kernel.Zero(m.base.Currency()), nil
	}

	kilograms := (totalWeightGrams + gramsPerKilogram - 1) / gramsPerKilogram
	return m.base.Add(m.perKg.Multiply(kilograms))
}
