package kernel

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch is the cause reported when amounts in different currencies meet.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is a signed amount in integer minor units of one currency.
// All order arithmetic stays in int64; decimal is used only at the edges
// (parsing catalog prices, formatting, percentage math).
type Money struct {
	amount   int64
	currency Currency
}

// NewMoney builds an amount from minor units.
func NewMoney(amount int64, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: currency}, nil
}

// MoneyFromDecimal converts a major-unit decimal ("10.00") to minor units,
// rounding half away from zero at the currency's exponent.
func MoneyFromDecimal(value decimal.Decimal, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	minor := value.Shift(currency.Exponent()).Round(0)
	if minor.Abs().GreaterThan(decimal.NewFromInt(1<<62)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s does not fit minor units", value))
	}
	return Money{amount: minor.IntPart(), currency: currency}, nil
}

// Zero returns a zero amount in currency.
func Zero(currency Currency) Money {
	return Money{currency: currency}
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) IsZero() bool {
	return m.amount == 0
}

func (m Money) IsNegative() bool {
	return m.amount < 0
}

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency))
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

func (m Money) Multiply(factor int64) Money {
	return Money{amount: m.amount * factor, currency: m.currency}
}

func (m Money) Negate() Money {
	return Money{amount: -m.amount, currency: m.currency}
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -m.currency.Exponent())
}

// String formats as "12.50 USD".
func (m Money) String() string {
	return m.Decimal().StringFixed(m.currency.Exponent()) + " " + m.currency.String()
}
