package kernel

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Currency is an upper-case ISO-4217 alphabetic code.
type Currency string

// zeroDecimalCurrencies have no minor unit; every other currency uses two.
var zeroDecimalCurrencies = map[Currency]struct{}{
	"JPY": {}, "KRW": {}, "VND": {}, "CLP": {}, "ISK": {}, "HUF": {},
}

// NewCurrency normalizes and validates a currency code.
func NewCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Currency) Validate() error {
	if c == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if len(c) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a 3-letter code", string(c)))
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an upper-case code", string(c)))
		}
	}
	return nil
}

// Exponent is the number of minor-unit digits.
func (c Currency) Exponent() int32 {
	if _, ok := zeroDecimalCurrencies[c]; ok {
		return 0
	}
	return 2
}

func (c Currency) String() string {
	return string(c)
}
