package catalog

import (
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Variant is a purchasable product variant with one price per currency.
type Variant struct {
	id          kernel.UUID
	sku         string
	purchasable bool
	digital     bool
	weightGrams int64
	prices      map[kernel.Currency]kernel.Money
}

func (v *Variant) ID() kernel.UUID     { return v.id }
func (v *Variant) SKU() string         { return v.sku }
func (v *Variant) IsPurchasable() bool { return v.purchasable }
func (v *Variant) IsDigital() bool     { return v.digital }
func (v *Variant) WeightGrams() int64  { return v.weightGrams }

// PriceIn returns ObjectNotFoundError when the variant has no price in
// currency.
func (v *Variant) PriceIn(currency kernel.Currency) (kernel.Money, error) {
	price, ok := v.prices[currency]
	if !ok {
		return kernel.Money{}, errs.NewObjectNotFoundError("variant price", fmt.Sprintf("%s/%s", v.sku, currency))
	}
	return price, nil
}
