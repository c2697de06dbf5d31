package catalog

import (
	"context"
	"os"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Catalog implements the variant, promotion and shipping method
// repositories over an in-memory snapshot of the catalog file.
type Catalog struct {
	variants         map[kernel.UUID]*Variant
	promotions       map[kernel.UUID]*Promotion
	promotionsByCode map[string]*Promotion
	shippingMethods  map[kernel.UUID]*services.WeightBasedShippingMethod
}

var (
	_ ports.VariantRepository        = (*Catalog)(nil)
	_ ports.PromotionRepository      = (*Catalog)(nil)
	_ ports.ShippingMethodRepository = (*Catalog)(nil)
)

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}
	return Parse(data)
}

// Parse builds a catalog from YAML. Any invalid entry fails the whole file.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}

	c := &Catalog{
		variants:         make(map[kernel.UUID]*Variant, len(f.Variants)),
		promotions:       make(map[kernel.UUID]*Promotion, len(f.Promotions)),
		promotionsByCode: make(map[string]*Promotion),
		shippingMethods:  make(map[kernel.UUID]*services.WeightBasedShippingMethod, len(f.ShippingMethods)),
	}

	for i, entry := range f.Variants {
		v, err := parseVariant(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "variant #%d", i)
		}
		if _, dup := c.variants[v.id]; dup {
			return nil, errs.NewConflictErrorWithCause("variant id", errors.Errorf("%s is listed twice", v.id))
		}
		c.variants[v.id] = v
	}

	for i, entry := range f.Promotions {
		p, err := parsePromotion(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "promotion #%d", i)
		}
		if _, dup := c.promotions[p.id]; dup {
			return nil, errs.NewConflictErrorWithCause("promotion id", errors.Errorf("%s is listed twice", p.id))
		}
		c.promotions[p.id] = p
		if p.RequiresCode() {
			key := normalizeCode(p.code)
			if _, dup := c.promotionsByCode[key]; dup {
				return nil, errs.NewConflictErrorWithCause("promotion code", errors.Errorf("%s is listed twice", p.code))
			}
			c.promotionsByCode[key] = p
		}
	}

	for i, entry := range f.ShippingMethods {
		m, err := parseShippingMethod(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "shipping method #%d", i)
		}
		if _, dup := c.shippingMethods[m.ID()]; dup {
			return nil, errs.NewConflictErrorWithCause("shipping method id", errors.Errorf("%s is listed twice", m.ID()))
		}
		c.shippingMethods[m.ID()] = m
	}

	return c, nil
}

func (c *Catalog) GetVariant(_ context.Context, id kernel.UUID) (order.Variant, error) {
	v, ok := c.variants[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("variant", id.String())
	}
	return v, nil
}

func (c *Catalog) GetPromotion(_ context.Context, id kernel.UUID) (ports.Promotion, error) {
	p, ok := c.promotions[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("promotion", id.String())
	}
	return p, nil
}

// GetPromotionByCode matches codes case-insensitively.
func (c *Catalog) GetPromotionByCode(_ context.Context, code string) (ports.Promotion, error) {
	p, ok := c.promotionsByCode[normalizeCode(code)]
	if !ok {
		return nil, errs.NewObjectNotFoundError("promotion", code)
	}
	return p, nil
}

func (c *Catalog) GetShippingMethod(_ context.Context, id kernel.UUID) (order.ShippingMethod, error) {
	m, ok := c.shippingMethods[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipping method", id.String())
	}
	return m, nil
}

func (c *Catalog) Size() (variants, promotions, shippingMethods int) {
	return len(c.variants), len(c.promotions), len(c.shippingMethods)
}

func parseVariant(entry variantEntry) (*Variant, error) {
	id, err := kernel.ParseUUID(entry.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(entry.SKU) == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}
	if entry.WeightGrams < 0 {
		return nil, errs.NewValueIsOutOfRangeError("weight_grams", entry.WeightGrams, 0, "unbounded")
	}

	prices := make(map[kernel.Currency]kernel.Money, len(entry.Prices))
	for code, raw := range entry.Prices {
		currency, err := kernel.NewCurrency(code)
		if err != nil {
			return nil, err
		}
		price, err := parseMoney(raw, currency)
		if err != nil {
			return nil, errors.Wrapf(err, "price %s", currency)
		}
		if price.IsNegative() {
			return nil, errs.NewValueIsOutOfRangeError("price", raw, 0, "unbounded")
		}
		prices[currency] = price
	}

	purchasable := true
	if entry.Purchasable != nil {
		purchasable = *entry.Purchasable
	}

	return &Variant{
		id:          id,
		sku:         strings.TrimSpace(entry.SKU),
		purchasable: purchasable,
		digital:     entry.Digital,
		weightGrams: entry.WeightGrams,
		prices:      prices,
	}, nil
}

func parsePromotion(entry promotionEntry) (*Promotion, error) {
	id, err := kernel.ParseUUID(entry.ID)
	if err != nil {
		return nil, err
	}

	var calculator order.PromotionCalculator
	switch entry.Kind {
	case kindFlatOrder:
		calculator, err = services.NewFlatOrderDiscount(entry.Amount)
	case kindPercentageOrder:
		var percent decimal.Decimal
		if percent, err = decimal.NewFromString(entry.Percent); err == nil {
			calculator, err = services.NewPercentageOrderDiscount(percent)
		}
	case kindPercentageLineItem:
		var percent decimal.Decimal
		if percent, err = decimal.NewFromString(entry.Percent); err != nil {
			break
		}
		variantIDs := make([]kernel.UUID, 0, len(entry.VariantIDs))
		for _, raw := range entry.VariantIDs {
			variantID, parseErr := kernel.ParseUUID(raw)
			if parseErr != nil {
				return nil, parseErr
			}
			variantIDs = append(variantIDs, variantID)
		}
		calculator, err = services.NewPercentageLineItemDiscount(percent, variantIDs...)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("promotion kind", errors.Errorf("unknown kind %q", entry.Kind))
	}
	if err != nil {
		return nil, err
	}

	return &Promotion{
		id:         id,
		name:       strings.TrimSpace(entry.Name),
		code:       strings.TrimSpace(entry.Code),
		calculator: calculator,
	}, nil
}

func parseShippingMethod(entry shippingMethodEntry) (*services.WeightBasedShippingMethod, error) {
	id, err := kernel.ParseUUID(entry.ID)
	if err != nil {
		return nil, err
	}
	currency, err := kernel.NewCurrency(entry.Currency)
	if err != nil {
		return nil, err
	}
	base, err := parseMoney(entry.Base, currency)
	if err != nil {
		return nil, errors.Wrap(err, "base")
	}
	perKg, err := parseMoney(entry.PerKg, currency)
	if err != nil {
		return nil, errors.Wrap(err, "per_kg")
	}

	var freeAbove *kernel.Money
	if entry.FreeAbove != "" {
		threshold, thresholdErr := parseMoney(entry.FreeAbove, currency)
		if thresholdErr != nil {
			return nil, errors.Wrap(thresholdErr, "free_above")
		}
		freeAbove = &threshold
	}

	return services.NewWeightBasedShippingMethod(id, entry.Name, base, perKg, freeAbove)
}

// parseMoney reads a major-unit decimal; an empty string is zero.
func parseMoney(raw string, currency kernel.Currency) (kernel.Money, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return kernel.Zero(currency), nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return kernel.MoneyFromDecimal(value, currency)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
