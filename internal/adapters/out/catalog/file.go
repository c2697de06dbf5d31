// Package catalog serves variants, promotions and shipping methods from a
// YAML file loaded once at startup. The catalog is read-only; its
// lookups are safe for concurrent use.
//
// File layout:
//
//	variants:
//	  - id: 0b6c...
//	    sku: TEE-RED-M
//	    weight_grams: 250
//	    prices: {USD: "19.99", EUR: "18.50"}
//	promotions:
//	  - id: 5d1e...
//	    code: SPRING
//	    kind: percentage_order
//	    percent: "10"
//	shipping_methods:
//	  - id: 9a7f...
//	    name: Standard
//	    currency: USD
//	    base: "4.99"
//	    per_kg: "1.50"
//	    free_above: "75.00"
package catalog

// file mirrors the YAML document.
type file struct {
	Variants        []variantEntry        `yaml:"variants"`
	Promotions      []promotionEntry      `yaml:"promotions"`
	ShippingMethods []shippingMethodEntry `yaml:"shipping_methods"`
}

type variantEntry struct {
	ID          string            `yaml:"id"`
	SKU         string            `yaml:"sku"`
	Purchasable *bool             `yaml:"purchasable"`
	Digital     bool              `yaml:"digital"`
	WeightGrams int64             `yaml:"weight_grams"`
	Prices      map[string]string `yaml:"prices"`
}

type promotionEntry struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Code       string   `yaml:"code"`
	Kind       string   `yaml:"kind"`
	Amount     int64    `yaml:"amount"`
	Percent    string   `yaml:"percent"`
	VariantIDs []string `yaml:"variant_ids"`
}

type shippingMethodEntry struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Currency  string `yaml:"currency"`
	Base      string `yaml:"base"`
	PerKg     string `yaml:"per_kg"`
	FreeAbove string `yaml:"free_above"`
}
