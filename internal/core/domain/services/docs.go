// Package services provides the concrete collaborators the Order aggregate
// consults through its contracts. None of them mutates an order: they read
// a value snapshot and return amounts.
//
// The package includes:
//   - FlatOrderDiscount, PercentageOrderDiscount, PercentageLineItemDiscount:
//     promotion calculators proposing order or line adjustments
//   - WeightBasedShippingMethod: shipping cost from parcel weight with an
//     optional free-shipping threshold
//   - OrderNumberGenerator: human-facing order numbers
package services
