// Package order implements the Order aggregate root: the lifecycle of a
// shopping cart turning into a paid, fulfilled sale.
//
// The package includes:
//   - Order: owns line items, adjustments, shipments and payments, keeps
//     the four money totals consistent and buffers domain events
//   - State: the checkout state machine
//     Cart -> Address -> Delivery -> Payment -> Confirm -> Complete,
//     with Canceled reachable from every state except Complete
//   - LineItem: a variant snapshot with quantity and captured unit price
//   - Adjustment: a signed order-scoped or line-scoped money entry
//   - Contracts for the collaborators the order consults synchronously:
//     Variant, Promotion, PromotionCalculator, ShippingMethod, NumberGenerator
//
// Key business rules:
//   - grand total = item total + shipment total + adjustment total, fully
//     recomputed after every mutation that can change an addend
//   - a failed operation never mutates the aggregate
//   - events are buffered on the aggregate and drained with PullEvents by
//     the persistence layer after (or as part of) a successful commit
//
// Amounts are int64 minor units of the order currency.
package order
