// Package payment models a payment recorded against an order.
//
// An order creates payments through Order.AddPayment; from then on the
// payment follows its own settlement lifecycle driven by the payment
// gateway integration:
//
//	Pending ──┬──> Settled
//	          ├──> Failed
//	          └──> Voided
//
// The order only reads amounts and the settled flag from its payments.
package payment
