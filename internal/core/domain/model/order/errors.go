package order

import "errors"

// Business-rule causes. Operations wrap them in the errs taxonomy, so both
// errors.Is(err, ErrEmptyCart) and errs.CodeOf(err) work on returned errors.
var (
	ErrOrderIsNotConstructed    = errors.New("Order must be created via NewOrder constructor")
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

	ErrEmptyCart               = errors.New("cart has no line items")
	ErrShippingAddressRequired = errors.New("shipping address is not set")
	ErrBillingAddressRequired  = errors.New("billing address is not set")
	ErrShippingMethodRequired  = errors.New("shipping method is not selected")
	ErrInsufficientPayment     = errors.New("payments do not cover the grand total")
	ErrPaymentNotSettled       = errors.New("settled payments do not cover the grand total")
	ErrInvalidStateTransition  = errors.New("state has no further transition")
	ErrNegativeTotal           = errors.New("grand total is negative")

	ErrOrderIsFinalized      = errors.New("order is complete or canceled")
	ErrOrderIsNotInCart      = errors.New("line items can only change while the order is in the cart")
	ErrShippingIsArranged    = errors.New("shipping can no longer change once the order reached payment")
	ErrShippingNotYetOpen    = errors.New("shipping can only be chosen once the order reached delivery")
	ErrOrderIsCompleted      = errors.New("completed order cannot be canceled")
	ErrDigitalOrder          = errors.New("fully digital order needs no shipping")
	ErrVariantNotPurchasable = errors.New("variant is not purchasable")
	ErrVariantPriceInvalid   = errors.New("variant has no valid price in the order currency")
	ErrShippingCostInvalid   = errors.New("shipping method returned an invalid cost")

	ErrPromotionAlreadyApplied = errors.New("a different promotion is already applied")
	ErrPromotionCodeMismatch   = errors.New("promotion code does not match")
	ErrPromotionCalculation    = errors.New("promotion calculation failed")
)
