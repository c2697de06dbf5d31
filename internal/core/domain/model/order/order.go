package order

import (
	"errors"
	"maps"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/model/shipment"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// Order is the aggregate root. Every method either fully applies or returns
// an error and leaves the order untouched.
type Order struct {
	id                    kernel.UUID
	storeID               kernel.UUID
	customerID            *kernel.UUID
	promotionID           *kernel.UUID
	shippingMethodID      *kernel.UUID
	fulfillmentLocationID *kernel.UUID
	shippingAddressID     *kernel.UUID
	billingAddressID      *kernel.UUID

	number       string
	state        State
	currency     kernel.Currency
	promoCode    string
	email        string
	instructions string

	itemTotal       int64
	shipmentTotal   int64
	adjustmentTotal int64
	grandTotal      int64

	createdAt   time.Time
	completedAt *time.Time
	canceledAt  *time.Time

	publicMetadata  map[string]string
	privateMetadata map[string]string

	lineItems   []*LineItem
	adjustments []Adjustment
	shipments   []*shipment.Shipment
	payments    []*payment.Payment

	events  []Event
	version int
	now     func() time.Time

	guard guard.ConstructorGuard
}

// NewOrder opens an empty cart and raises Created.
func NewOrder(
	id kernel.UUID,
	storeID kernel.UUID,
	currency kernel.Currency,
	numbers NumberGenerator,
	opts ...Option,
) (*Order, error) {
	var numbersErr error
	if numbers == nil {
		numbersErr = errs.NewValueIsRequiredError("number generator")
	}
	if err := errors.Join(id.Validate(), storeID.Validate(), currency.Validate(), numbersErr); err != nil {
		return nil, err
	}

	number, err := numbers.Generate()
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("number", err)
	}
	if strings.TrimSpace(number) == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	o := &Order{
		id:       id,
		storeID:  storeID,
		number:   number,
		state:    Cart,
		currency: currency,
		now:      time.Now,
		guard:    guard.NewConstructorGuard(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.createdAt = o.now().UTC()

	o.raise(&Created{
		BaseEvent: o.newBaseEvent(EventCreated),
		StoreID:   storeID,
		Number:    number,
		Currency:  currency,
	})
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID                     { return o.id }
func (o *Order) StoreID() kernel.UUID                { return o.storeID }
func (o *Order) CustomerID() *kernel.UUID            { return o.customerID }
func (o *Order) PromotionID() *kernel.UUID           { return o.promotionID }
func (o *Order) ShippingMethodID() *kernel.UUID      { return o.shippingMethodID }
func (o *Order) FulfillmentLocationID() *kernel.UUID { return o.fulfillmentLocationID }
func (o *Order) ShippingAddressID() *kernel.UUID     { return o.shippingAddressID }
func (o *Order) BillingAddressID() *kernel.UUID      { return o.billingAddressID }
func (o *Order) Number() string                      { return o.number }
func (o *Order) State() State                        { return o.state }
func (o *Order) Currency() kernel.Currency           { return o.currency }
func (o *Order) PromoCode() string                   { return o.promoCode }
func (o *Order) Email() string                       { return o.email }
func (o *Order) Instructions() string                { return o.instructions }
func (o *Order) ItemTotal() int64                    { return o.itemTotal }
func (o *Order) ShipmentTotal() int64                { return o.shipmentTotal }
func (o *Order) AdjustmentTotal() int64              { return o.adjustmentTotal }
func (o *Order) GrandTotal() int64                   { return o.grandTotal }
func (o *Order) CreatedAt() time.Time                { return o.createdAt }
func (o *Order) CompletedAt() *time.Time             { return o.completedAt }
func (o *Order) CanceledAt() *time.Time              { return o.canceledAt }
func (o *Order) Version() int                        { return o.version }

func (o *Order) PublicMetadata() map[string]string  { return maps.Clone(o.publicMetadata) }
func (o *Order) PrivateMetadata() map[string]string { return maps.Clone(o.privateMetadata) }

func (o *Order) LineItems() []*LineItem {
	return append([]*LineItem(nil), o.lineItems...)
}

// Adjustments returns order-scoped adjustments only.
func (o *Order) Adjustments() []Adjustment {
	return append([]Adjustment(nil), o.adjustments...)
}

// AllAdjustments returns order-scoped adjustments followed by every line
// item's adjustments.
func (o *Order) AllAdjustments() []Adjustment {
	all := append([]Adjustment(nil), o.adjustments...)
	for _, li := range o.lineItems {
		all = append(all, li.adjustments...)
	}
	return all
}

func (o *Order) Shipments() []*shipment.Shipment {
	return append([]*shipment.Shipment(nil), o.shipments...)
}

func (o *Order) Payments() []*payment.Payment {
	return append([]*payment.Payment(nil), o.payments...)
}

// LineItem looks a line item up by id.
func (o *Order) LineItem(id kernel.UUID) (*LineItem, error) {
	if _, li := o.findLineItem(id); li != nil {
		return li, nil
	}
	return nil, errs.NewObjectNotFoundError("line item", id)
}

// Payment looks an owned payment up by id.
func (o *Order) Payment(id kernel.UUID) (*payment.Payment, error) {
	for _, p := range o.payments {
		if p.ID().IsEqual(id) {
			return p, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("payment", id)
}

// IsFullyDigital is true when the order has items and none needs shipping.
func (o *Order) IsFullyDigital() bool {
	if len(o.lineItems) == 0 {
		return false
	}
	for _, li := range o.lineItems {
		if !li.IsDigital() {
			return false
		}
	}
	return true
}

// TotalWeightGrams sums the shipping weight of every line item.
func (o *Order) TotalWeightGrams() int64 {
	var total int64
	for _, li := range o.lineItems {
		total += li.WeightGrams()
	}
	return total
}

// Recalculate recomputes item, adjustment and grand totals from the owned
// collections. Shipment total is an input set by SetShippingMethod.
func (o *Order) Recalculate() {
	var items, adjustments int64
	for _, li := range o.lineItems {
		items += li.Subtotal()
		adjustments += li.AdjustmentTotal()
	}
	for _, a := range o.adjustments {
		adjustments += a.amount
	}
	o.itemTotal = items
	o.adjustmentTotal = adjustments
	o.grandTotal = items + o.shipmentTotal + adjustments
}

// SetCustomer links the order to a customer; nil detaches it.
func (o *Order) SetCustomer(customerID *kernel.UUID) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
		id := *customerID
		customerID = &id
	}
	o.customerID = customerID
	return nil
}

func (o *Order) SetEmail(email string) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidError("email")
	}
	o.email = email
	return nil
}

func (o *Order) SetInstructions(instructions string) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	o.instructions = strings.TrimSpace(instructions)
	return nil
}

// SetMetadata replaces both metadata maps. Public metadata is visible to
// the customer; private metadata is for staff and integrations.
func (o *Order) SetMetadata(public, private map[string]string) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	o.publicMetadata = maps.Clone(public)
	o.privateMetadata = maps.Clone(private)
	return nil
}

// Events returns the buffered events without draining them.
func (o *Order) Events() []Event {
	return append([]Event(nil), o.events...)
}

// PullEvents drains the event buffer. The order the events were raised in
// is preserved.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// MarkPersisted records the version the order now has in storage.
func (o *Order) MarkPersisted(version int) {
	o.version = version
}

func (o *Order) ensureOpen() error {
	if o.state.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("state", ErrOrderIsFinalized)
	}
	return nil
}

func (o *Order) findLineItem(id kernel.UUID) (int, *LineItem) {
	for i, li := range o.lineItems {
		if li.id.IsEqual(id) {
			return i, li
		}
	}
	return -1, nil
}

func (o *Order) findLineItemByVariant(variantID kernel.UUID) *LineItem {
	for _, li := range o.lineItems {
		if li.variant.VariantID.IsEqual(variantID) {
			return li
		}
	}
	return nil
}

func (o *Order) money(amount int64) (kernel.Money, error) {
	return kernel.NewMoney(amount, o.currency)
}

func (o *Order) inventoryLines() []InventoryLine {
	lines := make([]InventoryLine, 0, len(o.lineItems))
	for _, li := range o.lineItems {
		lines = append(lines, InventoryLine{VariantID: li.variant.VariantID, Quantity: li.quantity})
	}
	return lines
}

func (o *Order) newBaseEvent(eventType string) BaseEvent {
	return newBaseEvent(o.id, eventType, o.now().UTC())
}

func (o *Order) raise(event Event) {
	o.events = append(o.events, event)
}
