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

// Snapshot is the persisted shape of an order. ItemTotal, AdjustmentTotal
// and GrandTotal are informational: RestoreOrder recomputes them from the
// owned collections.
type Snapshot struct {
	ID                    kernel.UUID
	StoreID               kernel.UUID
	CustomerID            *kernel.UUID
	PromotionID           *kernel.UUID
	ShippingMethodID      *kernel.UUID
	FulfillmentLocationID *kernel.UUID
	ShippingAddressID     *kernel.UUID
	BillingAddressID      *kernel.UUID

	Number       string
	State        State
	Currency     kernel.Currency
	PromoCode    string
	Email        string
	Instructions string

	ItemTotal       int64
	ShipmentTotal   int64
	AdjustmentTotal int64
	GrandTotal      int64

	CreatedAt   time.Time
	CompletedAt *time.Time
	CanceledAt  *time.Time

	PublicMetadata  map[string]string
	PrivateMetadata map[string]string

	LineItems   []*LineItem
	Adjustments []Adjustment
	Shipments   []*shipment.Shipment
	Payments    []*payment.Payment

	Version int
}

// RestoreOrder rebuilds an order from storage. No events are raised.
func RestoreOrder(s Snapshot, opts ...Option) (*Order, error) {
	var numberErr, shipmentTotalErr, ownershipErr error
	if strings.TrimSpace(s.Number) == "" {
		numberErr = errs.NewValueIsRequiredError("number")
	}
	if s.ShipmentTotal < 0 {
		shipmentTotalErr = errs.NewValueIsOutOfRangeError("shipment total", s.ShipmentTotal, 0, "unbounded")
	}
	ownershipErr = validateOwnership(s)

	if err := errors.Join(
		s.ID.Validate(),
		s.StoreID.Validate(),
		s.Currency.Validate(),
		s.State.Validate(),
		numberErr,
		shipmentTotalErr,
		ownershipErr,
	); err != nil {
		return nil, err
	}

	o := &Order{
		id:                    s.ID,
		storeID:               s.StoreID,
		customerID:            s.CustomerID,
		promotionID:           s.PromotionID,
		shippingMethodID:      s.ShippingMethodID,
		fulfillmentLocationID: s.FulfillmentLocationID,
		shippingAddressID:     s.ShippingAddressID,
		billingAddressID:      s.BillingAddressID,
		number:                s.Number,
		state:                 s.State,
		currency:              s.Currency,
		promoCode:             s.PromoCode,
		email:                 s.Email,
		instructions:          s.Instructions,
		shipmentTotal:         s.ShipmentTotal,
		createdAt:             s.CreatedAt,
		completedAt:           s.CompletedAt,
		canceledAt:            s.CanceledAt,
		publicMetadata:        maps.Clone(s.PublicMetadata),
		privateMetadata:       maps.Clone(s.PrivateMetadata),
		lineItems:             append([]*LineItem(nil), s.LineItems...),
		adjustments:           append([]Adjustment(nil), s.Adjustments...),
		shipments:             append([]*shipment.Shipment(nil), s.Shipments...),
		payments:              append([]*payment.Payment(nil), s.Payments...),
		version:               s.Version,
		now:                   time.Now,
		guard:                 guard.NewConstructorGuard(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.Recalculate()
	return o, nil
}

// Snapshot exports the order for storage.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                    o.id,
		StoreID:               o.storeID,
		CustomerID:            o.customerID,
		PromotionID:           o.promotionID,
		ShippingMethodID:      o.shippingMethodID,
		FulfillmentLocationID: o.fulfillmentLocationID,
		ShippingAddressID:     o.shippingAddressID,
		BillingAddressID:      o.billingAddressID,
		Number:                o.number,
		State:                 o.state,
		Currency:              o.currency,
		PromoCode:             o.promoCode,
		Email:                 o.email,
		Instructions:          o.instructions,
		ItemTotal:             o.itemTotal,
		ShipmentTotal:         o.shipmentTotal,
		AdjustmentTotal:       o.adjustmentTotal,
		GrandTotal:            o.grandTotal,
		CreatedAt:             o.createdAt,
		CompletedAt:           o.completedAt,
		CanceledAt:            o.canceledAt,
		PublicMetadata:        o.PublicMetadata(),
		PrivateMetadata:       o.PrivateMetadata(),
		LineItems:             o.LineItems(),
		Adjustments:           o.Adjustments(),
		Shipments:             o.Shipments(),
		Payments:              o.Payments(),
		Version:               o.version,
	}
}

func validateOwnership(s Snapshot) error {
	notOwned := func(name string) error {
		return errs.NewValueIsInvalidErrorWithCause(name, errors.New("does not belong to the order"))
	}
	for _, li := range s.LineItems {
		if err := li.Validate(); err != nil {
			return err
		}
		if !li.orderID.IsEqual(s.ID) {
			return notOwned("line item")
		}
	}
	for _, a := range s.Adjustments {
		if a.scope != ScopeOrder {
			return notOwned("adjustment")
		}
	}
	for _, sh := range s.Shipments {
		if err := sh.Validate(); err != nil {
			return err
		}
		if !sh.OrderID().IsEqual(s.ID) {
			return notOwned("shipment")
		}
	}
	for _, p := range s.Payments {
		if err := p.Validate(); err != nil {
			return err
		}
		if !p.OrderID().IsEqual(s.ID) {
			return notOwned("payment")
		}
	}
	return nil
}
