package order

import (
	"encoding/json"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Event is a fact the order raised. Events are buffered on the aggregate
// until PullEvents drains them.
type Event interface {
	GetEventID() kernel.UUID
	GetAggregateID() kernel.UUID
	GetEventType() string
	GetTimestamp() time.Time
}

const (
	EventCreated                     = "order.created"
	EventStateChanged                = "order.state_changed"
	EventCompleted                   = "order.completed"
	EventCanceled                    = "order.canceled"
	EventLineItemAdded               = "order.line_item_added"
	EventLineItemRemoved             = "order.line_item_removed"
	EventLineItemQuantityChanged     = "order.line_item_quantity_changed"
	EventFinalizeInventory           = "order.finalize_inventory"
	EventReleaseInventory            = "order.release_inventory"
	EventFulfillmentLocationSelected = "order.fulfillment_location_selected"
	EventShippingMethodSelected      = "order.shipping_method_selected"
	EventShippingAddressSet          = "order.shipping_address_set"
	EventBillingAddressSet           = "order.billing_address_set"
	EventPromotionApplied            = "order.promotion_applied"
	EventPromotionRemoved            = "order.promotion_removed"
	EventPromotionUsed               = "order.promotion_used"
)

type BaseEvent struct {
	EventID   kernel.UUID `json:"event_id"`
	OrderID   kernel.UUID `json:"order_id"`
	EventType string      `json:"event_type"`
	Timestamp time.Time   `json:"timestamp"`
}

func (e BaseEvent) GetEventID() kernel.UUID     { return e.EventID }
func (e BaseEvent) GetAggregateID() kernel.UUID { return e.OrderID }
func (e BaseEvent) GetEventType() string        { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time     { return e.Timestamp }

func newBaseEvent(orderID kernel.UUID, eventType string, at time.Time) BaseEvent {
	return BaseEvent{
		EventID:   kernel.NewUUID(),
		OrderID:   orderID,
		EventType: eventType,
		Timestamp: at,
	}
}

// InventoryLine is one variant quantity in an inventory instruction.
type InventoryLine struct {
	VariantID kernel.UUID `json:"variant_id"`
	Quantity  int         `json:"quantity"`
}

type Created struct {
	BaseEvent
	StoreID  kernel.UUID     `json:"store_id"`
	Number   string          `json:"number"`
	Currency kernel.Currency `json:"currency"`
}

type StateChanged struct {
	BaseEvent
	PreviousState State `json:"previous_state"`
	NewState      State `json:"new_state"`
}

type Completed struct {
	BaseEvent
	Number     string `json:"number"`
	GrandTotal int64  `json:"grand_total"`
}

type OrderCanceled struct {
	BaseEvent
	PreviousState State `json:"previous_state"`
}

type LineItemAdded struct {
	BaseEvent
	LineItemID kernel.UUID `json:"line_item_id"`
	VariantID  kernel.UUID `json:"variant_id"`
	Quantity   int         `json:"quantity"`
}

type LineItemRemoved struct {
	BaseEvent
	LineItemID kernel.UUID `json:"line_item_id"`
	VariantID  kernel.UUID `json:"variant_id"`
	Quantity   int         `json:"quantity"`
}

type LineItemQuantityChanged struct {
	BaseEvent
	LineItemID       kernel.UUID `json:"line_item_id"`
	VariantID        kernel.UUID `json:"variant_id"`
	PreviousQuantity int         `json:"previous_quantity"`
	Quantity         int         `json:"quantity"`
}

// FinalizeInventory asks inventory to turn reservations into deductions.
type FinalizeInventory struct {
	BaseEvent
	StockLocationID *kernel.UUID    `json:"stock_location_id,omitempty"`
	Lines           []InventoryLine `json:"lines"`
}

// ReleaseInventory asks inventory to drop the order's reservations.
type ReleaseInventory struct {
	BaseEvent
	StockLocationID *kernel.UUID    `json:"stock_location_id,omitempty"`
	Lines           []InventoryLine `json:"lines"`
}

type FulfillmentLocationSelected struct {
	BaseEvent
	StockLocationID kernel.UUID `json:"stock_location_id"`
}

type ShippingMethodSelected struct {
	BaseEvent
	ShippingMethodID kernel.UUID `json:"shipping_method_id"`
	ShipmentTotal    int64       `json:"shipment_total"`
}

type ShippingAddressSet struct {
	BaseEvent
	AddressID kernel.UUID `json:"address_id"`
}

type BillingAddressSet struct {
	BaseEvent
	AddressID kernel.UUID `json:"address_id"`
}

type PromotionApplied struct {
	BaseEvent
	PromotionID    kernel.UUID `json:"promotion_id"`
	Code           string      `json:"code,omitempty"`
	DiscountAmount int64       `json:"discount_amount"`
}

type PromotionRemoved struct {
	BaseEvent
	PromotionID kernel.UUID `json:"promotion_id"`
}

// PromotionUsed counts a redemption once the order completes.
type PromotionUsed struct {
	BaseEvent
	PromotionID kernel.UUID  `json:"promotion_id"`
	CustomerID  *kernel.UUID `json:"customer_id,omitempty"`
}

var eventFactories = map[string]func() Event{
	EventCreated:                     func() Event { return &Created{} },
	EventStateChanged:                func() Event { return &StateChanged{} },
	EventCompleted:                   func() Event { return &Completed{} },
	EventCanceled:                    func() Event { return &OrderCanceled{} },
	EventLineItemAdded:               func() Event { return &LineItemAdded{} },
	EventLineItemRemoved:             func() Event { return &LineItemRemoved{} },
	EventLineItemQuantityChanged:     func() Event { return &LineItemQuantityChanged{} },
	EventFinalizeInventory:           func() Event { return &FinalizeInventory{} },
	EventReleaseInventory:            func() Event { return &ReleaseInventory{} },
	EventFulfillmentLocationSelected: func() Event { return &FulfillmentLocationSelected{} },
	EventShippingMethodSelected:      func() Event { return &ShippingMethodSelected{} },
	EventShippingAddressSet:          func() Event { return &ShippingAddressSet{} },
	EventBillingAddressSet:           func() Event { return &BillingAddressSet{} },
	EventPromotionApplied:            func() Event { return &PromotionApplied{} },
	EventPromotionRemoved:            func() Event { return &PromotionRemoved{} },
	EventPromotionUsed:               func() Event { return &PromotionUsed{} },
}

// DecodeEvent turns a stored payload back into its concrete event. The
// result is a pointer to the event struct.
func DecodeEvent(eventType string, payload []byte) (Event, error) {
	factory, ok := eventFactories[eventType]
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("event type", fmt.Errorf("unknown event type %q", eventType))
	}
	event := factory()
	if err := json.Unmarshal(payload, event); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("event payload", err)
	}
	return event, nil
}
