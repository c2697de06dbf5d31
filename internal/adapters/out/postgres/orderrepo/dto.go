// Package orderrepo maps the order aggregate and its owned collections to
// relational tables. The aggregate crosses the boundary as an
// order.Snapshot, so the repository never touches private state.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// OrderDTO is one row of the orders table. Version is the optimistic
// concurrency stamp compared on every update.
type OrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StoreID               uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID            *uuid.UUID `gorm:"type:uuid;index"`
	PromotionID           *uuid.UUID `gorm:"type:uuid"`
	ShippingMethodID      *uuid.UUID `gorm:"type:uuid"`
	FulfillmentLocationID *uuid.UUID `gorm:"type:uuid"`
	ShippingAddressID     *uuid.UUID `gorm:"type:uuid"`
	BillingAddressID      *uuid.UUID `gorm:"type:uuid"`

	Number       string `gorm:"type:varchar(32);not null;uniqueIndex"`
	State        int    `gorm:"type:smallint;not null;index"`
	Currency     string `gorm:"type:char(3);not null"`
	PromoCode    string `gorm:"type:varchar(64)"`
	Email        string `gorm:"type:varchar(255)"`
	Instructions string `gorm:"type:text"`

	ItemTotal       int64 `gorm:"not null"`
	ShipmentTotal   int64 `gorm:"not null"`
	AdjustmentTotal int64 `gorm:"not null"`
	GrandTotal      int64 `gorm:"not null"`

	CreatedAt   time.Time `gorm:"not null"`
	CompletedAt *time.Time
	CanceledAt  *time.Time

	PublicMetadata  map[string]string `gorm:"type:jsonb;serializer:json"`
	PrivateMetadata map[string]string `gorm:"type:jsonb;serializer:json"`

	Version int `gorm:"not null"`

	LineItems   []LineItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Adjustments []AdjustmentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipments   []ShipmentDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments    []PaymentDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO stores the variant snapshot captured when the line was added.
type LineItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Position        int       `gorm:"not null"`
	VariantID       uuid.UUID `gorm:"type:uuid;not null;index"`
	SKU             string    `gorm:"type:varchar(64);not null"`
	Digital         bool      `gorm:"not null"`
	UnitWeightGrams int64     `gorm:"not null"`
	Quantity        int       `gorm:"not null"`
	UnitPrice       int64     `gorm:"not null"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// AdjustmentDTO holds both order-scoped and line-scoped adjustments;
// LineItemID is set only for the latter.
type AdjustmentDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Position    int        `gorm:"not null"`
	Scope       int        `gorm:"type:smallint;not null"`
	LineItemID  *uuid.UUID `gorm:"type:uuid"`
	PromotionID *uuid.UUID `gorm:"type:uuid;index"`
	Amount      int64      `gorm:"not null"`
	Description string     `gorm:"type:varchar(255);not null"`
}

func (AdjustmentDTO) TableName() string {
	return "order_adjustments"
}

type ShipmentDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	Position         int        `gorm:"not null"`
	ShippingMethodID uuid.UUID  `gorm:"type:uuid;not null"`
	StockLocationID  *uuid.UUID `gorm:"type:uuid"`
	Cost             int64      `gorm:"not null"`
	Status           int        `gorm:"type:smallint;not null"`
}

func (ShipmentDTO) TableName() string {
	return "order_shipments"
}

type PaymentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
	MethodID   uuid.UUID `gorm:"type:uuid;not null"`
	MethodType string    `gorm:"type:varchar(32);not null"`
	Amount     int64     `gorm:"not null"`
	Status     int       `gorm:"type:smallint;not null"`
}

func (PaymentDTO) TableName() string {
	return "order_payments"
}

// Models lists every table the repository writes, for AutoMigrate.
func Models() []any {
	return []any{&OrderDTO{}, &LineItemDTO{}, &AdjustmentDTO{}, &ShipmentDTO{}, &PaymentDTO{}}
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()
	orderID := s.ID.Raw()

	dto := OrderDTO{
		ID:                    orderID,
		StoreID:               s.StoreID.Raw(),
		CustomerID:            rawPtr(s.CustomerID),
		PromotionID:           rawPtr(s.PromotionID),
		ShippingMethodID:      rawPtr(s.ShippingMethodID),
		FulfillmentLocationID: rawPtr(s.FulfillmentLocationID),
		ShippingAddressID:     rawPtr(s.ShippingAddressID),
		BillingAddressID:      rawPtr(s.BillingAddressID),
		Number:                s.Number,
		State:                 int(s.State),
		Currency:              string(s.Currency),
		PromoCode:             s.PromoCode,
		Email:                 s.Email,
		Instructions:          s.Instructions,
		ItemTotal:             s.ItemTotal,
		ShipmentTotal:         s.ShipmentTotal,
		AdjustmentTotal:       s.AdjustmentTotal,
		GrandTotal:            s.GrandTotal,
		CreatedAt:             s.CreatedAt,
		CompletedAt:           s.CompletedAt,
		CanceledAt:            s.CanceledAt,
		PublicMetadata:        s.PublicMetadata,
		PrivateMetadata:       s.PrivateMetadata,
		Version:               s.Version,
	}

	for i, li := range s.LineItems {
		v := li.Variant()
		dto.LineItems = append(dto.LineItems, LineItemDTO{
			ID:              li.ID().Raw(),
			OrderID:         orderID,
			Position:        i,
			VariantID:       v.VariantID.Raw(),
			SKU:             v.SKU,
			Digital:         v.Digital,
			UnitWeightGrams: v.UnitWeightGrams,
			Quantity:        li.Quantity(),
			UnitPrice:       li.UnitPrice(),
		})
		for _, a := range li.Adjustments() {
			dto.Adjustments = append(dto.Adjustments, adjustmentFromDomain(orderID, len(dto.Adjustments), a))
		}
	}
	for _, a := range s.Adjustments {
		dto.Adjustments = append(dto.Adjustments, adjustmentFromDomain(orderID, len(dto.Adjustments), a))
	}

	for i, sh := range s.Shipments {
		dto.Shipments = append(dto.Shipments, ShipmentDTO{
			ID:               sh.ID().Raw(),
			OrderID:          orderID,
			Position:         i,
			ShippingMethodID: sh.ShippingMethodID().Raw(),
			StockLocationID:  rawPtr(sh.StockLocationID()),
			Cost:             sh.Cost().Amount(),
			Status:           int(sh.Status()),
		})
	}

	for i, p := range s.Payments {
		dto.Payments = append(dto.Payments, PaymentDTO{
			ID:         p.ID().Raw(),
			OrderID:    orderID,
			Position:   i,
			MethodID:   p.MethodID().Raw(),
			MethodType: string(p.MethodType()),
			Amount:     p.Amount().Amount(),
			Status:     int(p.Status()),
		})
	}

	return dto
}

func adjustmentFromDomain(orderID uuid.UUID, position int, a order.Adjustment) AdjustmentDTO {
	return AdjustmentDTO{
		ID:          a.ID().Raw(),
		OrderID:     orderID,
		Position:    position,
		Scope:       int(a.Scope()),
		LineItemID:  rawPtr(a.LineItemID()),
		PromotionID: rawPtr(a.PromotionID()),
		Amount:      a.Amount(),
		Description: a.Description(),
	}
}

// toDomain rebuilds the aggregate. Child slices must already be sorted by
// position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	s := order.Snapshot{
		State:           order.State(dto.State),
		Currency:        kernel.Currency(dto.Currency),
		Number:          dto.Number,
		PromoCode:       dto.PromoCode,
		Email:           dto.Email,
		Instructions:    dto.Instructions,
		ItemTotal:       dto.ItemTotal,
		ShipmentTotal:   dto.ShipmentTotal,
		AdjustmentTotal: dto.AdjustmentTotal,
		GrandTotal:      dto.GrandTotal,
		CreatedAt:       dto.CreatedAt,
		CompletedAt:     dto.CompletedAt,
		CanceledAt:      dto.CanceledAt,
		PublicMetadata:  dto.PublicMetadata,
		PrivateMetadata: dto.PrivateMetadata,
		Version:         dto.Version,
	}

	var err error
	if s.ID, err = kernel.UUIDFromBytes(dto.ID[:]); err != nil {
		return nil, err
	}
	if s.StoreID, err = kernel.UUIDFromBytes(dto.StoreID[:]); err != nil {
		return nil, err
	}
	for _, ref := range []struct {
		dst **kernel.UUID
		src *uuid.UUID
	}{
		{&s.CustomerID, dto.CustomerID},
		{&s.PromotionID, dto.PromotionID},
		{&s.ShippingMethodID, dto.ShippingMethodID},
		{&s.FulfillmentLocationID, dto.FulfillmentLocationID},
		{&s.ShippingAddressID, dto.ShippingAddressID},
		{&s.BillingAddressID, dto.BillingAddressID},
	} {
		if *ref.dst, err = kernelPtr(ref.src); err != nil {
			return nil, err
		}
	}

	lineAdjustments := make(map[uuid.UUID][]order.Adjustment)
	for _, a := range dto.Adjustments {
		adj, adjErr := adjustmentToDomain(a)
		if adjErr != nil {
			return nil, adjErr
		}
		if a.LineItemID != nil {
			lineAdjustments[*a.LineItemID] = append(lineAdjustments[*a.LineItemID], adj)
			continue
		}
		s.Adjustments = append(s.Adjustments, adj)
	}

	for _, li := range dto.LineItems {
		item, itemErr := lineItemToDomain(s.ID, li, lineAdjustments[li.ID])
		if itemErr != nil {
			return nil, itemErr
		}
		s.LineItems = append(s.LineItems, item)
	}

	for _, sh := range dto.Shipments {
		item, shErr := shipmentToDomain(s.ID, s.Currency, sh)
		if shErr != nil {
			return nil, shErr
		}
		s.Shipments = append(s.Shipments, item)
	}

	for _, p := range dto.Payments {
		item, pErr := paymentToDomain(s.ID, s.Currency, p)
		if pErr != nil {
			return nil, pErr
		}
		s.Payments = append(s.Payments, item)
	}

	return order.RestoreOrder(s)
}

func lineItemToDomain(orderID kernel.UUID, dto LineItemDTO, adjustments []order.Adjustment) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreLineItem(id, orderID, order.VariantSnapshot{
		VariantID:       variantID,
		SKU:             dto.SKU,
		Digital:         dto.Digital,
		UnitWeightGrams: dto.UnitWeightGrams,
	}, dto.Quantity, dto.UnitPrice, adjustments)
}

func adjustmentToDomain(dto AdjustmentDTO) (order.Adjustment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Adjustment{}, err
	}
	lineItemID, err := kernelPtr(dto.LineItemID)
	if err != nil {
		return order.Adjustment{}, err
	}
	promotionID, err := kernelPtr(dto.PromotionID)
	if err != nil {
		return order.Adjustment{}, err
	}

	return order.RestoreAdjustment(id, order.Scope(dto.Scope), lineItemID, promotionID, dto.Amount, dto.Description)
}

func shipmentToDomain(orderID kernel.UUID, currency kernel.Currency, dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	methodID, err := kernel.UUIDFromBytes(dto.ShippingMethodID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernelPtr(dto.StockLocationID)
	if err != nil {
		return nil, err
	}
	cost, err := kernel.NewMoney(dto.Cost, currency)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(id, orderID, methodID, locationID, cost, shipment.Status(dto.Status))
}

func paymentToDomain(orderID kernel.UUID, currency kernel.Currency, dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	methodID, err := kernel.UUIDFromBytes(dto.MethodID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount, currency)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, orderID, amount, methodID, payment.MethodType(dto.MethodType), payment.Status(dto.Status))
}

func rawPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Raw()
	return &raw
}

func kernelPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // absent optional reference
	}
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}
