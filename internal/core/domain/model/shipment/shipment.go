// Package shipment models the physical delivery created for an order once
// it leaves the Delivery step. Shipping and cancellation after creation
// are driven by the carrier integration, not by the order.
package shipment

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
	ErrShipmentIsNotPending     = errors.New("shipment is not pending")
)

// Status of a shipment.
type Status int

const (
	Unknown Status = iota
	Pending
	Shipped
	Canceled
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Shipped:
		return "Shipped"
	case Canceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

func (s Status) Validate() error {
	if s < Pending || s > Canceled {
		return errs.NewValueIsInvalidErrorWithCause("shipment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Shipment carries the selected shipping method, the fulfillment location
// (nil when none was chosen) and the cost charged to the order.
type Shipment struct {
	id               kernel.UUID
	orderID          kernel.UUID
	shippingMethodID kernel.UUID
	stockLocationID  *kernel.UUID
	cost             kernel.Money
	status           Status

	guard guard.ConstructorGuard
}

func NewShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	shippingMethodID kernel.UUID,
	stockLocationID *kernel.UUID,
	cost kernel.Money,
) (*Shipment, error) {
	return RestoreShipment(id, orderID, shippingMethodID, stockLocationID, cost, Pending)
}

func RestoreShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	shippingMethodID kernel.UUID,
	stockLocationID *kernel.UUID,
	cost kernel.Money,
	status Status,
) (*Shipment, error) {
	var locationErr, costErr error
	if stockLocationID != nil {
		locationErr = stockLocationID.Validate()
	}
	if cost.IsNegative() {
		costErr = errs.NewValueIsOutOfRangeError("shipment cost", cost.Amount(), 0, "unbounded")
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		shippingMethodID.Validate(),
		locationErr,
		cost.Currency().Validate(),
		costErr,
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Shipment{
		id:               id,
		orderID:          orderID,
		shippingMethodID: shippingMethodID,
		stockLocationID:  stockLocationID,
		cost:             cost,
		status:           status,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() kernel.UUID               { return s.id }
func (s *Shipment) OrderID() kernel.UUID          { return s.orderID }
func (s *Shipment) ShippingMethodID() kernel.UUID { return s.shippingMethodID }
func (s *Shipment) StockLocationID() *kernel.UUID { return s.stockLocationID }
func (s *Shipment) Cost() kernel.Money            { return s.cost }
func (s *Shipment) Status() Status                { return s.status }

// Ship marks the parcel as handed to the carrier.
func (s *Shipment) Ship() error {
	return s.transition(Shipped)
}

// Cancel withdraws a shipment that has not left the warehouse.
func (s *Shipment) Cancel() error {
	return s.transition(Canceled)
}

func (s *Shipment) transition(to Status) error {
	if s.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("shipment status",
			fmt.Errorf("%w: cannot move from %s to %s", ErrShipmentIsNotPending, s.status, to))
	}
	s.status = to
	return nil
}
