package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
	"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
)

// GetOrderSummaryQuery reads the totals of one order together with what
// has been paid against it.
type GetOrderSummaryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderSummaryQuery(orderID kernel.UUID) (GetOrderSummaryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderSummaryQuery{}, err
	}
	return GetOrderSummaryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

func (q GetOrderSummaryQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderSummaryQueryResponse mirrors the stored totals. PaymentTotal
// counts pending and settled payments; SettledTotal only settled ones.
type GetOrderSummaryQueryResponse struct {
	ID              kernel.UUID
	Number          string
	State           order.State
	Email           string
	LineItemCount   int
	ItemCount       int
	ItemTotal       kernel.Money
	ShipmentTotal   kernel.Money
	AdjustmentTotal kernel.Money
	GrandTotal      kernel.Money
	PaymentTotal    kernel.Money
	SettledTotal    kernel.Money
	PromoCode       string
	CreatedAt       time.Time
	CompletedAt     *time.Time
	CanceledAt      *time.Time
}
