package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderSummaryQueryHandler(db *gorm.DB) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{db: db}
}

type orderSummaryRow struct {
	Number          string
	State           int
	Currency        string
	Email           string
	PromoCode       string
	LineItemCount   int
	ItemCount       int
	ItemTotal       int64
	ShipmentTotal   int64
	AdjustmentTotal int64
	GrandTotal      int64
	PaymentTotal    int64
	SettledTotal    int64
	CreatedAt       time.Time
	CompletedAt     *time.Time
	CanceledAt      *time.Time
}

// Handle returns errs.ObjectNotFoundError for an unknown order.
func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	var rows []orderSummaryRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.number,
			o.state,
			o.currency,
			o.email,
			o.promo_code,
			(SELECT COUNT(*) FROM order_line_items li WHERE li.order_id = o.id) AS line_item_count,
			(SELECT COALESCE(SUM(li.quantity), 0) FROM order_line_items li WHERE li.order_id = o.id) AS item_count,
			o.item_total,
			o.shipment_total,
			o.adjustment_total,
			o.grand_total,
			(SELECT COALESCE(SUM(p.amount), 0) FROM order_payments p
				WHERE p.order_id = o.id AND p.status IN (?, ?)) AS payment_total,
			(SELECT COALESCE(SUM(p.amount), 0) FROM order_payments p
				WHERE p.order_id = o.id AND p.status = ?) AS settled_total,
			o.created_at,
			o.completed_at,
			o.canceled_at
		FROM orders o
		WHERE o.id = ?
	`, int(payment.Pending), int(payment.Settled), int(payment.Settled), query.OrderID().Raw()).Scan(&rows).Error
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	if len(rows) == 0 {
		return GetOrderSummaryQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	row := rows[0]
	currency := kernel.Currency(row.Currency)
	if err = currency.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	money := func(amount int64) kernel.Money {
		m, _ := kernel.NewMoney(amount, currency)
		return m
	}

	return GetOrderSummaryQueryResponse{
		ID:              query.OrderID(),
		Number:          row.Number,
		State:           order.State(row.State),
		Email:           row.Email,
		LineItemCount:   row.LineItemCount,
		ItemCount:       row.ItemCount,
		ItemTotal:       money(row.ItemTotal),
		ShipmentTotal:   money(row.ShipmentTotal),
		AdjustmentTotal: money(row.AdjustmentTotal),
		GrandTotal:      money(row.GrandTotal),
		PaymentTotal:    money(row.PaymentTotal),
		SettledTotal:    money(row.SettledTotal),
		PromoCode:       row.PromoCode,
		CreatedAt:       row.CreatedAt,
		CompletedAt:     row.CompletedAt,
		CanceledAt:      row.CanceledAt,
	}, nil
}
