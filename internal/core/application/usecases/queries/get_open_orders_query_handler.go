package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			state,
			currency,
			grand_total,
			created_at
		FROM orders
		WHERE state NOT IN (?, ?)
		ORDER BY created_at, id
		LIMIT ?
	`, int(order.Complete), int(order.Canceled), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         uuid.UUID
			number     string
			state      int
			currency   string
			grandTotal int64
			createdAt  time.Time
		)
		if err = rows.Scan(&id, &number, &state, &currency, &grandTotal, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		total, moneyErr := kernel.NewMoney(grandTotal, kernel.Currency(currency))
		if moneyErr != nil {
			return nil, moneyErr
		}

		orders = append(orders, GetOpenOrdersQueryResponse{
			ID:         orderID,
			Number:     number,
			State:      order.State(state),
			GrandTotal: total,
			CreatedAt:  createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
