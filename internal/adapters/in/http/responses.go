package http

import (
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// moneyResponse carries both minor units and the decimal rendering.
type moneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Display  string `json:"display"`
}

func newMoneyResponse(m kernel.Money) moneyResponse {
	return moneyResponse{
		Amount:   m.Amount(),
		Currency: m.Currency().String(),
		Display:  m.Decimal().StringFixed(m.Currency().Exponent()),
	}
}

type openOrderResponse struct {
	ID         string        `json:"id"`
	Number     string        `json:"number"`
	State      string        `json:"state"`
	GrandTotal moneyResponse `json:"grand_total"`
	CreatedAt  time.Time     `json:"created_at"`
}

type orderSummaryResponse struct {
	ID              string        `json:"id"`
	Number          string        `json:"number"`
	State           string        `json:"state"`
	Email           string        `json:"email,omitempty"`
	LineItemCount   int           `json:"line_item_count"`
	ItemCount       int           `json:"item_count"`
	ItemTotal       moneyResponse `json:"item_total"`
	ShipmentTotal   moneyResponse `json:"shipment_total"`
	AdjustmentTotal moneyResponse `json:"adjustment_total"`
	GrandTotal      moneyResponse `json:"grand_total"`
	PaymentTotal    moneyResponse `json:"payment_total"`
	SettledTotal    moneyResponse `json:"settled_total"`
	PromoCode       string        `json:"promo_code,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	CanceledAt      *time.Time    `json:"canceled_at,omitempty"`
}

func newOrderSummaryResponse(s queries.GetOrderSummaryQueryResponse) orderSummaryResponse {
	return orderSummaryResponse{
		ID:              s.ID.String(),
		Number:          s.Number,
		State:           s.State.String(),
		Email:           s.Email,
		LineItemCount:   s.LineItemCount,
		ItemCount:       s.ItemCount,
		ItemTotal:       newMoneyResponse(s.ItemTotal),
		ShipmentTotal:   newMoneyResponse(s.ShipmentTotal),
		AdjustmentTotal: newMoneyResponse(s.AdjustmentTotal),
		GrandTotal:      newMoneyResponse(s.GrandTotal),
		PaymentTotal:    newMoneyResponse(s.PaymentTotal),
		SettledTotal:    newMoneyResponse(s.SettledTotal),
		PromoCode:       s.PromoCode,
		CreatedAt:       s.CreatedAt,
		CompletedAt:     s.CompletedAt,
		CanceledAt:      s.CanceledAt,
	}
}
