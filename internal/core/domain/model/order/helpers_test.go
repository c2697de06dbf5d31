package order_test

import (
	"errors"
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"

	"github.com/stretchr/testify/require"
)

var (
	usd       = kernel.Currency("USD")
	fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
)

type fakeVariant struct {
	id          kernel.UUID
	sku         string
	purchasable bool
	digital     bool
	weight      int64
	prices      map[kernel.Currency]int64
}

func newVariant(price int64) *fakeVariant {
	return &fakeVariant{
		id:          kernel.NewUUID(),
		sku:         "SKU-" + kernel.NewUUID().String()[:8],
		purchasable: true,
		weight:      500,
		prices:      map[kernel.Currency]int64{usd: price},
	}
}

func newDigitalVariant(price int64) *fakeVariant {
	v := newVariant(price)
	v.digital = true
	v.weight = 0
	return v
}

func (v *fakeVariant) ID() kernel.UUID     { return v.id }
func (v *fakeVariant) SKU() string         { return v.sku }
func (v *fakeVariant) IsPurchasable() bool { return v.purchasable }
func (v *fakeVariant) IsDigital() bool     { return v.digital }
func (v *fakeVariant) WeightGrams() int64  { return v.weight }

func (v *fakeVariant) PriceIn(currency kernel.Currency) (kernel.Money, error) {
	amount, ok := v.prices[currency]
	if !ok {
		return kernel.Money{}, errors.New("no price")
	}
	return kernel.NewMoney(amount, currency)
}

type fakePromotion struct {
	id   kernel.UUID
	code string
}

func newPromotion(code string) *fakePromotion {
	return &fakePromotion{id: kernel.NewUUID(), code: code}
}

func (p *fakePromotion) ID() kernel.UUID    { return p.id }
func (p *fakePromotion) RequiresCode() bool { return p.code != "" }
func (p *fakePromotion) Code() string       { return p.code }

// flatOff proposes one order-scoped discount of amount minor units.
func flatOff(amount int64) order.PromotionCalculator {
	return order.PromotionCalculatorFunc(func(order.Promotion, order.CalculationInput) ([]order.ProposedAdjustment, error) {
		return []order.ProposedAdjustment{{Amount: -amount, Description: "flat discount"}}, nil
	})
}

type fakeShippingMethod struct {
	id   kernel.UUID
	cost int64
}

func (m *fakeShippingMethod) ID() kernel.UUID { return m.id }

func (m *fakeShippingMethod) Cost(_ int64, itemTotal kernel.Money) (kernel.Money, error) {
	return kernel.NewMoney(m.cost, itemTotal.Currency())
}

type fixedNumber string

func (n fixedNumber) Generate() (string, error) { return string(n), nil }

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), usd, fixedNumber("R260314ABCDEF"),
		order.WithClock(func() time.Time { return fixedTime }))
	require.NoError(t, err)
	o.PullEvents()
	return o
}

func eventTypes(events []order.Event) []string {
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.GetEventType())
	}
	return types
}

func requireTotalsConsistent(t *testing.T, o *order.Order) {
	t.Helper()
	var items int64
	for _, li := range o.LineItems() {
		items += int64(li.Quantity()) * li.UnitPrice()
	}
	require.Equal(t, items, o.ItemTotal())
	require.Equal(t, o.ItemTotal()+o.ShipmentTotal()+o.AdjustmentTotal(), o.GrandTotal())
}

// advanceTo drives a physical order with one line item forward to state.
// The grand total is paid and settled on the way through Payment, so an
// order left in Confirm completes on the next call to Next.
func advanceTo(t *testing.T, o *order.Order, state order.State) {
	t.Helper()
	for o.State() < state {
		switch o.State() {
		case order.Address:
			require.NoError(t, o.SetShippingAddress(kernel.NewUUID()))
			require.NoError(t, o.SetBillingAddress(kernel.NewUUID()))
		case order.Delivery:
			require.NoError(t, o.SetShippingMethod(&fakeShippingMethod{id: kernel.NewUUID(), cost: 500}))
		case order.Payment:
			p, err := o.AddPayment(o.GrandTotal(), kernel.NewUUID(), payment.MethodCard)
			require.NoError(t, err)
			require.NoError(t, p.Settle())
		}
		require.NoError(t, o.Next())
	}
}
