package commands_test

import (
	"context"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Append(ctx context.Context, events []order.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]ports.OutboxMessage)
	return msgs, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

type MockOutboxUoW struct{ mock.Mock }

func (m *MockOutboxUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) GetVariant(ctx context.Context, id kernel.UUID) (order.Variant, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(order.Variant)
	return v, args.Error(1)
}

func (m *MockCatalog) GetPromotion(ctx context.Context, id kernel.UUID) (ports.Promotion, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(ports.Promotion)
	return p, args.Error(1)
}

func (m *MockCatalog) GetPromotionByCode(ctx context.Context, code string) (ports.Promotion, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(ports.Promotion)
	return p, args.Error(1)
}

func (m *MockCatalog) GetShippingMethod(ctx context.Context, id kernel.UUID) (order.ShippingMethod, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(order.ShippingMethod)
	return s, args.Error(1)
}

type stubVariant struct {
	id      kernel.UUID
	price   int64
	digital bool
}

func (v stubVariant) ID() kernel.UUID     { return v.id }
func (v stubVariant) SKU() string         { return "SKU-" + v.id.String()[:4] }
func (v stubVariant) IsPurchasable() bool { return true }
func (v stubVariant) IsDigital() bool     { return v.digital }
func (v stubVariant) WeightGrams() int64  { return 100 }

func (v stubVariant) PriceIn(c kernel.Currency) (kernel.Money, error) {
	return kernel.NewMoney(v.price, c)
}

type stubPromotion struct {
	id     kernel.UUID
	code   string
	amount int64
}

func (p stubPromotion) ID() kernel.UUID    { return p.id }
func (p stubPromotion) RequiresCode() bool { return p.code != "" }
func (p stubPromotion) Code() string       { return p.code }

func (p stubPromotion) Calculator() order.PromotionCalculator {
	return order.PromotionCalculatorFunc(func(order.Promotion, order.CalculationInput) ([]order.ProposedAdjustment, error) {
		return []order.ProposedAdjustment{{Amount: -p.amount, Description: "stub"}}, nil
	})
}

type fixedNumber string

func (n fixedNumber) Generate() (string, error) { return string(n), nil }

func newCartOrder(variants ...stubVariant) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USD", fixedNumber("R260101AAAAAA"))
	if err != nil {
		panic(err)
	}
	for _, v := range variants {
		if _, err = o.AddLineItem(v, 1); err != nil {
			panic(err)
		}
	}
	o.PullEvents()
	return o
}

// expectModify wires a factory/uow/repo trio for one load-mutate-save pass.
func expectModify(ctx context.Context, o *order.Order) (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	return factory, uow, repo
}
