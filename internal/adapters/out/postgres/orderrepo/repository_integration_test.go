package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/pgtest"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/model/shipment"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type variant struct {
	id      kernel.UUID
	price   int64
	digital bool
}

func (v variant) ID() kernel.UUID     { return v.id }
func (v variant) SKU() string         { return "TEE-" + v.id.String()[:6] }
func (v variant) IsPurchasable() bool { return true }
func (v variant) IsDigital() bool     { return v.digital }
func (v variant) WeightGrams() int64  { return 250 }

func (v variant) PriceIn(c kernel.Currency) (kernel.Money, error) {
	return kernel.NewMoney(v.price, c)
}

type promotion struct{ id kernel.UUID }

func (p promotion) ID() kernel.UUID    { return p.id }
func (p promotion) RequiresCode() bool { return false }
func (p promotion) Code() string       { return "" }

type flatShipping struct {
	id   kernel.UUID
	cost int64
}

func (s flatShipping) ID() kernel.UUID { return s.id }

func (s flatShipping) Cost(_ int64, itemTotal kernel.Money) (kernel.Money, error) {
	return kernel.NewMoney(s.cost, itemTotal.Currency())
}

type sequence struct {
	mu sync.Mutex
	n  int
}

func (s *sequence) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "R260314" + string(rune('A'+s.n%26)) + kernel.NewUUID().String()[:5], nil
}

// OrderRepositoryIntegrationTestSuite runs the repository against a real
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	numbers    *sequence
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(), orderrepo.Models()...)
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
	suite.numbers = &sequence{}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NewOrder_StartsAtVersionOne() {
	ctx := context.Background()
	o := suite.newOrder()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Equal(1, o.Version())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)
	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.assertCount(&orderrepo.LineItemDTO{}, 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsAggregate() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(o.SetMetadata(map[string]string{"channel": "web"}, map[string]string{"risk": "low"}))
	err := o.ApplyPromotion(promotion{id: kernel.NewUUID()}, "", order.PromotionCalculatorFunc(
		func(_ order.Promotion, in order.CalculationInput) ([]order.ProposedAdjustment, error) {
			line := in.Lines[0].LineItemID
			return []order.ProposedAdjustment{
				{Amount: -100, Description: "line promo", LineItemID: &line},
				{Amount: -50, Description: "order promo"},
			}, nil
		}))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.Number(), loaded.Number())
	suite.Equal(o.State(), loaded.State())
	suite.Equal(o.ItemTotal(), loaded.ItemTotal())
	suite.Equal(o.AdjustmentTotal(), loaded.AdjustmentTotal())
	suite.Equal(o.GrandTotal(), loaded.GrandTotal())
	suite.Equal(int64(-150), loaded.AdjustmentTotal())
	suite.Equal("web", loaded.PublicMetadata()["channel"])
	suite.Equal("low", loaded.PrivateMetadata()["risk"])
	suite.Require().Len(loaded.LineItems(), 2)
	suite.Equal(o.LineItems()[0].ID(), loaded.LineItems()[0].ID())
	suite.Len(loaded.LineItems()[0].Adjustments(), 1)
	suite.Len(loaded.Adjustments(), 1)
	suite.Len(loaded.AllAdjustments(), 2)
	suite.Empty(loaded.Events())
	suite.Equal(1, loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.GetByNumber(ctx, o.Number())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), loaded.ID())

	_, err = suite.repository.GetByNumber(ctx, "R000000FFFFFF")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_CheckoutPersistsChildren() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Next())
	suite.Require().NoError(o.SetShippingAddress(kernel.NewUUID()))
	suite.Require().NoError(o.SetBillingAddress(kernel.NewUUID()))
	suite.Require().NoError(o.Next())
	suite.Require().NoError(o.SetShippingMethod(flatShipping{id: kernel.NewUUID(), cost: 700}))
	suite.Require().NoError(o.Next())
	p, err := o.AddPayment(o.GrandTotal(), kernel.NewUUID(), payment.MethodCard)
	suite.Require().NoError(err)
	suite.Require().NoError(p.Settle())
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(2, o.Version())

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Payment, loaded.State())
	suite.Equal(int64(700), loaded.ShipmentTotal())
	suite.Require().Len(loaded.Shipments(), 1)
	suite.Equal(shipment.Pending, loaded.Shipments()[0].Status())
	suite.Require().Len(loaded.Payments(), 1)
	suite.True(loaded.Payments()[0].IsSettled())
	suite.Equal(o.GrandTotal(), loaded.SettledTotal())
	suite.Equal(2, loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RemovedLineItemIsDeleted() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.RemoveLineItem(o.LineItems()[0].ID()))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	suite.assertCount(&orderrepo.LineItemDTO{}, 1)
	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ItemTotal(), loaded.ItemTotal())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.SetEmail("first@example.com"))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.SetEmail("second@example.com"))
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Equal(errs.CodeConflict, errs.CodeOf(err))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("first@example.com", loaded.Email())
	suite.Equal(2, loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	o := suite.newOrder()

	err := suite.repository.Update(context.Background(), o)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_ConcurrentReads() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	results := make(chan *order.Order, 3)
	errors := make(chan error, 3)

	for range 3 {
		go func() {
			loaded, readErr := suite.repository.Get(ctx, o.ID())
			if readErr != nil {
				errors <- readErr
			} else {
				results <- loaded
			}
		}()
	}

	for range 3 {
		select {
		case result := <-results:
			suite.Equal(o.ID(), result.ID())
		case readErr := <-errors:
			suite.Failf("Unexpected error in concurrent read", "%v", readErr)
		case <-time.After(10 * time.Second):
			suite.Fail("concurrent read timed out")
		}
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USD", suite.numbers)
	suite.Require().NoError(err)
	_, err = o.AddLineItem(variant{id: kernel.NewUUID(), price: 1500}, 2)
	suite.Require().NoError(err)
	_, err = o.AddLineItem(variant{id: kernel.NewUUID(), price: 999}, 1)
	suite.Require().NoError(err)
	o.PullEvents()
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertCount(model any, expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
