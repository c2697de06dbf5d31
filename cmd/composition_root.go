package cmd

import (
	"time"

	httpadapter "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/catalog"
	"ordering/internal/adapters/out/eventbus"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/jobs"
	"ordering/internal/pkg/metrics"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const metricsNamespace = "ordering"

// CompositionRoot builds every handler of the service from one database
// handle, the catalog and the shared event bus.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	catalog    *catalog.Catalog
	collector  *metrics.Collector
	bus        *eventbus.Bus
	logger     *zap.Logger

	Inventory      *eventbus.InventorySubscriber
	Notifications  *eventbus.NotificationSubscriber
	PromotionUsage *eventbus.PromotionUsageSubscriber
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, cat *catalog.Catalog, logger *zap.Logger) (*CompositionRoot, error) {
	collector := metrics.NewCollector(metricsNamespace)

	bus, err := eventbus.New(logger, collector, 0)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:            cfg,
		gormDB:         gormDB,
		uowFactory:     postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:        cat,
		collector:      collector,
		bus:            bus,
		logger:         logger,
		Inventory:      eventbus.NewInventorySubscriber(logger, collector),
		Notifications:  eventbus.NewNotificationSubscriber(logger, collector),
		PromotionUsage: eventbus.NewPromotionUsageSubscriber(logger, collector),
	}

	if err = bus.Subscribe(c.Inventory, eventbus.InventoryEvents...); err != nil {
		return nil, err
	}
	if err = bus.Subscribe(c.Notifications, eventbus.NotificationEvents...); err != nil {
		return nil, err
	}
	if err = bus.Subscribe(c.PromotionUsage, eventbus.PromotionUsageEvents...); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) Metrics() *metrics.Collector { return c.collector }

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), services.NewOrderNumberGenerator(time.Now))
}

func (c *CompositionRoot) CreateAddLineItemCommandHandler() commands.AddLineItemCommandHandler {
	return commands.NewAddLineItemCommandHandler(c.orderUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreateRemoveLineItemCommandHandler() commands.RemoveLineItemCommandHandler {
	return commands.NewRemoveLineItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateLineItemQuantityCommandHandler() commands.UpdateLineItemQuantityCommandHandler {
	return commands.NewUpdateLineItemQuantityCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddAdjustmentCommandHandler() commands.AddAdjustmentCommandHandler {
	return commands.NewAddAdjustmentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApplyPromotionCommandHandler() commands.ApplyPromotionCommandHandler {
	return commands.NewApplyPromotionCommandHandler(c.orderUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreateRemovePromotionCommandHandler() commands.RemovePromotionCommandHandler {
	return commands.NewRemovePromotionCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetShippingMethodCommandHandler() commands.SetShippingMethodCommandHandler {
	return commands.NewSetShippingMethodCommandHandler(c.orderUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreateSetFulfillmentLocationCommandHandler() commands.SetFulfillmentLocationCommandHandler {
	return commands.NewSetFulfillmentLocationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetAddressesCommandHandler() commands.SetAddressesCommandHandler {
	return commands.NewSetAddressesCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddPaymentCommandHandler() commands.AddPaymentCommandHandler {
	return commands.NewAddPaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSettlePaymentCommandHandler() commands.SettlePaymentCommandHandler {
	return commands.NewSettlePaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() *commands.RelayOutboxCommandHandler {
	h := commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), c.bus, c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	relay, err := jobs.NewOutboxRelayJob(
		c.CreateRelayOutboxCommandHandler(),
		c.cfg.Relay.Schedule,
		c.cfg.Relay.BatchSize,
		c.collector,
		c.logger,
	)
	if err != nil {
		return nil, errors.Wrap(err, "create outbox relay job")
	}
	return jobs.NewJobManager(c.logger, relay), nil
}

func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql db")
	}
	return httpadapter.NewServer(
		sqlDB,
		c.CreateGetOpenOrdersQueryHandler(),
		c.CreateGetOrderSummaryQueryHandler(),
		c.collector,
		c.logger,
	), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
