package eventbus_test

import (
	"context"
	"testing"

	"ordering/internal/adapters/out/eventbus"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInventorySubscriber(t *testing.T) {
	bus, collector := newBus(t)
	inventory := eventbus.NewInventorySubscriber(zap.NewNop(), collector)
	require.NoError(t, bus.Subscribe(inventory, eventbus.InventoryEvents...))

	ctx := context.Background()
	orderID := kernel.NewUUID()
	shirt, mug := kernel.NewUUID(), kernel.NewUUID()

	publish := func(event order.Event) {
		require.NoError(t, bus.Publish(ctx, message(t, event)))
	}

	publish(&order.LineItemAdded{
		BaseEvent: base(orderID, order.EventLineItemAdded),
		VariantID: shirt,
		Quantity:  2,
	})
	publish(&order.LineItemAdded{
		BaseEvent: base(orderID, order.EventLineItemAdded),
		VariantID: mug,
		Quantity:  1,
	})
	publish(&order.LineItemQuantityChanged{
		BaseEvent:        base(orderID, order.EventLineItemQuantityChanged),
		VariantID:        shirt,
		PreviousQuantity: 2,
		Quantity:         5,
	})

	assert.Equal(t, 5, inventory.Reserved(orderID, shirt))
	assert.Equal(t, 1, inventory.Reserved(orderID, mug))
	assert.Equal(t, 6.0, testutil.ToFloat64(collector.InventoryReserved))

	publish(&order.LineItemRemoved{
		BaseEvent: base(orderID, order.EventLineItemRemoved),
		VariantID: mug,
		Quantity:  1,
	})
	assert.Zero(t, inventory.Reserved(orderID, mug))

	t.Run("finalize commits and clears reservations", func(t *testing.T) {
		publish(&order.FinalizeInventory{
			BaseEvent: base(orderID, order.EventFinalizeInventory),
			Lines:     []order.InventoryLine{{VariantID: shirt, Quantity: 5}},
		})

		assert.Zero(t, inventory.Reserved(orderID, shirt))
		assert.Equal(t, 5, inventory.Committed(shirt))
		assert.Zero(t, testutil.ToFloat64(collector.InventoryReserved))
	})

	t.Run("release drops reservations without committing", func(t *testing.T) {
		other := kernel.NewUUID()
		publish(&order.LineItemAdded{
			BaseEvent: base(other, order.EventLineItemAdded),
			VariantID: mug,
			Quantity:  3,
		})
		publish(&order.ReleaseInventory{
			BaseEvent: base(other, order.EventReleaseInventory),
			Lines:     []order.InventoryLine{{VariantID: mug, Quantity: 3}},
		})

		assert.Zero(t, inventory.Reserved(other, mug))
		assert.Zero(t, inventory.Committed(mug))
	})
}

func TestNotificationSubscriber(t *testing.T) {
	bus, collector := newBus(t)
	notifications := eventbus.NewNotificationSubscriber(zap.NewNop(), collector)
	require.NoError(t, bus.Subscribe(notifications, eventbus.NotificationEvents...))

	ctx := context.Background()
	orderID := kernel.NewUUID()

	require.NoError(t, bus.Publish(ctx, message(t, &order.StateChanged{
		BaseEvent:     base(orderID, order.EventStateChanged),
		PreviousState: order.Payment,
		NewState:      order.Confirm,
	})))
	require.NoError(t, bus.Publish(ctx, message(t, &order.Completed{
		BaseEvent:  base(orderID, order.EventCompleted),
		Number:     "R260101ABCDEF",
		GrandTotal: 2599,
	})))
	require.NoError(t, bus.Publish(ctx, message(t, &order.OrderCanceled{
		BaseEvent:     base(kernel.NewUUID(), order.EventCanceled),
		PreviousState: order.Cart,
	})))

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.OrdersCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.OrdersCanceled))
}

func TestPromotionUsageSubscriber(t *testing.T) {
	bus, collector := newBus(t)
	usage := eventbus.NewPromotionUsageSubscriber(zap.NewNop(), collector)
	require.NoError(t, bus.Subscribe(usage, eventbus.PromotionUsageEvents...))

	ctx := context.Background()
	promotionID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	require.NoError(t, bus.Publish(ctx, message(t, &order.PromotionApplied{
		BaseEvent:      base(orderID, order.EventPromotionApplied),
		PromotionID:    promotionID,
		Code:           "SPRING",
		DiscountAmount: 300,
	})))
	assert.Zero(t, usage.Redemptions(promotionID), "applying is not a redemption")

	used := message(t, &order.PromotionUsed{
		BaseEvent:   base(orderID, order.EventPromotionUsed),
		PromotionID: promotionID,
	})
	require.NoError(t, bus.Publish(ctx, used))
	require.NoError(t, bus.Publish(ctx, used))

	assert.Equal(t, 1, usage.Redemptions(promotionID), "redelivery is not counted twice")
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.PromotionRedemptions))
}
