// Package metrics owns the Prometheus registry of the ordering service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome label values.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDuplicate = "duplicate"
)

// Collector holds every metric the service exports. Each Collector has
// its own registry, so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	// Outbox relay
	RelayBatches  *prometheus.CounterVec
	RelayMessages *prometheus.CounterVec
	RelayDuration prometheus.Histogram

	// Event delivery
	EventsDelivered *prometheus.CounterVec

	// Business
	OrdersCompleted      prometheus.Counter
	OrdersCanceled       prometheus.Counter
	PromotionRedemptions prometheus.Counter
	InventoryReserved    prometheus.Gauge
}

func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		RelayBatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outbox_relay_batches_total",
				Help:      "Outbox relay passes by outcome",
			},
			[]string{"outcome"},
		),
		RelayMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outbox_relay_messages_total",
				Help:      "Outbox messages handled by the relay, by result",
			},
			[]string{"result"},
		),
		RelayDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "outbox_relay_duration_seconds",
				Help:      "Duration of one outbox relay pass",
				Buckets:   prometheus.DefBuckets,
			},
		),
		EventsDelivered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_delivered_total",
				Help:      "Order events delivered to subscribers",
			},
			[]string{"subscriber", "event_type", "outcome"},
		),
		OrdersCompleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_completed_total",
				Help:      "Orders that reached the complete state",
			},
		),
		OrdersCanceled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_canceled_total",
				Help:      "Orders that were canceled",
			},
		),
		PromotionRedemptions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "promotion_redemptions_total",
				Help:      "Promotions used by completed orders",
			},
		),
		InventoryReserved: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "inventory_reserved_units",
				Help:      "Units currently held by open carts",
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.RelayBatches,
		c.RelayMessages,
		c.RelayDuration,
		c.EventsDelivered,
		c.OrdersCompleted,
		c.OrdersCanceled,
		c.PromotionRedemptions,
		c.InventoryReserved,
	)

	return c
}

// Registry is the gatherer the /metrics endpoint serves.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
