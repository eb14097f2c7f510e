// Package metrics exposes the prometheus collectors for HTTP traffic and
// for the order, payment and shipment engines.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_created_total",
		Help: "Orders created",
	})

	OrderLineMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_line_mutations_total",
			Help: "Order line adds, quantity updates and removals",
		},
		[]string{"op"},
	)

	OrderStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_state_changes_total",
			Help: "Order state changes by target state",
		},
		[]string{"state"},
	)

	PaymentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_payments_created_total",
			Help: "Payments recorded by method and resulting state",
		},
		[]string{"method", "state"},
	)

	PaymentsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_payments_rejected_total",
			Help: "Payment writes refused by the balance or state rules",
		},
		[]string{"reason"},
	)

	ShipmentTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_shipment_transitions_total",
			Help: "Shipment state changes by target state",
		},
		[]string{"state"},
	)
)
