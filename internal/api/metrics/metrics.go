// Package metrics defines and registers all custom Prometheus metrics for the
// MNG bridge. It is the single source of truth for metric names, labels, and
// help strings; metrics register with the default registry at import time via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mngbridge"

// ShipmentsCreatedTotal counts successfully created carrier shipments.
// Label:
//   - courier: the carrier the shipment was submitted to (e.g. "MNG")
var ShipmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of carrier shipments created, by courier.",
	},
	[]string{"courier"},
)

// ShipmentErrorsTotal counts failed shipment submissions.
// Label:
//   - reason: short failure class ("validation", "duplicate", "carrier")
var ShipmentErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipment_errors_total",
		Help:      "Total number of shipment submissions that failed, by reason.",
	},
	[]string{"reason"},
)

// DirectoryCacheTotal counts directory cache lookups.
// Label:
//   - result: "hit" or "miss"
var DirectoryCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_cache_total",
		Help:      "Total number of geography directory cache lookups, by result.",
	},
	[]string{"result"},
)

// FulfillmentPropagationTotal counts fulfillment propagation attempts back to
// the upstream store.
// Label:
//   - result: "ok", "skipped" (auto-fulfill disabled) or "error"
var FulfillmentPropagationTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fulfillment_propagation_total",
		Help:      "Total number of fulfillment propagation attempts, by result.",
	},
	[]string{"result"},
)

// ReturnsCreatedTotal counts created return requests.
var ReturnsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "returns_created_total",
		Help:      "Total number of return requests created.",
	},
)
