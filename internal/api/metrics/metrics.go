// Package metrics defines and registers all custom Prometheus metrics for the
// Qent car-rental API. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

// ── Booking metrics ───────────────────────────────────────────────────────────

// RentalsCreatedTotal counts rentals successfully written by the booking flow.
var RentalsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rentals_created_total",
		Help:      "Total number of rentals created.",
	},
)

// AvailabilityChecksTotal counts availability-check outcomes.
// Label:
//   - result: "available" or "unavailable"
var AvailabilityChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_checks_total",
		Help:      "Total number of availability checks, labelled by result.",
	},
	[]string{"result"},
)

// ── Review metrics ────────────────────────────────────────────────────────────

// RatingCacheTotal counts rating-cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (recomputed from reviews)
var RatingCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_cache_total",
		Help:      "Total number of rating cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsResolvedTotal counts resolved authenticated sessions.
// Label:
//   - role: the role assigned to the session ("user" or "admin")
var SessionsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_resolved_total",
		Help:      "Total number of resolved authenticated sessions, by role.",
	},
	[]string{"role"},
)
