// Package metrics defines and registers all custom Prometheus metrics for the
// deposit refund API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at import time
// via promauto and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "deposit"

// DepositsRequestedTotal counts refund requests successfully opened by tenants.
var DepositsRequestedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refund_requests_total",
		Help:      "Total number of refund requests created.",
	},
)

// TransitionsTotal counts successful lifecycle transitions.
// Label:
//   - status: the status the deposit moved to ("responded", "accepted", "disputed")
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of successful deposit status transitions, by target status.",
	},
	[]string{"status"},
)

// TransitionConflictsTotal counts transitions that matched no deposit: either
// nothing was in the required state or a concurrent caller won the race.
// Label:
//   - status: the target status the caller attempted to reach
var TransitionConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transition_conflicts_total",
		Help:      "Total number of deposit transitions that matched no record, by attempted target status.",
	},
	[]string{"status"},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "invalid_input", "invalid_credentials", "invalid_role", "duplicate_email", "session"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected registration, login, and session resolutions.",
	},
	[]string{"reason"},
)
