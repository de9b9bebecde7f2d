// Package metrics registers the portal's Prometheus collectors with the
// default registry. GET /metrics exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login attempts.
// Label result: "success", "invalid_credentials", "error".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Login attempts by outcome.",
	},
	[]string{"result"},
)

// SignupsTotal counts signup attempts.
// Label result: "success", "duplicate_email", "invalid", "error".
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Signup attempts by outcome.",
	},
	[]string{"result"},
)

// PaymentsTotal counts payment record submissions.
// Label result: "success", "invalid", "error".
var PaymentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_total",
		Help:      "Payment record submissions by outcome.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests refused by the access guard.
// Label reason: "unauthenticated" or "forbidden".
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Requests refused by the access guard.",
	},
	[]string{"reason"},
)

var SessionsPrunedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_pruned_total",
		Help:      "Expired sessions removed by the background pruner.",
	},
)
