// Package metrics defines and registers all custom Prometheus metrics for
// the StayEase marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stayease"

// SignupsTotal counts account creations by outcome.
// Labels:
//   - outcome: "success", "duplicate_email", or "error"
//   - type: the requested account type ("guest" or "host")
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by outcome and account type.",
	},
	[]string{"outcome", "type"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "invalid_credentials", "type_mismatch", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// DirectoryMutationsTotal counts whole-state read-modify-write cycles on
// the user directory.
// Label:
//   - operation: "create" or "update"
var DirectoryMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_mutations_total",
		Help:      "Total number of committed user-directory mutations, by operation.",
	},
	[]string{"operation"},
)

// FavoriteEventsTotal counts favorite toggle events by result.
// Label:
//   - result: "enqueued", "processed", or "error"
var FavoriteEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorite_events_total",
		Help:      "Total number of favorite toggle events, by processing result.",
	},
	[]string{"result"},
)

// QuoteRequestsTotal counts price quote computations.
// Label:
//   - outcome: "success" or "invalid"
var QuoteRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_requests_total",
		Help:      "Total number of stay price quotes requested, by outcome.",
	},
	[]string{"outcome"},
)
