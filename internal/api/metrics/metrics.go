// Package metrics defines and registers all custom Prometheus metrics for
// the library catalog. It is the single source of truth for metric names,
// labels, and help strings. HTTP request metrics come from the
// echoprometheus middleware and are not declared here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RecordMutationsTotal counts successful catalog mutations.
// Labels:
//   - collection: "books" or "authors"
//   - action: "create", "update" or "delete"
var RecordMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_mutations_total",
		Help:      "Total number of successful record mutations, by collection and action.",
	},
	[]string{"collection", "action"},
)

// AccessDeniedTotal counts mutation attempts blocked by role policy.
// Label:
//   - resource: "books" or "authors"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of mutating requests denied by role policy.",
	},
	[]string{"resource"},
)
