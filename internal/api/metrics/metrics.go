// Package metrics defines and registers all custom Prometheus metrics for
// the console gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry via promauto at import
// time; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "rejected" (bad credentials or API refusal), or
//     "error" (transport failure)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RestoresTotal counts startup session restores by outcome.
// Label:
//   - outcome: "restored", "empty", or "purged" (partial/corrupt state)
var RestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restore attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionAuthenticated reports whether the process currently holds an
// authenticated session (1) or not (0).
var SessionAuthenticated = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_authenticated",
		Help:      "1 when the gateway holds an authenticated session, 0 otherwise.",
	},
)

// ── API client metrics ────────────────────────────────────────────────────────

// APIRequestsTotal counts outgoing requests to the management API.
// Labels:
//   - method: HTTP method
//   - status: numeric HTTP status, or "error" for transport failures
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of requests issued to the management API.",
	},
	[]string{"method", "status"},
)

// APIRequestDuration measures end-to-end latency of management API calls.
// Label:
//   - method: HTTP method
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of requests to the management API.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"method"},
)

// ── Route guard metrics ───────────────────────────────────────────────────────

// GuardRedirectsTotal counts navigation decisions that ended in a redirect.
// Label:
//   - target: "login" (guarded page, anonymous session) or "home"
//     (login page, already authenticated)
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of route guard redirects, by target.",
	},
	[]string{"target"},
)
