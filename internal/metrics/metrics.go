// Package metrics defines the Prometheus metrics the admin client exports.
// It is the single source of truth for metric names, labels, and help
// strings; everything registers against the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dmsadm"

// RequestsInFlight tracks API requests dispatched but not yet completed.
// Mirrors the pending-request counter that drives the loading indicator.
var RequestsInFlight = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "requests_in_flight",
		Help:      "Current number of API requests awaiting completion.",
	},
)

// RequestsTotal counts completed API requests.
// Labels:
//   - method: HTTP method of the request
//   - code: HTTP status code of the response ("error" when no response arrived)
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of API requests completed, by method and status code.",
	},
	[]string{"method", "code"},
)

// AuthFailuresTotal counts responses that forced a logout (401 on an
// authenticated call).
var AuthFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected with 401, each forcing a logout.",
	},
)
