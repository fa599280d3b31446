// Package metrics defines the Prometheus metrics for the storefront backend.
// It is the single source of truth for metric names, labels, and help
// strings; everything is registered with the default registry at init time
// and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "goldcosmetics"

// RegistrationsTotal counts successfully registered accounts.
// Label:
//   - role: the role assigned to the new account ("CUSTOMER", "EMPLOYEE")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

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
