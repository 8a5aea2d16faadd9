// Package metrics defines and registers all custom Prometheus metrics for
// the K-learn Studio API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "klearn"

// RegistrationsTotal counts created accounts.
// Label:
//   - role: "student" (the only self-service registration role)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// ApplicationsSubmittedTotal counts tutor applications accepted by intake.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of tutor applications accepted by intake.",
	},
)

// ApplicationsReviewedTotal counts admin review decisions.
// Label:
//   - decision: "approved" or "rejected"
var ApplicationsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_reviewed_total",
		Help:      "Total number of tutor applications reviewed, by decision.",
	},
	[]string{"decision"},
)

// LoginAttemptsTotal counts authentication attempts.
// Labels:
//   - role: "student", "tutor" or "admin"
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)
