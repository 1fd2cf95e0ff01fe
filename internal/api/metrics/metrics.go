// Package metrics defines and registers all custom Prometheus metrics for the
// plants API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default registry at import time; the router
// exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "plants"

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

// OTPIssuedTotal counts recovery codes issued by forgot-password requests.
var OTPIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time recovery codes issued.",
	},
)

// OTPVerifiedTotal counts OTP verification attempts.
// Label:
//   - result: "success" or "failure"
var OTPVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verified_total",
		Help:      "Total number of OTP verification attempts, by result.",
	},
	[]string{"result"},
)

// PlantMutationsTotal counts admin mutations of the catalog.
// Label:
//   - action: "create", "update", or "delete"
var PlantMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plant_mutations_total",
		Help:      "Total number of plant records created, updated, or deleted.",
	},
	[]string{"action"},
)

// SearchDuration measures how long a catalog search takes end-to-end.
var SearchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Duration of plant catalog searches.",
		Buckets:   prometheus.DefBuckets,
	},
)

// AuditQueueDepth tracks the number of audit entries waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
