// Package metrics defines and registers all custom Prometheus metrics for the
// promo game API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed on /metrics by the router. Request
// latency, size and count series come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric the service exposes, including the
// echoprometheus request metrics registered by the router.
const Namespace = "playgate"

// ── Participant metrics ───────────────────────────────────────────────────────

// RegistrationsTotal counts check-or-create outcomes.
// Label:
//   - outcome: "created", "existing", "invalid", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "registrations_total",
		Help:      "Total number of check-or-create requests, by outcome.",
	},
	[]string{"outcome"},
)

// PlayClaimsTotal counts can-play outcomes.
// Label:
//   - outcome: "granted", "denied", "not_found", "invalid", or "error"
var PlayClaimsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "play_claims_total",
		Help:      "Total number of play claims, by outcome.",
	},
	[]string{"outcome"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audits waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of play audits pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

var AuditWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: Namespace,
	Name:      "audit_written_total",
	Help:      "Total number of play audits persisted.",
})

var AuditErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: Namespace,
	Name:      "audit_errors_total",
	Help:      "Total number of play audits that failed to persist.",
})

var AuditDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: Namespace,
	Name:      "audit_dropped_total",
	Help:      "Total number of play audits dropped because the worker queue was full.",
})
