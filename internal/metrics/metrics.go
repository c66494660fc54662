// Package metrics defines and registers all custom Prometheus metrics for
// both the accounts and blocklist services. It is the single source of truth
// for metric names, labels, and help strings.
//
// All metrics register with the default Prometheus registry via promauto;
// the routers expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Sign-in metrics ──────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "blocked", "not_found",
//     "blocklist_error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by outcome.",
	},
	[]string{"result"},
)

// LockoutsTotal counts accounts auto-blocked after reaching the
// failed-attempt threshold.
var LockoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockouts_total",
		Help:      "Total number of accounts auto-blocked after repeated credential failures.",
	},
)

// AutoBlockFailuresTotal counts auto-block requests that failed against the
// blocklist service. The caller still sees an invalid-credentials error, so
// this counter is the only place the failure is visible.
var AutoBlockFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auto_block_failures_total",
		Help:      "Total number of auto-block calls that failed against the blocklist service.",
	},
)

// ── Block proxy metrics ──────────────────────────────────────────────────────

// BlockProxyTotal counts explicit block/unblock requests proxied to the
// blocklist service.
// Labels:
//   - op: "block" or "unblock"
//   - outcome: "success" or "error"
var BlockProxyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "block_proxy_total",
		Help:      "Total number of proxied block/unblock requests, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// ── Ledger metrics ───────────────────────────────────────────────────────────

// LedgerOpsTotal counts ledger operations by type and outcome.
// Labels:
//   - op: "credit", "debit", "balance", "logout"
//   - outcome: "success" or "error"
var LedgerOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_ops_total",
		Help:      "Total number of ledger operations, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// IdempotentReplaysTotal counts credit/debit requests skipped because their
// idempotency key was already seen.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of money-movement requests skipped as idempotent replays.",
	},
)

// ── Block registry metrics ───────────────────────────────────────────────────

// RegistryOpsTotal counts operations served by the block registry itself.
// Labels:
//   - op: "block", "unblock", "is_blocked"
//   - outcome: "success" or "error"
var RegistryOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registry_ops_total",
		Help:      "Total number of block registry operations, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)
