// Package metrics defines the application's custom Prometheus metrics.
// HTTP request metrics come from echoprometheus; these cover what the
// request counters cannot see.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "movies"

// ── Auth ──────────────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login calls.
// Labels:
//   - action: "register" or "login"
//   - outcome: "success", "invalid_input", "invalid_credentials", "forbidden",
//     "conflict", "throttled" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts by outcome.",
	},
	[]string{"action", "outcome"},
)

// TokenRejectionsTotal counts requests refused by the auth middleware.
// Label:
//   - reason: "missing", "malformed", "expired" or "invalid"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected because of a missing or bad bearer token.",
	},
	[]string{"reason"},
)

// AccessDeniedTotal counts authenticated requests refused by the role gate.
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected for lacking the required role.",
	},
	[]string{"role"},
)

// ── Catalogue ─────────────────────────────────────────────────────────────────

// CatalogMutationsTotal counts successful writes.
// Labels:
//   - resource: "movie" or "director"
//   - op: "create", "update" or "delete"
var CatalogMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_mutations_total",
		Help:      "Total number of successful catalogue writes.",
	},
	[]string{"resource", "op"},
)
