// Package metrics defines and registers all custom Prometheus metrics for
// the FoodBao admin API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodbao"

// LoginsTotal counts authentication attempts.
// Label:
//   - outcome: "success", "invalid_credentials", "unavailable", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionValidationsTotal counts guard decisions.
// Label:
//   - result: "valid", "missing", "invalid", "expired", "bypass"
var SessionValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_validations_total",
		Help:      "Total number of session guard checks, by result.",
	},
	[]string{"result"},
)

// ResetRequestsTotal counts password-reset requests.
// Label:
//   - method: "email" or "whatsapp"
var ResetRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_requests_total",
		Help:      "Total number of password-reset requests, by delivery method.",
	},
	[]string{"method"},
)

// ProxyRequestsTotal counts CRUD operations forwarded to the remote backend.
// Labels:
//   - resource: "clients", "categories", "menu", "orders"
//   - operation: "list", "get", "create", "update", "delete"
var ProxyRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_requests_total",
		Help:      "Total number of CRUD operations proxied to the backend.",
	},
	[]string{"resource", "operation"},
)

// NotificationsTotal counts notification delivery attempts.
// Labels:
//   - channel: "email" or "whatsapp"
//   - result: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification delivery attempts.",
	},
	[]string{"channel", "result"},
)

// LoginDuration measures the full login path including remote verification.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of the login path from request to response.",
		Buckets:   prometheus.DefBuckets,
	},
)
