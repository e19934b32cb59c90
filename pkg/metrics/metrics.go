// Package metrics Prometheus instruments of the playback service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	licenseDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playback_license_decisions_total",
			Help: "Playback authorization decisions by outcome and denial reason",
		},
		[]string{"outcome", "reason"},
	)

	credentialsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playback_credentials_issued_total",
			Help: "Credential bundles issued by delivery strategy",
		},
		[]string{"strategy"},
	)

	auditPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playback_audit_publish_failures_total",
			Help: "Admin audit entries that could not be forwarded to the broker",
		},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playback_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playback_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveDecision count one authorization decision
func ObserveDecision(granted bool, reason string) {
	outcome := "denied"
	if granted {
		outcome = "granted"
		reason = ""
	}
	licenseDecisions.WithLabelValues(outcome, reason).Inc()
}

// ObserveIssued count one issued credential bundle
func ObserveIssued(strategy string) {
	credentialsIssued.WithLabelValues(strategy).Inc()
}

// ObserveAuditPublishFailure count one dropped broker publish
func ObserveAuditPublishFailure() {
	auditPublishFailures.Inc()
}

// Middleware records request count and latency per registered route pattern
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := c.Route().Path
		httpRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes the default registry
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
