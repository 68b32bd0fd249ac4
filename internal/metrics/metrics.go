// Package metrics declares the Prometheus collectors for the API server.
// Collectors are registered on the default registry via promauto and served
// by promhttp at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration observes HTTP request latency per route pattern.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route pattern, and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// EmailsSent counts outbox emails successfully handed to the SMTP server.
	EmailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planner_emails_sent_total",
		Help: "Outbox emails delivered to the SMTP server.",
	})

	// EmailsFailed counts outbox emails that exhausted their delivery attempts.
	EmailsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planner_emails_failed_total",
		Help: "Outbox emails that exhausted all delivery attempts.",
	})
)
