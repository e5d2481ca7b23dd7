// Package metrics collects the prometheus metrics of the REST API in
// a dedicated registry and exposes them by a gin handler. It records
// the count and duration of requests per route and the outcomes of
// the reservation admissions.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes the metric names.
const DefaultNamespace = "crweb"

// These constants are the values of the admission outcome label.
const (
	OutcomeAdmitted      = "admitted"
	OutcomeDuplicate     = "duplicate"
	OutcomeLocked        = "locked"
	OutcomeInvalid       = "invalid"
	OutcomePaymentFailed = "payment_failed"
	OutcomeError         = "error"
)

type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	admissions *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry, so multiple
// instances (e.g., in tests) do not collide. The Go runtime and
// process collectors are registered too.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total HTTP requests processed by the API.",
		}, []string{"method", "route", "code"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_admissions_total",
			Help:      "Reservation requests by their admission outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.requests, m.durations, m.admissions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records the count and duration of the requests. Requests
// which match no route are labeled by an "unmatched" route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		code := strconv.Itoa(c.Writer.Status())
		m.requests.WithLabelValues(method, route, code).Inc()
		m.durations.WithLabelValues(method, route).Observe(
			time.Since(start).Seconds(),
		)
	}
}

// Admission counts one reservation request with the given outcome.
func (m *Metrics) Admission(outcome string) {
	m.admissions.WithLabelValues(outcome).Inc()
}

// Handler serves the collected metrics in the prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Registry returns the underlying registry, so it may be gathered
// directly (e.g., in tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
