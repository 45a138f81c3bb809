package metrics_utils

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AuthorizationDecisionsTotal *prometheus.CounterVec
	MembershipMutationsTotal    *prometheus.CounterVec
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendors_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vendors_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AuthorizationDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendors_authorization_decisions_total",
				Help: "Authorization guard decisions by capability and outcome",
			},
			[]string{"capability", "decision"},
		),
		MembershipMutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendors_membership_mutations_total",
				Help: "Membership writes by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthorizationDecisionsTotal,
		m.MembershipMutationsTotal,
	)

	return m
}

var (
	registry    *prometheus.Registry
	metrics     *Metrics
	metricsOnce sync.Once
)

func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		metrics = NewMetrics(registry)
	})

	return metrics
}

func (m *Metrics) RecordAuthorization(capability string, allowed bool) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}

	m.AuthorizationDecisionsTotal.WithLabelValues(capability, decision).Inc()
}

func (m *Metrics) RecordMembershipMutation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	m.MembershipMutationsTotal.WithLabelValues(operation, outcome).Inc()
}

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	m := GetMetrics()

	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequestsTotal.
			WithLabelValues(ctx.Request.Method, path, strconv.Itoa(ctx.Writer.Status())).
			Inc()
		m.HTTPRequestDuration.
			WithLabelValues(ctx.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	GetMetrics()

	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
