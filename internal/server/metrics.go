package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "finplan"

// Metrics holds the HTTP and planning collectors on a private registry
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	plansTotal      *prometheus.CounterVec
	goalsTotal      *prometheus.CounterVec
}

// NewMetrics creates and registers every collector. Runtime collectors are
// optional so tests can assert on a small exposition.
func NewMetrics(withRuntime bool) *Metrics {
	registry := prometheus.NewRegistry()
	if withRuntime {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	}

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		plansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "plans_total",
			Help:      "Analyses run, by risk profile.",
		}, []string{"risk_profile"}),
		goalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "goals_projected_total",
			Help:      "Goal projections, by feasibility.",
		}, []string{"feasible"}),
	}
	registry.MustRegister(m.requestsTotal, m.requestDuration, m.plansTotal, m.goalsTotal)
	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observeGoal(feasible bool) {
	label := "false"
	if feasible {
		label = "true"
	}
	m.goalsTotal.WithLabelValues(label).Inc()
}
