// Package metrics holds the prometheus collectors exposed on /metrics.
//
// A nil *Metrics is valid and records nothing, so packages can accept one
// without forcing every caller (and every test) to build a registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meruem"

type Metrics struct {
	registry        *prometheus.Registry
	gateDecisions   *prometheus.CounterVec
	callbackResults *prometheus.CounterVec
	bootstrapResult *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_decisions_total",
			Help:      "Route gate decisions by outcome.",
		}, []string{"decision"}),
		callbackResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oauth_callback_total",
			Help:      "OAuth callback handling by outcome.",
		}, []string{"outcome"}),
		bootstrapResult: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bootstrap_total",
			Help:      "Workspace bootstrap fetches by outcome.",
		}, []string{"outcome"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_seconds",
			Help:      "Latency of calls to the Meruem backend API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "status"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.gateDecisions,
		m.callbackResults,
		m.bootstrapResult,
		m.backendLatency,
	)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) GateDecision(decision string) {
	if m == nil {
		return
	}
	m.gateDecisions.WithLabelValues(decision).Inc()
}

func (m *Metrics) CallbackOutcome(outcome string) {
	if m == nil {
		return
	}
	m.callbackResults.WithLabelValues(outcome).Inc()
}

func (m *Metrics) BootstrapOutcome(outcome string) {
	if m == nil {
		return
	}
	m.bootstrapResult.WithLabelValues(outcome).Inc()
}

// ObserveBackend records one backend call. status is the HTTP status code as a
// string, or "error" when no response was received.
func (m *Metrics) ObserveBackend(endpoint, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.backendLatency.WithLabelValues(endpoint, status).Observe(elapsed.Seconds())
}
