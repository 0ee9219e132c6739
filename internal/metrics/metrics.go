// Package metrics exposes Prometheus instruments for turns and the proxy.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	turns          *prometheus.CounterVec
	answerDuration *prometheus.HistogramVec
	sessions       prometheus.Gauge
	proxyRequests  *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lumid",
			Name:      "turns_total",
			Help:      "Completed chat turns by outcome.",
		}, []string{"outcome", "retry"}),
		answerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lumid",
			Name:      "answer_duration_seconds",
			Help:      "Latency of remote answer calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lumid",
			Name:      "sessions",
			Help:      "Number of chat sessions currently held in memory.",
		}),
		proxyRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lumid",
			Name:      "proxy_requests_total",
			Help:      "Requests served by the answer proxy by HTTP status.",
		}, []string{"status"}),
	}
	reg.MustRegister(
		m.turns,
		m.answerDuration,
		m.sessions,
		m.proxyRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveTurn counts one completed turn.
func (m *Metrics) ObserveTurn(outcome string, retry bool) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(outcome, strconv.FormatBool(retry)).Inc()
}

// ObserveAnswer records the latency of one remote answer call.
func (m *Metrics) ObserveAnswer(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.answerDuration.WithLabelValues(result).Observe(d.Seconds())
}

// SetSessions records the current session count.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

// ObserveProxy counts one proxy response.
func (m *Metrics) ObserveProxy(status int) {
	if m == nil {
		return
	}
	m.proxyRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
