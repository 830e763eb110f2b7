// Package metrics holds the Prometheus instrumentation for chartd.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	AnalysesTotal  *prometheus.CounterVec // labels: status
	AnalyzeDur     prometheus.Histogram
	CandlesScanned prometheus.Counter

	ProxyRequests *prometheus.CounterVec // labels: endpoint, code
	ProxyDur      prometheus.Histogram
}

// New registers and returns the service metrics on the given
// registerer (pass prometheus.DefaultRegisterer in main).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartd_analyses_total",
			Help: "Analysis requests by outcome",
		}, []string{"status"}),
		AnalyzeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chartd_analyze_duration_seconds",
			Help:    "Indicator engine compute latency per request",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
		CandlesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chartd_candles_scanned_total",
			Help: "Total candles consumed by the indicator engine",
		}),
		ProxyRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartd_proxy_requests_total",
			Help: "Broker proxy requests by endpoint and upstream status",
		}, []string{"endpoint", "code"}),
		ProxyDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chartd_proxy_duration_seconds",
			Help:    "Broker proxy round-trip latency",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.AnalysesTotal,
		m.AnalyzeDur,
		m.CandlesScanned,
		m.ProxyRequests,
		m.ProxyDur,
	)
	return m
}

// ObserveAnalysis records one engine invocation. Rejected requests
// never reach the indicator loop, so their candles do not count as
// scanned.
func (m *Metrics) ObserveAnalysis(status string, candles int, dur time.Duration) {
	m.AnalysesTotal.WithLabelValues(status).Inc()
	m.AnalyzeDur.Observe(dur.Seconds())
	if status == "ok" {
		m.CandlesScanned.Add(float64(candles))
	}
}

// ObserveProxy records one upstream round trip.
func (m *Metrics) ObserveProxy(endpoint, code string, dur time.Duration) {
	m.ProxyRequests.WithLabelValues(endpoint, code).Inc()
	m.ProxyDur.Observe(dur.Seconds())
}
