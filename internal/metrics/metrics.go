// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dividizky"

// Source labels say where a settlement was computed from.
const (
	SourceCalculate = "calculate"
	SourceSummarize = "summarize"
	SourceShareLink = "share_link"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing,
// so tests and the CLI can run without a registry.
type Metrics struct {
	SettlementsComputed *prometheus.CounterVec
	ValidationFailures  *prometheus.CounterVec
	PaymentsPerResult   prometheus.Histogram
	Headcount           prometheus.Histogram
	RPCRequests         *prometheus.CounterVec
	RPCDuration         *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SettlementsComputed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_computed_total",
			Help:      "Settlements computed, by request source.",
		}, []string{"source"}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Requests rejected before reaching the calculator, by request source.",
		}, []string{"source"}),
		PaymentsPerResult: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_payments",
			Help:      "Number of payments proposed per settlement.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		Headcount: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_headcount",
			Help:      "Number of people (payers and non-payers) per settlement.",
			Buckets:   []float64{2, 3, 4, 6, 8, 12, 20, 50},
		}),
		RPCRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls handled, by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		RPCDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}
}

// ObserveSettlement records one computed settlement.
func (m *Metrics) ObserveSettlement(source string, headcount, payments int) {
	if m == nil {
		return
	}
	m.SettlementsComputed.WithLabelValues(source).Inc()
	m.Headcount.Observe(float64(headcount))
	m.PaymentsPerResult.Observe(float64(payments))
}

// ObserveValidationFailure records a rejected request.
func (m *Metrics) ObserveValidationFailure(source string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(source).Inc()
}
