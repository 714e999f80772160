// Package metrics exposes Prometheus collectors for content scans and HTTP
// traffic, plus a rolling window of recent scan latencies.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "inkpost"

// Scan triggers.
const (
	TriggerPopulate = "populate"
	TriggerRefresh  = "refresh"
)

// Metrics holds the collectors registered on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	ScansTotal    *prometheus.CounterVec
	ScanDuration  prometheus.Histogram
	PostsLoaded   prometheus.Gauge
	RequestsTotal *prometheus.CounterVec

	Scans *ScanLog
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		ScansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "content",
				Name:      "scans_total",
				Help:      "Content directory scans by trigger and result",
			},
			[]string{"trigger", "result"},
		),
		ScanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "content",
				Name:      "scan_duration_seconds",
				Help:      "Duration of content directory scans",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
			},
		),
		PostsLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "content",
				Name:      "posts_loaded",
				Help:      "Documents in the cached collection",
			},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by method and status code",
			},
			[]string{"method", "status"},
		),
		Scans: NewScanLog(0),
	}
	return m
}

// ObserveScan records one loader run. size is ignored on failure.
func (m *Metrics) ObserveScan(trigger string, d time.Duration, size int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ScansTotal.WithLabelValues(trigger, result).Inc()
	m.ScanDuration.Observe(d.Seconds())
	m.Scans.Record(trigger, d, size, err)
	if err == nil {
		m.PostsLoaded.Set(float64(size))
	}
}

// ObserveRequest counts one served request.
func (m *Metrics) ObserveRequest(method string, status int) {
	m.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
