package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the server's Prometheus instruments. Each server carries its
// own registry so multiple servers (and tests) can coexist in one process.
type metrics struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	inFlight         prometheus.Gauge
	analyses         *prometheus.CounterVec
	analysisDuration prometheus.Histogram
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "connectome_http_requests_total",
			Help: "HTTP requests by method and status.",
		}, []string{"method", "status"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "connectome_http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		}),
		analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "connectome_analyses_total",
			Help: "Analyses run, by outcome.",
		}, []string{"outcome"}),
		analysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "connectome_analysis_duration_seconds",
			Help:    "Wall time of one analysis.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}
}
