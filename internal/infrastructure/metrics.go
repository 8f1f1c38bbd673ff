package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the analysis pipeline.
type Metrics struct {
	DatasetLoads    prometheus.Counter
	DatasetLoadRows prometheus.Gauge
	LoadDuration    prometheus.Histogram
	Regressions     *prometheus.CounterVec
	FitDuration     prometheus.Histogram
	HTTPRequests    *prometheus.CounterVec
}

// NewMetrics creates and registers the application metrics with the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DatasetLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "steamlens",
			Name:      "dataset_loads_total",
			Help:      "Number of dataset load operations.",
		}),
		DatasetLoadRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "steamlens",
			Name:      "dataset_rows",
			Help:      "Row count of the most recently loaded canonical table.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "steamlens",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of dataset load operations.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		Regressions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "steamlens",
			Name:      "regressions_total",
			Help:      "Number of regression runs by outcome kind.",
		}, []string{"kind"}),
		FitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "steamlens",
			Name:      "regression_fit_duration_seconds",
			Help:      "Duration of regression fits.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "steamlens",
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by path and status.",
		}, []string{"path", "status"}),
	}

	reg.MustRegister(
		m.DatasetLoads,
		m.DatasetLoadRows,
		m.LoadDuration,
		m.Regressions,
		m.FitDuration,
		m.HTTPRequests,
	)

	return m
}
