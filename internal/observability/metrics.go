package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report-generation pipeline.
type Metrics struct {
	ReportsGenerated  *prometheus.CounterVec // labels: variant={sightings,reportings}, outcome={success,failure}
	ChartsRendered    prometheus.Counter
	ChartRenderErrors prometheus.Counter
	ReportsInFlight   prometheus.Gauge

	BatchSize      prometheus.Histogram
	ReportDuration *prometheus.HistogramVec // labels: variant
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildlife_report",
			Name:      "reports_generated_total",
			Help:      "Report generation calls by variant and outcome.",
		}, []string{"variant", "outcome"}),
		ChartsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildlife_report",
			Name:      "charts_rendered_total",
			Help:      "Total chart artifacts rendered successfully.",
		}),
		ChartRenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildlife_report",
			Name:      "chart_render_errors_total",
			Help:      "Statistics dropped because their chart failed to render.",
		}),
		ReportsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildlife_report",
			Name:      "reports_in_flight",
			Help:      "Report generation calls currently executing.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wildlife_report",
			Name:      "observation_batch_size",
			Help:      "Number of observations per submitted batch.",
			Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		}),
		ReportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wildlife_report",
			Name:      "report_duration_seconds",
			Help:      "Duration of a complete aggregate-render-assemble call.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"variant"}),
	}

	prometheus.MustRegister(
		m.ReportsGenerated,
		m.ChartsRendered,
		m.ChartRenderErrors,
		m.ReportsInFlight,
		m.BatchSize,
		m.ReportDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReportsGenerated:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wildlife_report", Name: "reports_generated_total"}, []string{"variant", "outcome"}),
		ChartsRendered:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wildlife_report", Name: "charts_rendered_total"}),
		ChartRenderErrors: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wildlife_report", Name: "chart_render_errors_total"}),
		ReportsInFlight:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "wildlife_report", Name: "reports_in_flight"}),
		BatchSize:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "wildlife_report", Name: "observation_batch_size"}),
		ReportDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "wildlife_report", Name: "report_duration_seconds"}, []string{"variant"}),
	}
}
