package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the dashboard service.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec   // labels: route, status
	RequestDuration *prometheus.HistogramVec // labels: route

	SourceRows       *prometheus.GaugeVec   // labels: source
	SourceLoadErrors *prometheus.CounterVec // labels: source
	LoaderLookups    *prometheus.CounterVec // labels: result={hit,miss}

	ReportsBuilt   prometheus.Counter
	ChartsRendered *prometheus.CounterVec // labels: chart
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.HTTPRequests,
		m.RequestDuration,
		m.SourceRows,
		m.SourceLoadErrors,
		m.LoaderLookups,
		m.ReportsBuilt,
		m.ChartsRendered,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ribeira",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ribeira",
			Name:      "http_request_duration_seconds",
			Help:      "Request handling duration by route.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"route"}),
		SourceRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ribeira",
			Name:      "source_rows",
			Help:      "Rows loaded per CSV source.",
		}, []string{"source"}),
		SourceLoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ribeira",
			Name:      "source_load_errors_total",
			Help:      "Failed CSV source loads.",
		}, []string{"source"}),
		LoaderLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ribeira",
			Name:      "loader_lookups_total",
			Help:      "Loader cache lookups by result.",
		}, []string{"result"}),
		ReportsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ribeira",
			Name:      "reports_built_total",
			Help:      "XLSX reports generated.",
		}),
		ChartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ribeira",
			Name:      "charts_rendered_total",
			Help:      "Server-side chart renderings by chart name.",
		}, []string{"chart"}),
	}
}
