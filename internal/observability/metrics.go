package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "district_map"

// Metrics holds the Prometheus counters, gauges and histograms for one map build.
type Metrics struct {
	RowsLoaded        prometheus.Counter
	FeaturesLoaded    prometheus.Counter
	UnmatchedFeatures prometheus.Counter
	OrphanRows        prometheus.Counter
	DuplicateMatches  prometheus.Counter

	ShapesRendered *prometheus.CounterVec // labels: category
	CategoryTotal  *prometheus.GaugeVec   // labels: category

	RunDuration   prometheus.Histogram
	LastSuccess   prometheus.Gauge
	PipelineError *prometheus.CounterVec // labels: stage={load,join,render,write}
}

// NewMetrics creates the pipeline metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.RowsLoaded,
		m.FeaturesLoaded,
		m.UnmatchedFeatures,
		m.OrphanRows,
		m.DuplicateMatches,
		m.ShapesRendered,
		m.CategoryTotal,
		m.RunDuration,
		m.LastSuccess,
		m.PipelineError,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as
// many pipelines as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_rows_loaded_total",
			Help:      "District rows read from the unit-count table.",
		}),
		FeaturesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "features_loaded_total",
			Help:      "District features read from the geometry collection.",
		}),
		UnmatchedFeatures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unmatched_features_total",
			Help:      "Features with no table row for their district.",
		}),
		OrphanRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphan_rows_total",
			Help:      "Table districts that no feature referenced.",
		}),
		DuplicateMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_matches_total",
			Help:      "Features that matched more than one table row.",
		}),
		ShapesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shapes_rendered_total",
			Help:      "District shapes drawn per category layer.",
		}, []string{"category"}),
		CategoryTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "category_units",
			Help:      "Summed unit count per category across all districts.",
		}, []string{"category"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-join-render-write run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		PipelineError: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed runs by stage.",
		}, []string{"stage"}),
	}
}
