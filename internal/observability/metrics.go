package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a report run.
type Metrics struct {
	RecordsParsed *prometheus.CounterVec // labels: source={text,csv,json}
	ParseErrors   *prometheus.CounterVec // labels: source={text,csv,json}

	DatasetRecords   prometheus.Gauge
	StatisticsErrors prometheus.Counter
	ReportsWritten   prometheus.Counter

	RunDuration          prometheus.Histogram
	LastSuccessTimestamp prometheus.Gauge
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RecordsParsed,
		m.ParseErrors,
		m.DatasetRecords,
		m.StatisticsErrors,
		m.ReportsWritten,
		m.RunDuration,
		m.LastSuccessTimestamp,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_report",
			Name:      "records_parsed_total",
			Help:      "Observations decoded per input source.",
		}, []string{"source"}),
		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_report",
			Name:      "parse_errors_total",
			Help:      "Input files that failed to parse, per source.",
		}, []string{"source"}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_report",
			Name:      "dataset_records",
			Help:      "Observations in the unified dataset of the last run.",
		}),
		StatisticsErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_report",
			Name:      "statistics_errors_total",
			Help:      "Runs whose statistics could not be computed.",
		}),
		ReportsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_report",
			Name:      "reports_written_total",
			Help:      "Report files written.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_report",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete parse-unify-compute-write run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		LastSuccessTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_report",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time at which the last successful run computed its statistics.",
		}),
	}
}

// WriteTextfile dumps every metric in the default registry to path in the
// text exposition format read by the node exporter textfile collector.
func WriteTextfile(path string) error {
	return writeTextfile(path, prometheus.DefaultGatherer)
}

func writeTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
