package competitionmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CompetitionMetrics records service-level counters for the competition module.
type CompetitionMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordDroppedRows(ctx context.Context, count int)
	RecordUnresolvedNames(ctx context.Context, count int)
	RecordPersistenceFailure(ctx context.Context, pageID string)
}

// PrometheusMetrics implements CompetitionMetrics on a prometheus registry.
type PrometheusMetrics struct {
	attempts            *prometheus.CounterVec
	successes           *prometheus.CounterVec
	failures            *prometheus.CounterVec
	duration            *prometheus.HistogramVec
	droppedRows         prometheus.Counter
	unresolvedNames     prometheus.Counter
	persistenceFailures *prometheus.CounterVec
}

// NewPrometheusMetrics registers the competition collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) (*PrometheusMetrics, error) {
	if namespace == "" {
		namespace = "tripquest"
	}
	labels := []string{"operation", "service"}

	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "competition",
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "competition",
			Name:      "operation_successes_total",
			Help:      "Service operations that completed without an infrastructure error.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "competition",
			Name:      "operation_failures_total",
			Help:      "Service operations that returned an error or panicked.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "competition",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, labels),
		droppedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "competition",
			Name:      "document_dropped_rows_total",
			Help:      "Persisted rows discarded by lenient decoding.",
		}),
		unresolvedNames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "competition",
			Name:      "roster_unresolved_names_total",
			Help:      "Roster member lines that matched no participant.",
		}),
		persistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "competition",
			Name:      "persistence_failures_total",
			Help:      "Failed content store saves.",
		}, []string{"page_id"}),
	}

	for _, c := range []prometheus.Collector{
		m.attempts, m.successes, m.failures, m.duration,
		m.droppedRows, m.unresolvedNames, m.persistenceFailures,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordDroppedRows(_ context.Context, count int) {
	if count > 0 {
		m.droppedRows.Add(float64(count))
	}
}

func (m *PrometheusMetrics) RecordUnresolvedNames(_ context.Context, count int) {
	if count > 0 {
		m.unresolvedNames.Add(float64(count))
	}
}

func (m *PrometheusMetrics) RecordPersistenceFailure(_ context.Context, pageID string) {
	m.persistenceFailures.WithLabelValues(pageID).Inc()
}

var _ CompetitionMetrics = (*PrometheusMetrics)(nil)
