package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records record-store operations per collection.
type StoreMetrics struct {
	duration *prometheus.HistogramVec
	failure  *prometheus.CounterVec
	lockWait *prometheus.HistogramVec
}

// NewStoreMetrics registers the record-store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "record_store_op_duration_seconds",
		Help:    "Duration of record store operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "record_store_op_failures_total",
		Help: "Failed record store operations.",
	}, []string{"collection", "op"})
	lockWait := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "record_store_lock_wait_seconds",
		Help:    "Time spent waiting for a collection lock.",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})
	reg.MustRegister(duration, failure, lockWait)
	return &StoreMetrics{
		duration: duration,
		failure:  failure,
		lockWait: lockWait,
	}
}

// ObserveDuration records how long op took against collection.
func (s *StoreMetrics) ObserveDuration(collection, op string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(collection), normalizeLabel(op)).Observe(duration.Seconds())
}

// IncFailure increments the failure counter for op against collection.
func (s *StoreMetrics) IncFailure(collection, op string) {
	if s == nil || s.failure == nil {
		return
	}
	s.failure.WithLabelValues(normalizeLabel(collection), normalizeLabel(op)).Inc()
}

// ObserveLockWait records how long a writer waited for the collection lock.
func (s *StoreMetrics) ObserveLockWait(collection string, duration time.Duration) {
	if s == nil || s.lockWait == nil {
		return
	}
	s.lockWait.WithLabelValues(normalizeLabel(collection)).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
