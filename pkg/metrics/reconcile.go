package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReconcileMetrics counts assignment links touched by the sync engine.
type ReconcileMetrics struct {
	links    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func NewReconcileMetrics(reg prometheus.Registerer) *ReconcileMetrics {
	if reg == nil {
		return &ReconcileMetrics{}
	}
	links := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_reconcile_links_total",
		Help: "Assignment links created or removed by reconcile.",
	}, []string{"anchor", "action"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_reconcile_failures_total",
		Help: "Reconcile runs that stopped on an error.",
	}, []string{"anchor"})
	reg.MustRegister(links, failures)
	return &ReconcileMetrics{links: links, failures: failures}
}

func (r *ReconcileMetrics) AddLinks(anchor, action string, n int) {
	if r == nil || r.links == nil || n <= 0 {
		return
	}
	r.links.WithLabelValues(normalizeLabel(anchor), normalizeLabel(action)).Add(float64(n))
}

func (r *ReconcileMetrics) IncFailure(anchor string) {
	if r == nil || r.failures == nil {
		return
	}
	r.failures.WithLabelValues(normalizeLabel(anchor)).Inc()
}
