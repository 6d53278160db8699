package metrics

import "github.com/prometheus/client_golang/prometheus"

// AuditMetrics tracks the health of the asynchronous audit writer. A dropped
// append never fails the triggering transition, so these counters are the only
// place persistent audit failures surface.
type AuditMetrics struct {
	appended *prometheus.CounterVec
	retries  prometheus.Counter
	dropped  prometheus.Counter
}

// NewAuditMetrics registers the audit metrics on the provided registerer.
func NewAuditMetrics(reg prometheus.Registerer) *AuditMetrics {
	if reg == nil {
		return &AuditMetrics{}
	}
	appended := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_entries_appended_total",
		Help: "Audit entries durably appended, by action type.",
	}, []string{"action"})
	retries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_append_retries_total",
		Help: "Transient audit append failures that were retried.",
	})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_entries_dropped_total",
		Help: "Audit entries abandoned after exhausting retries.",
	})
	reg.MustRegister(appended, retries, dropped)
	return &AuditMetrics{appended: appended, retries: retries, dropped: dropped}
}

// IncAppended increments the appended counter for the given action.
func (a *AuditMetrics) IncAppended(action string) {
	if a == nil || a.appended == nil {
		return
	}
	if action == "" {
		action = "unknown"
	}
	a.appended.WithLabelValues(action).Inc()
}

// IncRetry increments the retry counter.
func (a *AuditMetrics) IncRetry() {
	if a == nil || a.retries == nil {
		return
	}
	a.retries.Inc()
}

// IncDropped increments the dropped counter.
func (a *AuditMetrics) IncDropped() {
	if a == nil || a.dropped == nil {
		return
	}
	a.dropped.Inc()
}
