package metrics

import "github.com/prometheus/client_golang/prometheus"

// Auth event names used as the "event" label.
const (
	EventRegister       = "register"
	EventLogin          = "login"
	EventLogout         = "logout"
	EventPasswordChange = "password_change"
	EventPasswordReset  = "password_reset"
)

// Record kinds and operations used by RecordMutation.
const (
	KindStudySession = "study_session"
	KindApplication  = "application"

	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// DomainMetrics counts account events and record writes.
type DomainMetrics struct {
	AuthEvents      *prometheus.CounterVec
	RecordMutations *prometheus.CounterVec
}

// NewDomainMetrics creates and registers the domain counters on reg.
func NewDomainMetrics(reg prometheus.Registerer) *DomainMetrics {
	m := &DomainMetrics{
		AuthEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "events_total",
			Help:      "Account events by outcome.",
		}, []string{"event", "outcome"}),
		RecordMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "record",
			Name:      "mutations_total",
			Help:      "Study session and application writes.",
		}, []string{"kind", "op"}),
	}
	reg.MustRegister(m.AuthEvents, m.RecordMutations)
	return m
}

// Auth records one account event.  A nil receiver records nothing.
func (m *DomainMetrics) Auth(event string, ok bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.AuthEvents.WithLabelValues(event, outcome).Inc()
}

// RecordMutation records one committed write.
func (m *DomainMetrics) RecordMutation(kind, op string) {
	if m == nil {
		return
	}
	m.RecordMutations.WithLabelValues(kind, op).Inc()
}
