package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	VotersRegistered prometheus.Counter
	VotesCast        prometheus.Counter
	AdminMutations   *prometheus.CounterVec
	Turnout          prometheus.Gauge
	RequestDuration  *prometheus.HistogramVec
}

// New creates all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on the given registerer; tests pass a fresh
// registry to avoid duplicate registration across suites.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VotersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "election_voters_registered_total",
			Help: "Total number of voters registered.",
		}),
		VotesCast: factory.NewCounter(prometheus.CounterOpts{
			Name: "election_votes_cast_total",
			Help: "Total number of ballots cast.",
		}),
		AdminMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "election_admin_mutations_total",
			Help: "Total number of administrative candidate mutations.",
		}, []string{"action"}),
		Turnout: factory.NewGauge(prometheus.GaugeOpts{
			Name: "election_turnout_percent",
			Help: "Share of registered voters who have cast a ballot.",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "election_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// IncrementVotersRegistered increments the registered voters counter by 1.
func (m *Metrics) IncrementVotersRegistered() {
	m.VotersRegistered.Inc()
}

// IncrementVotesCast increments the cast ballots counter by 1.
func (m *Metrics) IncrementVotesCast() {
	m.VotesCast.Inc()
}

// IncrementAdminMutation counts one candidate add/update/delete.
func (m *Metrics) IncrementAdminMutation(action string) {
	m.AdminMutations.WithLabelValues(action).Inc()
}

// SetTurnout records the current turnout percentage.
func (m *Metrics) SetTurnout(percent float64) {
	m.Turnout.Set(percent)
}
