package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		InvitationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtreign_invitations_sent_total",
			Help: "The total number of invitations successfully sent.",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtreign_matches_completed_total",
			Help: "The total number of matches completed with oracle-scored results.",
		}),
		MatchesDisputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtreign_matches_disputed_total",
			Help: "The total number of matches moved to the disputed state.",
		}),
		OracleFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtreign_oracle_failures_total",
			Help: "The total number of scoring oracle calls that exhausted the retry budget.",
		}),
		PresenceCheckIns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtreign_presence_checkins_total",
			Help: "The total number of successful venue check-ins, manual and automatic.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtreign_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtreign_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtreign_analysis_duration_seconds",
			Help:    "The duration of individual scoring oracle analysis calls.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtreign_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.InvitationsSent,
		s.MatchesCompleted,
		s.MatchesDisputed,
		s.OracleFailures,
		s.PresenceCheckIns,
		s.NotifSent,
		s.NotifFailed,
		s.AnalysisDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncInvitationsSent() {
	s.InvitationsSent.Inc()
}

func (s *Service) IncMatchesCompleted() {
	s.MatchesCompleted.Inc()
}

func (s *Service) IncMatchesDisputed() {
	s.MatchesDisputed.Inc()
}

func (s *Service) IncOracleFailures() {
	s.OracleFailures.Inc()
}

func (s *Service) IncPresenceCheckIns() {
	s.PresenceCheckIns.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) ObserveAnalysisDuration(duration float64) {
	s.AnalysisDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
