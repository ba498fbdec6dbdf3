package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	InvitationsSent    prometheus.Counter
	MatchesCompleted   prometheus.Counter
	MatchesDisputed    prometheus.Counter
	OracleFailures     prometheus.Counter
	PresenceCheckIns   prometheus.Counter
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	AnalysisDuration   prometheus.Histogram
	StartupTimeSeconds prometheus.Gauge
}
