package http

import (
	"net/http"

	"github.com/courtreign/courtreign/internal/config"
	"github.com/courtreign/courtreign/internal/invitations"
	"github.com/courtreign/courtreign/internal/matches"
	"github.com/courtreign/courtreign/internal/metrics"
	"github.com/courtreign/courtreign/internal/notifier"
	"github.com/courtreign/courtreign/internal/presence"
	"github.com/courtreign/courtreign/internal/pubsub"
	"github.com/courtreign/courtreign/internal/ranking"
	"github.com/courtreign/courtreign/internal/refdata"
)

func NewServer(
	invitationSvc invitations.Service,
	lifecycle *matches.Lifecycle,
	rankingEngine ranking.Engine,
	presenceTracker presence.Tracker,
	ref refdata.Lookup,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	notifier notifier.Notifier,
	cfg config.Config,
	pubsub pubsub.PubSubClient,
) *Server {
	server := &Server{
		Invitations:    invitationSvc,
		Matches:        lifecycle,
		Ranking:        rankingEngine,
		Presence:       presenceTracker,
		Ref:            ref,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Notifier:       notifier,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("/invitations", Chain(s.ListInvitationsHandler(), paramsMiddleware))
	s.Router.Handle("/invitations/send", Chain(s.SendInvitationHandler(), paramsMiddleware))
	s.Router.Handle("/invitations/respond", Chain(s.RespondInvitationHandler(), paramsMiddleware))
	s.Router.Handle("/invitations/cancel", Chain(s.CancelInvitationHandler(), paramsMiddleware))
	s.Router.Handle("/invitations/pending-count", Chain(s.PendingCountHandler(), paramsMiddleware))

	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/matches/get", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/start", Chain(s.StartMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/submit-result", Chain(s.SubmitResultHandler(), paramsMiddleware))
	s.Router.Handle("/matches/agree", Chain(s.AgreeMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/dispute", Chain(s.DisputeMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/cancel", Chain(s.CancelMatchHandler(), paramsMiddleware))

	s.Router.Handle("/rankings/rank", Chain(s.GetRankHandler(), paramsMiddleware))
	s.Router.Handle("/rankings/crowns", Chain(s.GetCrownsHandler(), paramsMiddleware))
	s.Router.Handle("/rankings/card", Chain(s.GetCompetitionCardHandler(), paramsMiddleware))
	s.Router.Handle("/rankings/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))

	s.Router.Handle("/presence/check-in", Chain(s.CheckInHandler(), paramsMiddleware))
	s.Router.Handle("/presence/check-out", Chain(s.CheckOutHandler(), paramsMiddleware))
	s.Router.Handle("/presence/heartbeat", Chain(s.HeartbeatHandler(), paramsMiddleware))
	s.Router.Handle("/presence/status", Chain(s.PresenceStatusHandler(), paramsMiddleware))
	s.Router.Handle("/presence/active", Chain(s.ListActiveHandler(), paramsMiddleware))
	s.Router.Handle("/presence/sweep", Chain(s.SweepPresenceHandler(), paramsMiddleware))

	s.Router.Handle("/pubsub/analyze", Chain(s.AnalyzeMatchHandler(), paramsMiddleware))
	s.Router.Handle("/pubsub/notify-result", Chain(s.NotifyResultHandler(), paramsMiddleware))
	s.Router.Handle("/pubsub/notify-dispute", Chain(s.NotifyDisputeHandler(), paramsMiddleware))

	s.Router.Handle("/slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
